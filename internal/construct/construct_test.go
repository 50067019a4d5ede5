package construct

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resourcestore"
)

type testResource struct {
	tfType string
	value  string
}

func (r testResource) CloudFormationType() string { return "Test::Resource" }
func (r testResource) CloudFormationProperties() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{"Value": cty.StringVal(r.value)})
}
func (r testResource) TerraformType() string { return r.tfType }
func (r testResource) TerraformAttributes() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{"value": cty.StringVal(r.value)})
}

func TestLogicalID(t *testing.T) {
	id := LogicalID("OrcaBusStatefulDragenWgtsRnaStack", "pipeline-id-4.4.4")

	assert.Regexp(t, regexp.MustCompile(`^pipelineid444[0-9A-F]{8}$`), id)
	assert.Equal(t, id, LogicalID("OrcaBusStatefulDragenWgtsRnaStack", "pipeline-id-4.4.4"), "must be deterministic")
	assert.NotEqual(t, id, LogicalID("OtherStack", "pipeline-id-4.4.4"), "digest covers the stack")
	assert.NotEqual(t, LogicalID("s", "a-b"), LogicalID("s", "ab"), "same base, different digest")
}

func TestTerraformName(t *testing.T) {
	testCases := []struct {
		input     string
		expected  string
		expectErr bool
	}{
		{input: "workflow-name", expected: "workflow_name"},
		{input: "pipeline-id-4.4.4", expected: "pipeline_id_4_4_4"},
		{input: "44-annotation", expected: "r_44_annotation"},
		{input: "---", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := TerraformName(tc.input)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestNewStack(t *testing.T) {
	app := NewApp()

	s, err := NewStack(app, "OrcaBusStatefulDragenWgtsRnaStack", StackProps{
		Env:  Env{Account: "472057503814", Region: "ap-southeast-2"},
		Tags: map[string]string{"umccr-org:Stage": "PROD", "umccr-org:Product": "dragen-wgts-rna"},
	})
	require.NoError(t, err)
	assert.Equal(t, "472057503814", s.Env().Account)
	assert.Equal(t, []string{"umccr-org:Product", "umccr-org:Stage"}, s.Tags())

	_, err = NewStack(app, "OrcaBusStatefulDragenWgtsRnaStack", StackProps{})
	assert.ErrorContains(t, err, "already exists")

	_, err = NewStack(app, "1-bad_id", StackProps{})
	assert.ErrorContains(t, err, "invalid stack ID")

	got, ok := app.Stack("OrcaBusStatefulDragenWgtsRnaStack")
	assert.True(t, ok)
	assert.Same(t, s, got)
	assert.Len(t, app.Stacks(), 1)
}

func TestStack_Add(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s, err := NewStack(NewApp(), "TestStack", StackProps{})
	require.NoError(t, err)

	// --- Act ---
	h1, err := s.Add(ctx, "workflow-name", testResource{tfType: "test_resource", value: "x"})
	require.NoError(t, err)
	h2, err := s.Add(ctx, "workflow-name", testResource{tfType: "test_resource", value: "x"})
	require.NoError(t, err)
	_, conflictErr := s.Add(ctx, "workflow-name", testResource{tfType: "test_resource", value: "y"})
	_, collisionErr := s.Add(ctx, "workflow_name", testResource{tfType: "test_resource", value: "z"})

	// --- Assert ---
	assert.Same(t, h1, h2)
	assert.Equal(t, "workflow_name", h1.TerraformName)
	assert.ErrorIs(t, conflictErr, resourcestore.ErrConflict)
	assert.ErrorContains(t, collisionErr, "both map to Terraform resource")

	entries, err := s.Resources(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHandleReferences(t *testing.T) {
	h := &Handle{LogicalID: "Role1234ABCD", TerraformType: "aws_iam_role", TerraformName: "role"}

	assert.True(t, h.GetAtt("Arn").RawEquals(cty.ObjectVal(map[string]cty.Value{
		"Fn::GetAtt": cty.TupleVal([]cty.Value{cty.StringVal("Role1234ABCD"), cty.StringVal("Arn")}),
	})))

	traversal, ok := ParseTerraformRef(h.TerraformRef("arn"))
	assert.True(t, ok)
	assert.Equal(t, "aws_iam_role.role.arn", traversal)

	_, ok = ParseTerraformRef(cty.StringVal("s3://bucket/${not.a.ref}/"))
	assert.False(t, ok)
	_, ok = ParseTerraformRef(cty.NumberIntVal(1))
	assert.False(t, ok)
}

// linkResource points at other resources through handle references.
type linkResource struct {
	cfn cty.Value
	tf  cty.Value
}

func (r linkResource) CloudFormationType() string          { return "Test::Link" }
func (r linkResource) CloudFormationProperties() cty.Value { return r.cfn }
func (r linkResource) TerraformType() string               { return "test_link" }
func (r linkResource) TerraformAttributes() cty.Value      { return r.tf }

func TestStack_References(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	s, err := NewStack(NewApp(), "TestStack", StackProps{})
	require.NoError(t, err)
	role, err := s.Add(ctx, "role", testResource{tfType: "test_resource", value: "r"})
	require.NoError(t, err)
	fn, err := s.Add(ctx, "function", linkResource{
		cfn: cty.ObjectVal(map[string]cty.Value{"Role": role.GetAtt("Arn")}),
		tf:  cty.ObjectVal(map[string]cty.Value{"role": role.TerraformRef("arn")}),
	})
	require.NoError(t, err)
	_, err = s.Add(ctx, "rule", linkResource{
		cfn: cty.ObjectVal(map[string]cty.Value{
			"Targets": cty.TupleVal([]cty.Value{cty.ObjectVal(map[string]cty.Value{"Arn": fn.GetAtt("Arn")})}),
		}),
		tf: cty.ObjectVal(map[string]cty.Value{"name": cty.StringVal("rule")}),
	})
	require.NoError(t, err)

	// --- Act ---
	graph, err := s.References(ctx)

	// --- Assert ---
	require.NoError(t, err)
	deps, err := graph.Dependencies("function")
	require.NoError(t, err)
	assert.Equal(t, []string{"role"}, deps)
	dependents, err := graph.Dependents("function")
	require.NoError(t, err)
	assert.Equal(t, []string{"rule"}, dependents)
}

func TestStack_References_Undeclared(t *testing.T) {
	ctx := context.Background()
	s, err := NewStack(NewApp(), "TestStack", StackProps{})
	require.NoError(t, err)
	ghost := &Handle{LogicalID: "Ghost12345678", TerraformType: "test_resource", TerraformName: "ghost"}
	_, err = s.Add(ctx, "function", linkResource{
		cfn: cty.ObjectVal(map[string]cty.Value{"Role": ghost.Ref()}),
		tf:  cty.ObjectVal(map[string]cty.Value{"role": cty.StringVal("plain")}),
	})
	require.NoError(t, err)

	_, err = s.References(ctx)

	assert.ErrorContains(t, err, "references undeclared logical ID Ghost12345678")
}
