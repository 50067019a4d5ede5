package synth

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jeffail/gabs"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resources"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stacks"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
)

func buildApp(t *testing.T) *construct.App {
	t.Helper()
	table, err := stage.Default()
	require.NoError(t, err)
	app, err := stacks.Build(context.Background(), stage.Prod, table)
	require.NoError(t, err)
	return app
}

func stack(t *testing.T, app *construct.App, id string) *construct.Stack {
	t.Helper()
	s, ok := app.Stack(id)
	require.True(t, ok)
	return s
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("Terraform")
	require.NoError(t, err)
	assert.Equal(t, Terraform, f)

	_, err = ParseFormat("pulumi")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRender_CloudFormationJSON(t *testing.T) {
	ctx := context.Background()
	s := stack(t, buildApp(t), stacks.StatefulStackID)

	out, err := Render(ctx, s, CloudFormationJSON)
	require.NoError(t, err)

	parsed, err := gabs.ParseJSON(out)
	require.NoError(t, err)
	assert.Equal(t, "2010-09-09", parsed.Path("AWSTemplateFormatVersion").Data())

	resources, err := parsed.S("Resources").ChildrenMap()
	require.NoError(t, err)
	assert.Len(t, resources, 15)

	h, ok := s.Handle("workflow-name")
	require.True(t, ok)
	param := parsed.S("Resources", h.LogicalID)
	assert.Equal(t, "AWS::SSM::Parameter", param.S("Type").Data())
	assert.Equal(t, "/orcabus/workflows/dragen-wgts-rna/workflow-name", param.S("Properties", "Name").Data())
	assert.Equal(t, "dragen-wgts-rna", param.S("Properties", "Value").Data())
}

func TestRender_CloudFormationSkipsTerraformOnlyResources(t *testing.T) {
	ctx := context.Background()
	s := stack(t, buildApp(t), stacks.StatelessStackID)

	out, err := Render(ctx, s, CloudFormationJSON)
	require.NoError(t, err)

	parsed, err := gabs.ParseJSON(out)
	require.NoError(t, err)
	resources, err := parsed.S("Resources").ChildrenMap()
	require.NoError(t, err)
	for id, r := range resources {
		assert.NotEmpty(t, r.S("Type").Data(), id)
	}

	target, ok := s.Handle("ready-event-rule-target")
	require.True(t, ok)
	assert.False(t, parsed.Exists("Resources", target.LogicalID))

	fn, ok := s.Handle("get-libraries-function")
	require.True(t, ok)
	role := parsed.S("Resources", fn.LogicalID, "Properties", "Role", "Fn::GetAtt").Data()
	roleHandle, ok := s.Handle("get-libraries-role")
	require.True(t, ok)
	assert.Equal(t, []any{roleHandle.LogicalID, "Arn"}, role)
}

func TestRender_CloudFormationYAML(t *testing.T) {
	ctx := context.Background()
	s := stack(t, buildApp(t), stacks.StatefulStackID)

	out, err := Render(ctx, s, CloudFormationYAML)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(out, &doc))
	assert.Equal(t, "2010-09-09", doc["AWSTemplateFormatVersion"])
	assert.Len(t, doc["Resources"], 15)
}

func TestRender_Terraform(t *testing.T) {
	ctx := context.Background()
	s := stack(t, buildApp(t), stacks.StatelessStackID)

	out, err := Render(ctx, s, Terraform)
	require.NoError(t, err)

	_, diags := hclparse.NewParser().ParseHCL(out, "main.tf")
	require.False(t, diags.HasErrors(), diags.Error())

	text := string(out)
	assert.Contains(t, text, `resource "aws_lambda_function" "get_libraries_function"`)
	assert.Contains(t, text, `resource "aws_cloudwatch_event_target" "ready_event_rule_target"`)
	assert.Contains(t, text, "aws_iam_role.get_libraries_role.arn")
	assert.Contains(t, text, "environment {")
	assert.Regexp(t, `region\s+= "ap-southeast-2"`, text)
	assert.NotContains(t, text, "${aws_", "references must render as traversals")
}

func TestRender_Deterministic(t *testing.T) {
	ctx := context.Background()
	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			first, err := Render(ctx, stack(t, buildApp(t), stacks.StatelessStackID), format)
			require.NoError(t, err)
			second, err := Render(ctx, stack(t, buildApp(t), stacks.StatelessStackID), format)
			require.NoError(t, err)
			assert.Equal(t, string(first), string(second))
		})
	}
}

func TestWrite(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	dir := t.TempDir()

	// --- Act ---
	manifest, err := Write(ctx, buildApp(t), dir, Terraform)

	// --- Assert ---
	require.NoError(t, err)
	require.Len(t, manifest.Stacks, 2)
	assert.Equal(t, stacks.StatefulStackID+"/main.tf", manifest.Stacks[0].File)
	assert.Equal(t, "PROD", manifest.Stacks[0].Tags["umccr-org:Stage"])

	for _, rel := range manifest.Files() {
		_, err := os.Stat(filepath.Join(dir, rel))
		assert.NoError(t, err, rel)
	}

	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	require.NoError(t, err)
	var decoded Manifest
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, Terraform, decoded.Format)
	assert.Equal(t, manifest.Stacks[1].SHA256, decoded.Stacks[1].SHA256)
	assert.True(t, strings.HasSuffix(string(raw), "\n"))
}

func TestWrite_DanglingReferenceWritesNothing(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	dir := t.TempDir()
	app := construct.NewApp()
	other, err := construct.NewStack(app, "Other", construct.StackProps{})
	require.NoError(t, err)
	role, err := other.Add(ctx, "role", resources.Role{RoleName: "r", ServicePrincipal: "lambda.amazonaws.com"})
	require.NoError(t, err)
	s, err := construct.NewStack(app, "Broken", construct.StackProps{})
	require.NoError(t, err)
	_, err = s.Add(ctx, "role-policy", resources.RolePolicy{
		PolicyName: "p",
		Role:       role,
		Statements: []resources.PolicyStatement{resources.Allow([]string{"ssm:GetParameter"}, "*")},
	})
	require.NoError(t, err)

	// --- Act ---
	_, err = Write(ctx, app, dir, CloudFormationJSON)

	// --- Assert ---
	require.ErrorContains(t, err, "stack Broken: role-policy references undeclared")
	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestWrite_ReplacesPreviousOutput(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	dir := t.TempDir()
	stale := filepath.Join(dir, "RetiredStack.template.json")
	require.NoError(t, os.WriteFile(stale, []byte("{}"), 0o644))

	// --- Act ---
	manifest, err := Write(ctx, buildApp(t), dir, CloudFormationJSON)

	// --- Assert ---
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(manifest.Files()))
}
