package ssm_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/config"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resources"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resourcestore"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ssm"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/workflow"
)

func prodInputs(t *testing.T) (ssm.Paths, ssm.Values) {
	t.Helper()
	table, err := stage.Default()
	require.NoError(t, err)
	values, err := config.SSMParameterValues(stage.Prod, table)
	require.NoError(t, err)
	return config.SSMParameterPaths(), values
}

func byID(params []ssm.Parameter) map[string]ssm.Parameter {
	out := make(map[string]ssm.Parameter, len(params))
	for _, p := range params {
		out[p.ConstructID] = p
	}
	return out
}

func TestParameters_DeclarationOrder(t *testing.T) {
	paths, values := prodInputs(t)

	params, err := ssm.Parameters(paths, values)

	require.NoError(t, err)
	var ids []string
	for _, p := range params {
		ids = append(ids, p.ConstructID)
	}
	expected := []string{
		"workflow-name",
		"workflow-version",
		"payload-version",
		"inputs-4.4.4",
		"icav2-project-id",
		"pipeline-id-4.4.4",
		"logs-prefix",
		"output-prefix",
		"reference-4.4.4",
		"annotation-version-by-workflow-version-4.4.4",
		"annotation-reference-path-by-annotation-version-44",
		"ora-version-2.7.0",
	}
	if diff := cmp.Diff(expected, ids); diff != "" {
		t.Errorf("construct IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestParameters_Encoding(t *testing.T) {
	paths, values := prodInputs(t)

	params, err := ssm.Parameters(paths, values)
	require.NoError(t, err)
	got := byID(params)

	// Plain strings
	assert.Equal(t, "/orcabus/workflows/dragen-wgts-rna/workflow-name", got["workflow-name"].Name)
	assert.Equal(t, "dragen-wgts-rna", got["workflow-name"].Value)
	assert.Equal(t, "/orcabus/workflows/dragen-wgts-rna/pipeline-ids-by-workflow-version/4.4.4", got["pipeline-id-4.4.4"].Name)
	assert.Equal(t, "079d5aa9-664c-472d-9baf-1e6a6c542401", got["pipeline-id-4.4.4"].Value)
	assert.Equal(t, workflow.OraReferencesByOraVersion[workflow.Ora2_7_0], got["ora-version-2.7.0"].Value)

	// JSON documents
	var ref workflow.Reference
	require.NoError(t, json.Unmarshal([]byte(got["reference-4.4.4"].Value), &ref))
	assert.Equal(t, "hg38", ref.Name)
	assert.Equal(t, `"44"`, got["annotation-version-by-workflow-version-4.4.4"].Value)
	assert.JSONEq(t,
		`"`+workflow.AnnotationPathsByAnnotationVersion[workflow.Gencode44]+`"`,
		got["annotation-reference-path-by-annotation-version-44"].Value)

	var inputs map[string]map[string]bool
	require.NoError(t, json.Unmarshal([]byte(got["inputs-4.4.4"].Value), &inputs))
	assert.True(t, inputs["alignmentOptions"]["rrnaFilterEnable"])
}

func TestParameters_InvalidPaths(t *testing.T) {
	paths, values := prodInputs(t)
	paths.LogsPrefix = paths.OutputPrefix

	_, err := ssm.Parameters(paths, values)

	assert.ErrorContains(t, err, "invalid parameter paths")
}

func TestParameters_InvalidMapKey(t *testing.T) {
	paths, values := prodInputs(t)
	values.PipelineIDsByWorkflowVersion = map[workflow.WorkflowVersion]string{"4.4.4/..": "x"}

	_, err := ssm.Parameters(paths, values)

	assert.ErrorContains(t, err, "pipeline-id entry")
}

func TestBuildParameters_Idempotent(t *testing.T) {
	// --- Arrange ---
	ctx := context.Background()
	paths, values := prodInputs(t)
	stack, err := construct.NewStack(construct.NewApp(), "TestStatefulStack", construct.StackProps{})
	require.NoError(t, err)

	// --- Act ---
	require.NoError(t, ssm.BuildParameters(ctx, stack, paths, values))
	first, err := stack.Resources(ctx)
	require.NoError(t, err)
	require.NoError(t, ssm.BuildParameters(ctx, stack, paths, values))
	second, err := stack.Resources(ctx)
	require.NoError(t, err)

	// --- Assert ---
	assert.Len(t, first, 12)
	assert.Equal(t, len(first), len(second))

	res, ok := stack.Handle("workflow-name")
	require.True(t, ok)
	assert.Equal(t, "aws_ssm_parameter", res.TerraformType)

	entry := first[len(first)-1]
	assert.Equal(t, "workflow-version", entry.ID)
	assert.IsType(t, resources.StringParameter{}, entry.Resource)
}

func TestBuildParameters_ConflictingValue(t *testing.T) {
	ctx := context.Background()
	paths, values := prodInputs(t)
	stack, err := construct.NewStack(construct.NewApp(), "TestStatefulStack", construct.StackProps{})
	require.NoError(t, err)
	require.NoError(t, ssm.BuildParameters(ctx, stack, paths, values))

	values.PayloadVersion = "2099.01.01"
	err = ssm.BuildParameters(ctx, stack, paths, values)

	assert.ErrorIs(t, err, resourcestore.ErrConflict)
}
