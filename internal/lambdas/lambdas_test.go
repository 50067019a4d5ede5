package lambdas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/parampath"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
)

func TestRequirementsFor(t *testing.T) {
	testCases := []struct {
		name     Name
		expected Requirements
	}{
		{name: CheckNtsmInternal, expected: Requirements{NeedsOrcabusAPITools: true}},
		{name: ValidateDraftCompleteSchema, expected: Requirements{NeedsSchemaRegistryAccess: true, NeedsSSMParametersAccess: true}},
		{name: ConvertReadyEventInputsToIcav2WesEventInputs, expected: Requirements{}},
		{name: ConvertIcav2WesEventToWruEvent, expected: Requirements{NeedsOrcabusAPITools: true}},
	}
	for _, tc := range testCases {
		t.Run(string(tc.name), func(t *testing.T) {
			got, err := RequirementsFor(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	_, err := RequirementsFor("notALambda")
	assert.ErrorIs(t, err, ErrUnknownLambda)
}

func TestNames_Exhaustive(t *testing.T) {
	assert.Len(t, Names, 10)
	for _, n := range Names {
		_, err := RequirementsFor(n)
		assert.NoError(t, err, n)
	}
}

func TestNaming(t *testing.T) {
	assert.Equal(t, "check_ntsm_internal", CheckNtsmInternal.SnakeCase())
	assert.Equal(t, "app/lambdas/convert_ready_event_inputs_to_icav2_wes_event_inputs_py", ConvertReadyEventInputsToIcav2WesEventInputs.AssetDir())
	assert.Equal(t, "convert_icav2_wes_event_to_wru_event.handler", ConvertIcav2WesEventToWruEvent.Handler())
	assert.Equal(t, "orca-dragen-wgts-rna--get-libraries", GetLibraries.FunctionName())
}

func TestFunctionName_LengthAndUniqueness(t *testing.T) {
	seen := map[string]Name{}
	for _, n := range Names {
		fn := n.FunctionName()
		assert.LessOrEqual(t, len(fn), 64, fn)
		assert.Regexp(t, `^[a-zA-Z0-9_-]+$`, fn)
		if other, dup := seen[fn]; dup {
			t.Errorf("%s and %s share the function name %s", other, n, fn)
		}
		seen[fn] = n
	}
	assert.Equal(t, ConvertReadyEventInputsToIcav2WesEventInputs.FunctionName(), ConvertReadyEventInputsToIcav2WesEventInputs.FunctionName())
}

func TestPermissions(t *testing.T) {
	env := stage.Env{Stage: stage.Prod, AccountID: "472057503814", Region: "ap-southeast-2"}
	root := parampath.MustParse("/orcabus/workflows/dragen-wgts-rna/")

	validate, err := Permissions(ValidateDraftCompleteSchema, env, root)
	require.NoError(t, err)
	require.Len(t, validate, 2)
	assert.Contains(t, validate[0].Actions, "schemas:DescribeSchema")
	assert.Equal(t, []string{"arn:aws:ssm:ap-southeast-2:472057503814:parameter/orcabus/workflows/dragen-wgts-rna/*"}, validate[1].Resources)

	convert, err := Permissions(ConvertReadyEventInputsToIcav2WesEventInputs, env, root)
	require.NoError(t, err)
	assert.Empty(t, convert)

	api, err := Permissions(GetLibraries, env, nil)
	require.NoError(t, err, "functions without parameter access do not need a root")
	require.Len(t, api, 2)
	assert.Equal(t, []string{"arn:aws:ssm:ap-southeast-2:472057503814:parameter/hosted_zone/umccr/name"}, api[0].Resources)
}

func TestPermissions_FollowParameterRoot(t *testing.T) {
	env := stage.Env{Stage: stage.Beta, AccountID: "843407916570", Region: "ap-southeast-2"}
	testCases := []struct {
		name string
		root string
		want string
	}{
		{name: "prefix path", root: "/orcabus/workflows/dragen-wgts-rna-v2/", want: "/orcabus/workflows/dragen-wgts-rna-v2/"},
		{name: "leaf path gains a slash", root: "/sandbox/wgts", want: "/sandbox/wgts/"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			root := parampath.MustParse(tc.root)

			statements, err := Permissions(ValidateDraftCompleteSchema, env, root)
			require.NoError(t, err)
			vars, err := Environment(ValidateDraftCompleteSchema, root)
			require.NoError(t, err)

			assert.Equal(t, []string{"arn:aws:ssm:ap-southeast-2:843407916570:parameter" + tc.want + "*"}, statements[1].Resources)
			assert.Equal(t, tc.want, vars["SSM_PARAMETER_ROOT_PREFIX"])
		})
	}
}

func TestPermissions_MissingParameterRoot(t *testing.T) {
	env := stage.Env{Stage: stage.Prod, AccountID: "472057503814", Region: "ap-southeast-2"}

	_, err := Permissions(ValidateDraftCompleteSchema, env, nil)
	assert.ErrorContains(t, err, "no parameter root was given")
	_, err = Environment(ValidateDraftCompleteSchema, nil)
	assert.ErrorContains(t, err, "no parameter root was given")
}

func TestEnvironment(t *testing.T) {
	env, err := Environment(GetMetadataTags, nil)
	require.NoError(t, err)
	assert.Equal(t, "orcabus/token-service-jwt", env["ORCABUS_TOKEN_SECRET_ID"])

	env, err = Environment(ConvertReadyEventInputsToIcav2WesEventInputs, nil)
	require.NoError(t, err)
	assert.Empty(t, env)
}
