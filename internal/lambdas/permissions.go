package lambdas

import (
	"fmt"
	"maps"
	"strings"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/parampath"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resources"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/workflow"
)

const (
	// HostnameSSMParameterName holds the platform hosted zone, from which
	// the OrcaBus API endpoints are derived.
	HostnameSSMParameterName = "/hosted_zone/umccr/name"
	// OrcabusTokenSecretID holds the service JWT for the OrcaBus API.
	OrcabusTokenSecretID = "orcabus/token-service-jwt"

	BasicExecutionPolicyARN = "arn:aws:iam::aws:policy/service-role/AWSLambdaBasicExecutionRole"
)

// Permissions returns the IAM statements a function needs in env. ssmRoot is
// the parameter root the function may read when it needs parameter access.
func Permissions(name Name, env stage.Env, ssmRoot *parampath.Path) ([]resources.PolicyStatement, error) {
	req, err := RequirementsFor(name)
	if err != nil {
		return nil, err
	}

	var statements []resources.PolicyStatement
	if req.NeedsOrcabusAPITools {
		statements = append(statements,
			resources.Allow(
				[]string{"ssm:GetParameter"},
				ssmParameterARN(env, HostnameSSMParameterName),
			),
			resources.Allow(
				[]string{"secretsmanager:GetSecretValue"},
				fmt.Sprintf("arn:aws:secretsmanager:%s:%s:secret:%s-*", env.Region, env.AccountID, OrcabusTokenSecretID),
			),
		)
	}
	if req.NeedsSchemaRegistryAccess {
		registryARN := fmt.Sprintf("arn:aws:schemas:%s:%s:registry/%s", env.Region, env.AccountID, workflow.SchemaRegistryName)
		schemaARN := fmt.Sprintf("arn:aws:schemas:%s:%s:schema/%s/*", env.Region, env.AccountID, workflow.SchemaRegistryName)
		statements = append(statements, resources.Allow(
			[]string{"schemas:DescribeRegistry", "schemas:DescribeSchema", "schemas:ListSchemaVersions"},
			registryARN, schemaARN,
		))
	}
	if req.NeedsSSMParametersAccess {
		prefix, err := rootPrefix(name, ssmRoot)
		if err != nil {
			return nil, err
		}
		statements = append(statements, resources.Allow(
			[]string{"ssm:GetParameter", "ssm:GetParameters", "ssm:GetParametersByPath"},
			ssmParameterARN(env, prefix+"*"),
		))
	}
	return statements, nil
}

// Environment returns the environment variables a function is deployed with.
func Environment(name Name, ssmRoot *parampath.Path) (map[string]string, error) {
	req, err := RequirementsFor(name)
	if err != nil {
		return nil, err
	}
	env := map[string]string{}
	if req.NeedsOrcabusAPITools {
		maps.Copy(env, map[string]string{
			"HOSTNAME_SSM_PARAMETER_NAME": HostnameSSMParameterName,
			"ORCABUS_TOKEN_SECRET_ID":     OrcabusTokenSecretID,
		})
	}
	if req.NeedsSSMParametersAccess {
		prefix, err := rootPrefix(name, ssmRoot)
		if err != nil {
			return nil, err
		}
		env["SSM_PARAMETER_ROOT_PREFIX"] = prefix
	}
	return env, nil
}

// rootPrefix renders ssmRoot with its trailing slash.
func rootPrefix(name Name, ssmRoot *parampath.Path) (string, error) {
	if ssmRoot.Len() == 0 {
		return "", fmt.Errorf("lambda %s needs parameter access but no parameter root was given", name)
	}
	prefix := ssmRoot.String()
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix, nil
}

func ssmParameterARN(env stage.Env, path string) string {
	return fmt.Sprintf("arn:aws:ssm:%s:%s:parameter/%s", env.Region, env.AccountID, strings.TrimPrefix(path, "/"))
}
