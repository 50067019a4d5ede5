package stacks

import (
	"context"
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/config"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/lambdas"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/parampath"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/resources"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/workflow"
)

const (
	lambdaRuntime      = "python3.12"
	lambdaArchitecture = "arm64"
	lambdaMemorySize   = 1024
	lambdaTimeout      = 60

	eventsPrincipal = "events.amazonaws.com"
)

// AssetBucket is the bootstrap bucket holding packaged function code.
func AssetBucket(env stage.Env) string {
	return fmt.Sprintf("cdk-hnb659fds-assets-%s-%s", env.AccountID, env.Region)
}

// NewStatelessStack declares one role and function per registered Lambda and
// the event rules routing READY and ICAv2 WES state-change events to them.
func NewStatelessStack(ctx context.Context, app *construct.App, id string, props *config.StatelessStackConfig) (*construct.Stack, error) {
	stack, err := construct.NewStack(app, id, stackProps(props.Env, "Stateless resources of the "+workflow.Name+" pipeline manager"))
	if err != nil {
		return nil, err
	}

	functions := make(map[lambdas.Name]*construct.Handle, len(lambdas.Names))
	for _, name := range lambdas.Names {
		fn, err := buildLambda(ctx, stack, name, props.Env, props.SSMParameterPaths.RootPrefix)
		if err != nil {
			return nil, fmt.Errorf("stack %s: lambda %s: %w", id, name, err)
		}
		functions[name] = fn
	}

	rules := []struct {
		id      string
		pattern resources.EventPattern
		target  lambdas.Name
	}{
		{
			id:      "ready-event-rule",
			pattern: readyEventPattern(props.IsNewWorkflowManagerDeployed),
			target:  lambdas.ConvertReadyEventInputsToIcav2WesEventInputs,
		},
		{
			id:      "icav2-wes-state-change-rule",
			pattern: icav2WesStateChangePattern(),
			target:  lambdas.ConvertIcav2WesEventToWruEvent,
		},
	}
	for _, r := range rules {
		if err := buildRule(ctx, stack, props.EventBusName, r.id, r.pattern, functions[r.target]); err != nil {
			return nil, fmt.Errorf("stack %s: %w", id, err)
		}
	}
	return stack, nil
}

func kebab(name lambdas.Name) string {
	return strings.ReplaceAll(name.SnakeCase(), "_", "-")
}

func buildLambda(ctx context.Context, stack *construct.Stack, name lambdas.Name, env stage.Env, ssmRoot *parampath.Path) (*construct.Handle, error) {
	base := kebab(name)

	role, err := stack.Add(ctx, base+"-role", resources.Role{
		Description:       fmt.Sprintf("Execution role of %s", name.FunctionName()),
		ServicePrincipal:  "lambda.amazonaws.com",
		ManagedPolicyARNs: []string{lambdas.BasicExecutionPolicyARN},
	})
	if err != nil {
		return nil, err
	}

	statements, err := lambdas.Permissions(name, env, ssmRoot)
	if err != nil {
		return nil, err
	}
	if len(statements) > 0 {
		if _, err := stack.Add(ctx, base+"-role-policy", resources.RolePolicy{
			PolicyName: base,
			Role:       role,
			Statements: statements,
		}); err != nil {
			return nil, err
		}
	}

	variables, err := lambdas.Environment(name, ssmRoot)
	if err != nil {
		return nil, err
	}
	return stack.Add(ctx, base+"-function", resources.Function{
		FunctionName: name.FunctionName(),
		Description:  fmt.Sprintf("%s (%s)", name, workflow.Name),
		Runtime:      lambdaRuntime,
		Architecture: lambdaArchitecture,
		Handler:      name.Handler(),
		CodeBucket:   AssetBucket(env),
		CodeKey:      name.CodeKey(),
		MemorySize:   lambdaMemorySize,
		Timeout:      lambdaTimeout,
		Role:         role,
		Environment:  variables,
	})
}

func buildRule(ctx context.Context, stack *construct.Stack, busName, id string, pattern resources.EventPattern, fn *construct.Handle) error {
	rule, err := stack.Add(ctx, id, resources.EventRule{
		RuleName:     workflow.StackPrefix + "--" + id,
		EventBusName: busName,
		Pattern:      pattern,
		Targets:      []resources.RuleTarget{{ID: fn.ConstructID, Function: fn}},
	})
	if err != nil {
		return err
	}
	if _, err := stack.Add(ctx, id+"-target", resources.EventTarget{
		Rule:         rule,
		EventBusName: busName,
		TargetID:     fn.ConstructID,
		Function:     fn,
	}); err != nil {
		return err
	}
	_, err = stack.Add(ctx, id+"-invoke-permission", resources.InvokePermission{
		Function:  fn,
		Principal: eventsPrincipal,
		Source:    rule,
	})
	return err
}

func list(items ...string) cty.Value {
	vals := make([]cty.Value, 0, len(items))
	for _, item := range items {
		vals = append(vals, cty.StringVal(item))
	}
	return cty.TupleVal(vals)
}

// readyEventPattern matches READY events for this workflow and payload
// version. The workflow manager generation decides the detail type and the
// shape of the detail.
func readyEventPattern(newWorkflowManager bool) resources.EventPattern {
	payload := cty.ObjectVal(map[string]cty.Value{"version": list(workflow.DefaultPayloadVersion)})
	if newWorkflowManager {
		return resources.EventPattern{
			DetailTypes: []string{workflow.WorkflowRunUpdateDetailType},
			Detail: cty.ObjectVal(map[string]cty.Value{
				"workflow": cty.ObjectVal(map[string]cty.Value{"name": list(workflow.Name)}),
				"status":   list(workflow.ReadyStatus),
				"payload":  payload,
			}),
		}
	}
	return resources.EventPattern{
		Sources:     []string{workflow.WorkflowManagerEventSource},
		DetailTypes: []string{workflow.WorkflowRunStateChangeDetailType},
		Detail: cty.ObjectVal(map[string]cty.Value{
			"workflowName": list(workflow.Name),
			"status":       list(workflow.ReadyStatus),
			"payload":      payload,
		}),
	}
}

// icav2WesStateChangePattern matches analysis state changes of runs whose
// name carries this workflow.
func icav2WesStateChangePattern() resources.EventPattern {
	return resources.EventPattern{
		Sources:     []string{workflow.ICAv2WESEventSource},
		DetailTypes: []string{workflow.ICAv2WESStateChangeDetailType},
		Detail: cty.ObjectVal(map[string]cty.Value{
			"name": cty.TupleVal([]cty.Value{
				cty.ObjectVal(map[string]cty.Value{"wildcard": cty.StringVal("*--" + workflow.Name + "--*")}),
			}),
		}),
	}
}
