package stacks

import (
	"context"
	"fmt"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/config"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/schemas"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ssm"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/workflow"
)

// NewStatefulStack declares the parameter store entries and the event
// schemas.
func NewStatefulStack(ctx context.Context, app *construct.App, id string, props *config.StatefulStackConfig) (*construct.Stack, error) {
	stack, err := construct.NewStack(app, id, stackProps(props.Env, "Stateful resources of the "+workflow.Name+" pipeline manager"))
	if err != nil {
		return nil, err
	}

	if err := ssm.BuildParameters(ctx, stack, props.SSMParameterPaths, props.SSMParameterValues); err != nil {
		return nil, fmt.Errorf("stack %s: %w", id, err)
	}
	if err := schemas.Build(ctx, stack, props.SSMParameterPaths.RootPrefix); err != nil {
		return nil, fmt.Errorf("stack %s: %w", id, err)
	}
	return stack, nil
}

func stackProps(env stage.Env, description string) construct.StackProps {
	return construct.StackProps{
		Env:         construct.Env{Account: env.AccountID, Region: env.Region},
		Description: description,
		Tags: map[string]string{
			"umccr-org:Product": workflow.Name,
			"umccr-org:Stage":   string(env.Stage),
		},
	}
}
