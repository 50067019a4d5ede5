package stacks

import (
	"context"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/config"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/construct"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ctxlog"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
)

const (
	StatefulStackID  = "OrcaBusStatefulDragenWgtsRnaStack"
	StatelessStackID = "OrcaBusStatelessDragenWgtsRnaStack"
)

// Build creates the app holding both stacks for a stage. Nothing is returned
// unless every stack builds.
func Build(ctx context.Context, name stage.Name, table stage.Table) (*construct.App, error) {
	logger := ctxlog.FromContext(ctx).With("stage", name)

	statefulProps, err := config.StatefulStackProps(name, table)
	if err != nil {
		return nil, err
	}
	statelessProps, err := config.StatelessStackProps(name, table)
	if err != nil {
		return nil, err
	}

	app := construct.NewApp()
	if _, err := NewStatefulStack(ctx, app, StatefulStackID, statefulProps); err != nil {
		return nil, err
	}
	if _, err := NewStatelessStack(ctx, app, StatelessStackID, statelessProps); err != nil {
		return nil, err
	}
	logger.Info("Stacks built.", "stacks", len(app.Stacks()))
	return app, nil
}
