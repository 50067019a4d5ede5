package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/config"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ctxlog"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/lambdas"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/publish"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/ssm"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stacks"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/synth"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	logger *slog.Logger
	table  stage.Table
}

// New creates an App with its own isolated logger, writing to logW, and
// loads the stage table.
func New(ctx context.Context, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	var paths []string
	if cfg.StagesPath != "" {
		paths = append(paths, cfg.StagesPath)
	}
	table, err := stage.Load(ctx, paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load stage table: %w", err)
	}
	return &App{logger: logger, table: table}, nil
}

// Context returns ctx carrying the app logger.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}

// Table returns the loaded stage table.
func (a *App) Table() stage.Table {
	return a.table
}

// Synth builds the stacks of a stage and writes them to dir.
func (a *App) Synth(ctx context.Context, name stage.Name, dir string, format synth.Format) (*synth.Manifest, error) {
	ctx = a.Context(ctx)
	built, err := stacks.Build(ctx, name, a.table)
	if err != nil {
		return nil, fmt.Errorf("failed to build stacks: %w", err)
	}
	return synth.Write(ctx, built, dir, format)
}

// Parameters lists the parameters declared for a stage.
func (a *App) Parameters(ctx context.Context, name stage.Name) ([]ssm.Parameter, error) {
	values, err := config.SSMParameterValues(name, a.table)
	if err != nil {
		return nil, err
	}
	return ssm.Parameters(config.SSMParameterPaths(), values)
}

// LambdaRow is one line of the Lambda capability table.
type LambdaRow struct {
	Name         lambdas.Name
	FunctionName string
	Requirements lambdas.Requirements
}

// Lambdas returns the capability table of every registered function.
func (a *App) Lambdas() ([]LambdaRow, error) {
	rows := make([]LambdaRow, 0, len(lambdas.Names))
	for _, name := range lambdas.Names {
		req, err := lambdas.RequirementsFor(name)
		if err != nil {
			return nil, err
		}
		rows = append(rows, LambdaRow{Name: name, FunctionName: name.FunctionName(), Requirements: req})
	}
	return rows, nil
}

// Publish synthesizes a stage into dir and uploads the artifacts.
func (a *App) Publish(ctx context.Context, name stage.Name, dir string, format synth.Format, client publish.ObjectPutter, cfg publish.Config) ([]string, error) {
	manifest, err := a.Synth(ctx, name, dir, format)
	if err != nil {
		return nil, err
	}
	return publish.Upload(a.Context(ctx), client, cfg, name, dir, manifest)
}
