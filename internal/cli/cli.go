package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	ucli "github.com/urfave/cli/v2"

	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/app"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/publish"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/stage"
	"github.com/umccr/dragen-wgts-rna-pipeline-manager/internal/synth"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Options wires the command layer to its surroundings. Zero values fall back
// to the process streams and a real S3 client.
type Options struct {
	Out io.Writer
	Err io.Writer

	// NewObjectPutter creates the upload client used by the publish command.
	NewObjectPutter func(publish.Config) (publish.ObjectPutter, error)
}

func (o Options) withDefaults() Options {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	if o.NewObjectPutter == nil {
		o.NewObjectPutter = func(cfg publish.Config) (publish.ObjectPutter, error) {
			return publish.NewClient(cfg)
		}
	}
	return o
}

const appMetadataKey = "app"

const (
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagStages    = "stages"
	flagStage     = "stage"
	flagOut       = "out"
	flagFormat    = "format"
)

// Run parses args (without the program name) and executes the selected
// command.
func Run(ctx context.Context, args []string, opts Options) error {
	return NewApp(opts).RunContext(ctx, append([]string{"wgtsrna"}, args...))
}

// NewApp builds the command tree.
func NewApp(opts Options) *ucli.App {
	opts = opts.withDefaults()

	formatNames := make([]string, len(synth.Formats))
	for i, f := range synth.Formats {
		formatNames[i] = string(f)
	}
	stageFlag := &ucli.StringFlag{
		Name:    flagStage,
		Aliases: []string{"s"},
		Usage:   "Deployment stage (" + strings.Join(stageNames(), ", ") + ").",
		EnvVars: []string{"WGTSRNA_STAGE"},
	}
	outFlag := &ucli.StringFlag{
		Name:    flagOut,
		Aliases: []string{"o"},
		Value:   "deploy.out",
		Usage:   "Output directory for the synthesized templates.",
	}
	formatFlag := &ucli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"f"},
		Value:   string(synth.CloudFormationJSON),
		Usage:   "Template format (" + strings.Join(formatNames, ", ") + ").",
	}

	return &ucli.App{
		Name:      "wgtsrna",
		Usage:     "Deployment definitions of the dragen-wgts-rna pipeline manager.",
		Writer:    opts.Out,
		ErrWriter: opts.Err,
		// Exit codes are decided by main, never by the library.
		ExitErrHandler: func(*ucli.Context, error) {},
		OnUsageError:   onUsageError,
		Flags: []ucli.Flag{
			&ucli.StringFlag{
				Name:    flagLogLevel,
				Value:   "info",
				Usage:   "Logging level: 'debug', 'info', 'warn' or 'error'.",
				EnvVars: []string{"WGTSRNA_LOG_LEVEL"},
			},
			&ucli.StringFlag{
				Name:    flagLogFormat,
				Value:   "text",
				Usage:   "Log output format: 'text' or 'json'.",
				EnvVars: []string{"WGTSRNA_LOG_FORMAT"},
			},
			&ucli.StringFlag{
				Name:    flagStages,
				Usage:   "Stage table override: an .hcl file or a directory of .hcl files.",
				EnvVars: []string{"WGTSRNA_STAGES"},
			},
		},
		Before: func(c *ucli.Context) error {
			cfg, err := app.NewConfig(app.Config{
				StagesPath: c.String(flagStages),
				LogLevel:   c.String(flagLogLevel),
				LogFormat:  c.String(flagLogFormat),
			})
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			a, err := app.New(c.Context, opts.Err, cfg)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			if c.App.Metadata == nil {
				c.App.Metadata = map[string]interface{}{}
			}
			c.App.Metadata[appMetadataKey] = a
			return nil
		},
		Action: func(c *ucli.Context) error {
			if c.Args().Present() {
				return usageError("unknown command %q", c.Args().First())
			}
			return ucli.ShowAppHelp(c)
		},
		Commands: []*ucli.Command{
			{
				Name:         "synth",
				Usage:        "Render the stacks of a stage into deployment templates.",
				Flags:        []ucli.Flag{stageFlag, outFlag, formatFlag},
				OnUsageError: onUsageError,
				Action: func(c *ucli.Context) error {
					name, format, err := stageAndFormat(c)
					if err != nil {
						return err
					}
					manifest, err := appFrom(c).Synth(c.Context, name, c.String(flagOut), format)
					if err != nil {
						return err
					}
					for _, file := range manifest.Files() {
						fmt.Fprintln(c.App.Writer, file)
					}
					return nil
				},
			},
			{
				Name:         "parameters",
				Usage:        "Print the parameter store entries of a stage.",
				Flags:        []ucli.Flag{stageFlag},
				OnUsageError: onUsageError,
				Action: func(c *ucli.Context) error {
					name, err := stageFrom(c)
					if err != nil {
						return err
					}
					params, err := appFrom(c).Parameters(c.Context, name)
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "PATH\tVALUE")
					for _, p := range params {
						fmt.Fprintf(w, "%s\t%s\n", p.Name, p.Value)
					}
					return w.Flush()
				},
			},
			{
				Name:         "lambdas",
				Usage:        "Print the Lambda functions and the capabilities they need.",
				OnUsageError: onUsageError,
				Action: func(c *ucli.Context) error {
					rows, err := appFrom(c).Lambdas()
					if err != nil {
						return err
					}
					w := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
					fmt.Fprintln(w, "NAME\tFUNCTION\tAPI TOOLS\tSCHEMA REGISTRY\tSSM PARAMETERS")
					for _, row := range rows {
						fmt.Fprintf(w, "%s\t%s\t%t\t%t\t%t\n",
							row.Name, row.FunctionName,
							row.Requirements.NeedsOrcabusAPITools,
							row.Requirements.NeedsSchemaRegistryAccess,
							row.Requirements.NeedsSSMParametersAccess,
						)
					}
					return w.Flush()
				},
			},
			{
				Name:         "publish",
				Usage:        "Synthesize a stage and upload the templates to the asset bucket.",
				Description:  "The bucket is configured through " + publish.EnvPrefix + "_* environment variables.",
				Flags:        []ucli.Flag{stageFlag, outFlag, formatFlag},
				OnUsageError: onUsageError,
				Action: func(c *ucli.Context) error {
					name, format, err := stageAndFormat(c)
					if err != nil {
						return err
					}
					cfg, err := publish.ConfigFromEnv()
					if err != nil {
						return usageError("invalid publish configuration: %v", err)
					}
					client, err := opts.NewObjectPutter(cfg)
					if err != nil {
						return fmt.Errorf("failed to create object store client: %w", err)
					}
					keys, err := appFrom(c).Publish(c.Context, name, c.String(flagOut), format, client, cfg)
					if err != nil {
						return err
					}
					for _, key := range keys {
						fmt.Fprintf(c.App.Writer, "s3://%s/%s\n", cfg.Bucket, key)
					}
					return nil
				},
			},
		},
	}
}

func onUsageError(_ *ucli.Context, err error, _ bool) error {
	return &ExitError{Code: 2, Message: err.Error()}
}

func appFrom(c *ucli.Context) *app.App {
	return c.App.Metadata[appMetadataKey].(*app.App)
}

func stageFrom(c *ucli.Context) (stage.Name, error) {
	text := c.String(flagStage)
	if text == "" {
		return "", usageError("--%s is required", flagStage)
	}
	name, err := stage.Parse(text)
	if err != nil {
		return "", &ExitError{Code: 2, Message: err.Error()}
	}
	return name, nil
}

func stageAndFormat(c *ucli.Context) (stage.Name, synth.Format, error) {
	name, err := stageFrom(c)
	if err != nil {
		return "", "", err
	}
	format, err := synth.ParseFormat(c.String(flagFormat))
	if err != nil {
		return "", "", &ExitError{Code: 2, Message: err.Error()}
	}
	return name, format, nil
}

func stageNames() []string {
	names := make([]string, len(stage.Names))
	for i, n := range stage.Names {
		names[i] = string(n)
	}
	return names
}

// ExitCode maps an error returned by Run onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
