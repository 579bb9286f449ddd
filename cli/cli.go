package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "modelcheck"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger: logger,
		cli: &cli.App{
			Name:  AppName,
			Usage: "Validate a packaged computational model before publication",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "verbose",
					Usage: "Enable verbose (debug) logging",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("verbose") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "test",
		Usage:     "Run the full check sequence against a model",
		ArgsUsage: "MODEL-ID",
		Action:    app.test,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the test report to this file (when absent, diagnostics print to stdout)",
			},
			&cli.StringFlag{
				Name:  "models-dir",
				Usage: "Directory holding per-model metadata (default: ~/eos/dest)",
			},
			&cli.IntFlag{
				Name:  "samples",
				Usage: "Number of generated example inputs",
			},
			&cli.Float64Flag{
				Name:  "tolerance",
				Usage: "Maximum relative difference between numeric outputs, in percent",
			},
			&cli.Float64Flag{
				Name:  "similarity-threshold",
				Usage: "Minimum string similarity score (0-100) for outputs to match",
			},
			&cli.StringFlag{
				Name:  "org",
				Usage: "Remote organization model repositories are cloned from",
			},
			&cli.StringFlag{
				Name:  "runner",
				Usage: "Model runtime command; input and output paths are appended",
			},
			&cli.StringFlag{
				Name:  "generator",
				Usage: "Example generator command; '-n <count>' is appended",
			},
			&cli.StringFlag{
				Name:  "script-input",
				Usage: "Input file handed to the packaged run script",
			},
			&cli.BoolFlag{
				Name:  "skip-script",
				Usage: "Skip executing the packaged run script",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file; flags override its values",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "validate",
		Usage:     "Check a model's metadata card only",
		ArgsUsage: "MODEL-ID",
		Action:    app.validate,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "models-dir",
				Usage: "Directory holding per-model metadata (default: ~/eos/dest)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML configuration file; flags override its values",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:  "report",
		Usage: "Work with persisted test reports",
		Subcommands: []*cli.Command{
			{
				Name:      "view",
				Usage:     "Print a persisted test report",
				ArgsUsage: "PATH",
				Action:    app.reportView,
			},
		},
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}
