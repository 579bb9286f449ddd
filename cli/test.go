package cli

// This file contains the test command: it wires the orchestrator to its
// collaborators, runs the full check sequence and persists the report.

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/modelcheck/modelcheck/consistency"
	"github.com/modelcheck/modelcheck/env"
	"github.com/modelcheck/modelcheck/model"
	"github.com/modelcheck/modelcheck/report"
	"github.com/modelcheck/modelcheck/runner"
	"github.com/modelcheck/modelcheck/tester"
)

func (a *App) test(ctx *cli.Context) error {
	modelID := ctx.Args().First()
	if modelID == "" {
		return fmt.Errorf("no model id specified")
	}
	outputPath := ctx.String("output")

	cfg, err := a.loadConfig(ctx)
	if err != nil {
		return err
	}

	mdl, err := runner.NewExecRunner(a.logger, cfg.Runner)
	if err != nil {
		return err
	}

	var generator tester.ExampleGenerator
	if len(cfg.Generator) > 0 {
		generator, err = runner.NewExecGenerator(a.logger, cfg.Generator)
		if err != nil {
			return err
		}
	} else {
		a.logger.Debug().Msg("No example generator configured, repeating the canonical input")
		generator = runner.FixedGenerator{Input: tester.DefaultCanonicalInput}
	}

	checker := consistency.New(consistency.Config{
		Tolerance:           cfg.Tolerance,
		SimilarityThreshold: cfg.SimilarityThreshold,
	}, nil)

	t := tester.New(a.logger, tester.Config{
		ModelsDir:   cfg.ModelsDir,
		NumSamples:  cfg.Samples,
		ScriptInput: cfg.ScriptInput,
		SkipScript:  cfg.SkipScript,
	}, checker, mdl, generator, env.New(a.logger, cfg.Org))

	rep, runErr := t.Run(modelID)
	if runErr != nil {
		a.logger.Error().Err(runErr).Str("model", modelID).Msg("Model check failed")
		if outputPath == "" {
			printDiagnostics(runErr)
		}
	}

	if outputPath != "" {
		if err := report.Write(rep, outputPath); err != nil {
			a.logger.Warn().Err(err).Str("path", outputPath).Msg("Failed to write report")
		} else {
			a.logger.Info().Str("path", outputPath).Msg("Test report written")
		}
	}

	return runErr
}

// resultCarrier is implemented by consistency errors that surface the full
// pair of diverging result sequences.
type resultCarrier interface {
	RunResults() (a, b model.RunResult)
}

// printDiagnostics prints the offending run results before the error
// surfaces, so divergences can be inspected without a report file.
func printDiagnostics(err error) {
	var carrier resultCarrier
	if !errors.As(err, &carrier) {
		return
	}
	first, second := carrier.RunResults()
	for i := 0; i < len(first) && i < len(second); i++ {
		printRecord(first[i])
		printRecord(second[i])
		fmt.Println()
	}
}

func printRecord(rec model.OutputRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to render output record:", err)
		return
	}
	fmt.Println(string(data))
}
