// Package tester sequences the publication checks for one model: metadata
// validation, single-input and example-batch smoke tests, the duplicate-run
// consistency check, and environment provisioning. Each completed check sets
// its flag on the report; the first failing check terminates the sequence
// with its error propagated unmodified.
package tester

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/modelcheck/modelcheck/consistency"
	"github.com/modelcheck/modelcheck/model"
	"github.com/modelcheck/modelcheck/validate"
)

const (
	// DefaultNumSamples is the size of the generated example batch.
	DefaultNumSamples = 5
	// DefaultCanonicalInput is the fixed compound representation used for
	// the single-input smoke test.
	DefaultCanonicalInput = "COc1ccc2c(NC(=O)Nc3cccc(C(F)(F)F)n3)ccnc2c1"
)

// ModelRunner executes the model runtime over a batch of input rows.
type ModelRunner interface {
	Run(inputs []string) (model.RunResult, error)
}

// ExampleGenerator produces n example input rows for the model under test.
type ExampleGenerator interface {
	Generate(n int) ([]string, error)
}

// Provision describes a provisioned model environment.
type Provision struct {
	// Directory holding the cloned source tree; empty when provisioning
	// could not allocate one
	Dir string
	// Total size in bytes of the cloned tree; zero when the clone failed
	SizeBytes int64
	// Path of the packaged run script; empty when the model has none
	ScriptPath string
}

// Environment retrieves a model's source and executes its packaged script.
type Environment interface {
	// Provision clones the model source into a fresh working directory
	// and measures its size. Clone failures are not errors; they yield a
	// Provision with zero size.
	Provision(modelID string) (Provision, error)
	// RunScript executes the packaged run script against inputFile,
	// writing results to outputFile.
	RunScript(p Provision, inputFile, outputFile string) error
	// Release frees the provisioned working directory.
	Release(p Provision) error
}

// Config holds the orchestrator settings.
type Config struct {
	// Directory holding per-model metadata
	ModelsDir string
	// Size of the generated example batch (default DefaultNumSamples)
	NumSamples int
	// Single-input probe (default DefaultCanonicalInput)
	CanonicalInput string
	// Input file handed to the packaged run script; when empty the script
	// step is skipped
	ScriptInput string
	// Skip executing the packaged run script even when present
	SkipScript bool
}

// Tester runs the check sequence against one model id.
type Tester struct {
	logger    zerolog.Logger
	cfg       Config
	checker   *consistency.Checker
	runner    ModelRunner
	generator ExampleGenerator
	env       Environment
}

// New returns a Tester wired to its collaborators.
func New(logger zerolog.Logger, cfg Config, checker *consistency.Checker, runner ModelRunner, generator ExampleGenerator, env Environment) *Tester {
	if cfg.NumSamples == 0 {
		cfg.NumSamples = DefaultNumSamples
	}
	if cfg.CanonicalInput == "" {
		cfg.CanonicalInput = DefaultCanonicalInput
	}
	return &Tester{
		logger:    logger,
		cfg:       cfg,
		checker:   checker,
		runner:    runner,
		generator: generator,
		env:       env,
	}
}

// Run executes the full check sequence for modelID. The returned report
// carries the flags of all checks completed before the first failure and the
// elapsed wall time, also when an error is returned.
func (t *Tester) Run(modelID string) (rep model.Report, err error) {
	start := time.Now()
	rep.ModelID = modelID
	defer func() {
		rep.Elapsed = time.Since(start)
	}()

	// 1. Metadata
	t.logger.Info().Str("model", modelID).Msg("Checking model information")
	card, err := model.LoadCard(t.cfg.ModelsDir, modelID)
	if err != nil {
		return rep, err
	}
	if err := validate.New(modelID).Validate(card); err != nil {
		return rep, err
	}
	rep.MetadataValid = true
	t.logger.Info().Msg("Model information verified")

	// 2. Single canonical input
	t.logger.Info().Str("input", t.cfg.CanonicalInput).Msg("Testing model on single input")
	single, err := t.runner.Run([]string{t.cfg.CanonicalInput})
	if err != nil {
		return rep, err
	}
	if len(single) == 0 {
		return rep, &consistency.MissingOutputsError{Want: 1, Got: 0}
	}
	rep.SingleInputOK = true

	// 3. Generated example batch
	t.logger.Info().Int("samples", t.cfg.NumSamples).Msg("Testing model on generated example batch")
	batch, err := t.generator.Generate(t.cfg.NumSamples)
	if err != nil {
		return rep, err
	}
	if _, err := t.runner.Run(batch); err != nil {
		return rep, err
	}
	rep.ExampleInputOK = true

	// 4. Duplicate runs on the identical batch.
	// The two runs are independent and could execute concurrently, but the
	// runtime collaborator is not required to support that, so they are
	// issued one after another.
	t.logger.Info().Msg("Confirming model produces consistent output")
	first, err := t.runner.Run(batch)
	if err != nil {
		return rep, err
	}
	second, err := t.runner.Run(batch)
	if err != nil {
		return rep, err
	}
	if err := t.checker.Check(first, second, t.cfg.NumSamples); err != nil {
		return rep, err
	}
	rep.OutputsConsistent = true
	t.logger.Info().Msg("Model output is consistent")

	// 5. Environment provisioning
	t.logger.Info().Msg("Provisioning model environment")
	prov, err := t.env.Provision(modelID)
	if err != nil {
		return rep, err
	}
	defer func() {
		if relErr := t.env.Release(prov); relErr != nil {
			t.logger.Warn().Err(relErr).Str("dir", prov.Dir).Msg("Failed to release provisioned environment")
		}
	}()
	rep.SizeBytes = prov.SizeBytes

	if !t.cfg.SkipScript && prov.ScriptPath != "" && t.cfg.ScriptInput != "" {
		outputFile := filepath.Join(prov.Dir, "script-output.json")
		if err := t.env.RunScript(prov, t.cfg.ScriptInput, outputFile); err != nil {
			return rep, err
		}
	}
	rep.BashRunOK = true

	return rep, nil
}
