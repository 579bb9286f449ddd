// Package runner holds the exec-based collaborators of the test
// orchestrator: a model runtime invoked as an external command, and an
// example-input generator.
package runner

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"

	"github.com/modelcheck/modelcheck/model"
)

// ExecRunner runs the model runtime as an external command. The input batch
// is written to a temporary CSV file and the command is invoked with the
// input path and an output path appended as its final two arguments; the
// command must write a JSON array of output records to the output path.
type ExecRunner struct {
	logger  zerolog.Logger
	command []string
}

// NewExecRunner returns an ExecRunner for the given command line.
func NewExecRunner(logger zerolog.Logger, command []string) (*ExecRunner, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("no runner command configured")
	}
	return &ExecRunner{logger: logger, command: command}, nil
}

func (r *ExecRunner) Run(inputs []string) (model.RunResult, error) {
	tmp, err := os.MkdirTemp("", "modelcheck-run-")
	if err != nil {
		return nil, fmt.Errorf("failed to create run directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	inputPath := filepath.Join(tmp, "input.csv")
	if err := writeInputFile(inputPath, inputs); err != nil {
		return nil, err
	}
	outputPath := filepath.Join(tmp, "output.json")

	args := append(slices.Clone(r.command[1:]), inputPath, outputPath)
	cmdLine := append([]string{r.command[0]}, args...)
	r.logger.Debug().Str("cmd", quoteCommand(cmdLine)).Int("rows", len(inputs)).Msg("Invoking model runtime")

	cmd := exec.Command(r.command[0], args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			r.logger.Debug().Str("stderr", strings.TrimSpace(stderr.String())).Msg("Model runtime stderr")
			return nil, fmt.Errorf("model runtime failed with exit code %d", exitErr.ExitCode())
		}
		return nil, fmt.Errorf("failed to invoke model runtime: %w", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("model runtime produced no output file: %w", err)
	}
	return ParseRunResult(data)
}

// ParseRunResult decodes a JSON array of output records. Rows wrapped in the
// {"input": ..., "output": {...}} envelope are unwrapped to the output
// record.
func ParseRunResult(data []byte) (model.RunResult, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("run output is not a JSON array: %w", err)
	}

	result := make(model.RunResult, 0, len(rows))
	for i, row := range rows {
		var envelope struct {
			Input  json.RawMessage `json:"input"`
			Output json.RawMessage `json:"output"`
		}
		if err := json.Unmarshal(row, &envelope); err == nil &&
			envelope.Input != nil && envelope.Output != nil {
			row = envelope.Output
		}

		var rec model.OutputRecord
		if err := json.Unmarshal(row, &rec); err != nil {
			return nil, fmt.Errorf("invalid output record at row %d: %w", i, err)
		}
		result = append(result, rec)
	}
	return result, nil
}

// writeInputFile writes the batch as a single-column CSV with an "input"
// header, the layout model run scripts consume.
func writeInputFile(path string, inputs []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create input file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"input"}); err != nil {
		return err
	}
	for _, input := range inputs {
		if err := w.Write([]string{input}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// ExecGenerator produces example inputs by invoking an external command with
// "-n <count>" appended; the command must print one input row per line.
type ExecGenerator struct {
	logger  zerolog.Logger
	command []string
}

// NewExecGenerator returns an ExecGenerator for the given command line.
func NewExecGenerator(logger zerolog.Logger, command []string) (*ExecGenerator, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("no generator command configured")
	}
	return &ExecGenerator{logger: logger, command: command}, nil
}

func (g *ExecGenerator) Generate(n int) ([]string, error) {
	args := append(slices.Clone(g.command[1:]), "-n", strconv.Itoa(n))
	cmdLine := append([]string{g.command[0]}, args...)
	g.logger.Debug().Str("cmd", quoteCommand(cmdLine)).Msg("Generating example inputs")

	out, err := exec.Command(g.command[0], args...).Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("example generator failed with exit code %d", exitErr.ExitCode())
		}
		return nil, fmt.Errorf("failed to invoke example generator: %w", err)
	}

	var rows []string
	for _, line := range strings.Split(string(out), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) < n {
		return nil, fmt.Errorf("example generator produced %d rows, want %d", len(rows), n)
	}
	return rows[:n], nil
}

// FixedGenerator repeats a single input row; it stands in when no external
// generator command is configured.
type FixedGenerator struct {
	Input string
}

func (g FixedGenerator) Generate(n int) ([]string, error) {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = g.Input
	}
	return rows, nil
}

// quoteCommand renders a command line for log output.
func quoteCommand(args []string) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}
