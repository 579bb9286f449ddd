// Package env provisions a model's environment: it clones the model source
// repository by its conventional name, measures the tree size, and executes
// the packaged run script.
package env

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"

	"github.com/modelcheck/modelcheck/tester"
)

// DefaultOrg is the remote organization model repositories are published
// under; the repository name is the model id.
const DefaultOrg = "ersilia-os"

// scriptRelPath locates the packaged run script inside a cloned source tree.
const scriptRelPath = "model/framework/run.sh"

// Env implements tester.Environment on top of git and bash subprocesses.
type Env struct {
	logger zerolog.Logger
	// Remote organization to clone from (default DefaultOrg)
	Org string
	// Parent directory for per-run working directories; empty uses the
	// system temp dir
	WorkDir string
}

// New returns an Env cloning from org, or DefaultOrg when org is empty.
func New(logger zerolog.Logger, org string) *Env {
	if org == "" {
		org = DefaultOrg
	}
	return &Env{logger: logger, Org: org}
}

// Provision clones the model repository into a fresh working directory and
// walks its size. A failed clone is logged and yields a zero-size Provision;
// only the working directory allocation itself can fail.
func (e *Env) Provision(modelID string) (tester.Provision, error) {
	dir, err := os.MkdirTemp(e.WorkDir, "modelcheck-")
	if err != nil {
		return tester.Provision{}, fmt.Errorf("failed to create working directory: %w", err)
	}
	prov := tester.Provision{Dir: dir}

	repoURL := fmt.Sprintf("https://github.com/%s/%s.git", e.Org, modelID)
	args := []string{"git", "clone", "--depth", "1", repoURL, dir}
	e.logger.Debug().Str("cmd", quoteCommand(args)).Msg("Cloning model repository")

	cmd := exec.Command(args[0], args[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		e.logger.Warn().
			Err(err).
			Str("url", repoURL).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("Failed to clone model repository")
		return prov, nil
	}

	size, err := dirSize(dir)
	if err != nil {
		e.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to measure model size")
	}
	prov.SizeBytes = size

	script := filepath.Join(dir, filepath.FromSlash(scriptRelPath))
	if _, err := os.Stat(script); err == nil {
		prov.ScriptPath = script
	}

	e.logger.Info().
		Str("model", modelID).
		Int64("size_bytes", prov.SizeBytes).
		Bool("has_script", prov.ScriptPath != "").
		Msg("Model source provisioned")
	return prov, nil
}

// RunScript executes the packaged run script with the framework directory,
// input file and output file as arguments, streaming its output through.
func (e *Env) RunScript(p tester.Provision, inputFile, outputFile string) error {
	if p.ScriptPath == "" {
		return fmt.Errorf("no run script provisioned")
	}

	args := []string{"bash", p.ScriptPath, ".", inputFile, outputFile}
	e.logger.Info().Str("cmd", quoteCommand(args)).Msg("Running packaged script")

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = filepath.Dir(p.ScriptPath)

	var stderrBuf bytes.Buffer
	cmd.Stdout = os.Stdout
	cmd.Stderr = io.MultiWriter(os.Stderr, &stderrBuf)

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("run script failed with exit code %d", exitErr.ExitCode())
		}
		return fmt.Errorf("failed to execute run script: %w", err)
	}
	return nil
}

// Release removes the provisioned working directory.
func (e *Env) Release(p tester.Provision) error {
	if p.Dir == "" {
		return nil
	}
	return os.RemoveAll(p.Dir)
}

// dirSize sums the file sizes under root.
func dirSize(root string) (int64, error) {
	var total int64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})
	return total, err
}

// quoteCommand renders a command line for log output.
func quoteCommand(args []string) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}
