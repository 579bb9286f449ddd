package cli

// This file contains the configuration layer: defaults, the optional YAML
// configuration file, and flag overrides.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/modelcheck/modelcheck/consistency"
	"github.com/modelcheck/modelcheck/env"
	"github.com/modelcheck/modelcheck/tester"
)

// Config collects every tunable of the test sequence. Values come from the
// defaults, then an optional YAML file, then command-line flags, each layer
// overriding the previous one.
type Config struct {
	ModelsDir           string   `yaml:"models_dir"`
	Samples             int      `yaml:"samples"`
	Tolerance           float64  `yaml:"tolerance"`
	SimilarityThreshold float64  `yaml:"similarity_threshold"`
	Org                 string   `yaml:"org"`
	Runner              []string `yaml:"runner"`
	Generator           []string `yaml:"generator"`
	ScriptInput         string   `yaml:"script_input"`
	SkipScript          bool     `yaml:"skip_script"`
}

func defaultConfig() Config {
	return Config{
		ModelsDir:           defaultModelsDir(),
		Samples:             tester.DefaultNumSamples,
		Tolerance:           consistency.DefaultTolerance,
		SimilarityThreshold: consistency.DefaultSimilarityThreshold,
		Org:                 env.DefaultOrg,
	}
}

// defaultModelsDir is the conventional per-user model store.
func defaultModelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "eos", "dest")
}

// loadConfig resolves the effective configuration for a command invocation.
func (a *App) loadConfig(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if path := ctx.String("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		a.logger.Debug().Str("path", path).Msg("Loaded configuration file")
	}

	if ctx.IsSet("models-dir") {
		cfg.ModelsDir = ctx.String("models-dir")
	}
	if ctx.IsSet("samples") {
		cfg.Samples = ctx.Int("samples")
	}
	if ctx.IsSet("tolerance") {
		cfg.Tolerance = ctx.Float64("tolerance")
	}
	if ctx.IsSet("similarity-threshold") {
		cfg.SimilarityThreshold = ctx.Float64("similarity-threshold")
	}
	if ctx.IsSet("org") {
		cfg.Org = ctx.String("org")
	}
	if ctx.IsSet("runner") {
		cfg.Runner = strings.Fields(ctx.String("runner"))
	}
	if ctx.IsSet("generator") {
		cfg.Generator = strings.Fields(ctx.String("generator"))
	}
	if ctx.IsSet("script-input") {
		cfg.ScriptInput = ctx.String("script-input")
	}
	if ctx.IsSet("skip-script") {
		cfg.SkipScript = ctx.Bool("skip-script")
	}

	return cfg, nil
}
