// Package consistency decides whether two independent runs of a model on the
// identical input batch represent the same behavior. Numbers may drift within
// a relative-difference tolerance and strings within a fuzzy-similarity
// threshold; structural drift between the runs always fails.
package consistency

import (
	"fmt"
	"math"

	"github.com/modelcheck/modelcheck/model"
)

const (
	// DefaultTolerance is the maximum relative difference, in percent,
	// between two numbers still considered equivalent.
	DefaultTolerance = 5.0
	// DefaultSimilarityThreshold is the minimum similarity score, on the
	// scorer's 0-100 scale, for two strings to be considered equivalent.
	DefaultSimilarityThreshold = 95.0
)

// Config holds the tolerances applied by a Checker.
type Config struct {
	Tolerance           float64
	SimilarityThreshold float64
}

// Checker compares run results. The zero tolerances are replaced by the
// package defaults, and a nil scorer by EditDistanceScorer.
type Checker struct {
	cfg    Config
	scorer SimilarityScorer
}

// New returns a Checker with the given tolerances and scorer.
func New(cfg Config, scorer SimilarityScorer) *Checker {
	if cfg.Tolerance == 0 {
		cfg.Tolerance = DefaultTolerance
	}
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = DefaultSimilarityThreshold
	}
	if scorer == nil {
		scorer = EditDistanceScorer{}
	}
	return &Checker{cfg: cfg, scorer: scorer}
}

// Check compares two run results produced from one generated batch of
// numSamples inputs. Fields are matched by key name; a's declared key order
// drives the walk. After all rows pass, the result length must equal
// numSamples.
func (c *Checker) Check(a, b model.RunResult, numSamples int) error {
	rows := min(len(a), len(b))
	for i := 0; i < rows; i++ {
		ra, rb := a[i], b[i]
		if len(ra) != len(rb) {
			return &InconsistentTypesError{Row: i, Results: [2]model.RunResult{a, b}}
		}
		for _, f := range ra {
			vb, ok := rb.Lookup(f.Key)
			if !ok {
				return &InconsistentTypesError{Row: i, Key: f.Key, Results: [2]model.RunResult{a, b}}
			}
			if err := c.checkValue(i, f.Key, f.Value, vb, a, b); err != nil {
				return err
			}
		}
	}
	if len(a) != numSamples || len(b) != numSamples {
		return &MissingOutputsError{Want: numSamples, Got: min(len(a), len(b))}
	}
	return nil
}

// checkValue applies the type-dependent equivalence rule for one field.
// A null first value is trivially consistent and skips the key.
func (c *Checker) checkValue(row int, key string, va, vb model.Value, a, b model.RunResult) error {
	if va.Kind == model.KindNull {
		return nil
	}
	if va.Kind != vb.Kind {
		return &InconsistentTypesError{Row: row, Key: key, Results: [2]model.RunResult{a, b}}
	}

	switch va.Kind {
	case model.KindNumber:
		if !c.withinTolerance(va.Num, vb.Num) {
			return c.outputsError(row, key, va, vb, a, b)
		}
	case model.KindString:
		if c.scorer.Score(va.Str, vb.Str) < c.cfg.SimilarityThreshold {
			return c.outputsError(row, key, va, vb, a, b)
		}
	case model.KindList:
		if len(va.List) != len(vb.List) {
			return c.outputsError(row, key, va, vb, a, b)
		}
		for j := range va.List {
			if err := c.checkValue(row, key, va.List[j], vb.List[j], a, b); err != nil {
				return err
			}
		}
	}
	return nil
}

// withinTolerance implements the relative-difference rule. A zero on either
// side short-circuits to exact equality, since the relative difference is
// undefined around zero.
func (c *Checker) withinTolerance(x, y float64) bool {
	if x == 0 || y == 0 {
		return x == y
	}
	return 100*math.Abs(x-y)/((x+y)/2) < c.cfg.Tolerance
}

func (c *Checker) outputsError(row int, key string, va, vb model.Value, a, b model.RunResult) error {
	return &InconsistentOutputsError{
		Row:     row,
		Key:     key,
		Value1:  renderValue(va),
		Value2:  renderValue(vb),
		Results: [2]model.RunResult{a, b},
	}
}

func renderValue(v model.Value) string {
	switch v.Kind {
	case model.KindNull:
		return "null"
	case model.KindNumber:
		return fmt.Sprintf("%v", v.Num)
	case model.KindString:
		return fmt.Sprintf("%q", v.Str)
	case model.KindList:
		return fmt.Sprintf("list of %d elements", len(v.List))
	}
	return v.Kind.String()
}
