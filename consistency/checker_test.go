package consistency

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modelcheck/modelcheck/model"
)

func record(fields ...model.Field) model.OutputRecord {
	return model.OutputRecord(fields)
}

func numberRow(key string, n float64) model.OutputRecord {
	return record(model.Field{Key: key, Value: model.Number(n)})
}

func TestChecker_NumericTolerance(t *testing.T) {
	tests := []struct {
		name       string
		a, b       float64
		consistent bool
	}{
		{name: "within tolerance", a: 100, b: 96, consistent: true},
		{name: "at tolerance boundary", a: 100, b: 95, consistent: false},
		{name: "identical", a: 0.5, b: 0.5, consistent: true},
		{name: "both zero", a: 0, b: 0, consistent: true},
		{name: "zero against nonzero", a: 0, b: 0.1, consistent: false},
		{name: "nonzero against zero", a: 0.1, b: 0, consistent: false},
	}

	c := New(Config{}, nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := model.RunResult{numberRow("score", tt.a)}
			b := model.RunResult{numberRow("score", tt.b)}

			err := c.Check(a, b, 1)
			if tt.consistent {
				require.NoError(t, err)
			} else {
				var inconsistent *InconsistentOutputsError
				require.ErrorAs(t, err, &inconsistent)
				require.Equal(t, "score", inconsistent.Key)
			}
		})
	}
}

func TestChecker_ConfiguredTolerance(t *testing.T) {
	// 100 vs 95 is a 5.13% relative difference: outside the default 5%,
	// inside a configured 10%.
	a := model.RunResult{numberRow("score", 100)}
	b := model.RunResult{numberRow("score", 95)}

	require.Error(t, New(Config{}, nil).Check(a, b, 1))
	require.NoError(t, New(Config{Tolerance: 10}, nil).Check(a, b, 1))
}

func TestChecker_NullSkipsKey(t *testing.T) {
	a := model.RunResult{record(model.Field{Key: "score", Value: model.Null()})}
	b := model.RunResult{numberRow("score", 42)}

	require.NoError(t, New(Config{}, nil).Check(a, b, 1))
}

func TestChecker_TypeMismatch(t *testing.T) {
	a := model.RunResult{numberRow("score", 1)}
	b := model.RunResult{record(model.Field{Key: "score", Value: model.String("1")})}

	err := New(Config{}, nil).Check(a, b, 1)
	var mismatch *InconsistentTypesError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "score", mismatch.Key)

	first, second := mismatch.RunResults()
	require.Equal(t, a, first)
	require.Equal(t, b, second)
}

func TestChecker_KeysMatchedByName(t *testing.T) {
	// The same fields in different declaration order still compare by key.
	a := model.RunResult{record(
		model.Field{Key: "score", Value: model.Number(1)},
		model.Field{Key: "label", Value: model.String("active")},
	)}
	b := model.RunResult{record(
		model.Field{Key: "label", Value: model.String("active")},
		model.Field{Key: "score", Value: model.Number(1)},
	)}

	require.NoError(t, New(Config{}, nil).Check(a, b, 1))
}

func TestChecker_MissingKey(t *testing.T) {
	a := model.RunResult{record(
		model.Field{Key: "score", Value: model.Number(1)},
		model.Field{Key: "label", Value: model.String("active")},
	)}
	b := model.RunResult{record(
		model.Field{Key: "score", Value: model.Number(1)},
		model.Field{Key: "class", Value: model.String("active")},
	)}

	var mismatch *InconsistentTypesError
	require.ErrorAs(t, New(Config{}, nil).Check(a, b, 1), &mismatch)
	require.Equal(t, "label", mismatch.Key)
}

func TestChecker_DivergingFieldCount(t *testing.T) {
	a := model.RunResult{record(
		model.Field{Key: "score", Value: model.Number(1)},
		model.Field{Key: "label", Value: model.String("active")},
	)}
	b := model.RunResult{numberRow("score", 1)}

	var mismatch *InconsistentTypesError
	require.ErrorAs(t, New(Config{}, nil).Check(a, b, 1), &mismatch)
}

func TestChecker_StringSimilarity(t *testing.T) {
	c := New(Config{}, nil)

	a := model.RunResult{record(model.Field{Key: "smiles", Value: model.String("CCO")})}
	b := model.RunResult{record(model.Field{Key: "smiles", Value: model.String("CCO")})}
	require.NoError(t, c.Check(a, b, 1))

	b = model.RunResult{record(model.Field{Key: "smiles", Value: model.String("NCCN")})}
	var inconsistent *InconsistentOutputsError
	require.ErrorAs(t, c.Check(a, b, 1), &inconsistent)
	require.Equal(t, "smiles", inconsistent.Key)
}

func TestChecker_ListElements(t *testing.T) {
	c := New(Config{}, nil)

	a := model.RunResult{record(model.Field{
		Key:   "descriptors",
		Value: model.ListOf(model.Number(10), model.String("aromatic")),
	})}
	b := model.RunResult{record(model.Field{
		Key:   "descriptors",
		Value: model.ListOf(model.Number(10.2), model.String("aromatic")),
	})}
	require.NoError(t, c.Check(a, b, 1))

	b = model.RunResult{record(model.Field{
		Key:   "descriptors",
		Value: model.ListOf(model.Number(12), model.String("aromatic")),
	})}
	var inconsistent *InconsistentOutputsError
	require.ErrorAs(t, c.Check(a, b, 1), &inconsistent)
}

func TestChecker_ListLengthDrift(t *testing.T) {
	a := model.RunResult{record(model.Field{
		Key:   "descriptors",
		Value: model.ListOf(model.Number(1), model.Number(2)),
	})}
	b := model.RunResult{record(model.Field{
		Key:   "descriptors",
		Value: model.ListOf(model.Number(1)),
	})}

	var inconsistent *InconsistentOutputsError
	require.ErrorAs(t, New(Config{}, nil).Check(a, b, 1), &inconsistent)
}

func TestChecker_RowCountInvariant(t *testing.T) {
	rows := func(n int) model.RunResult {
		res := make(model.RunResult, n)
		for i := range res {
			res[i] = numberRow("score", 1)
		}
		return res
	}

	c := New(Config{}, nil)
	require.NoError(t, c.Check(rows(5), rows(5), 5))

	err := c.Check(rows(4), rows(4), 5)
	var missing *MissingOutputsError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, 5, missing.Want)
	require.Equal(t, 4, missing.Got)
}

func TestChecker_EmptyResults(t *testing.T) {
	c := New(Config{}, nil)
	require.NoError(t, c.Check(model.RunResult{}, model.RunResult{}, 0))

	var missing *MissingOutputsError
	require.ErrorAs(t, c.Check(model.RunResult{}, model.RunResult{}, 5), &missing)
}
