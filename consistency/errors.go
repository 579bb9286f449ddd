package consistency

import (
	"fmt"

	"github.com/modelcheck/modelcheck/model"
)

// InconsistentTypesError indicates structural drift between two runs: a field
// changed runtime type, went missing, or the records' key sets diverged.
type InconsistentTypesError struct {
	Row     int
	Key     string
	Results [2]model.RunResult
}

func (e *InconsistentTypesError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("output records at row %d have diverging fields", e.Row)
	}
	return fmt.Sprintf("output field %q at row %d has inconsistent types across runs", e.Key, e.Row)
}

// RunResults returns the full pair of result sequences for diagnostics.
func (e *InconsistentTypesError) RunResults() (a, b model.RunResult) {
	return e.Results[0], e.Results[1]
}

// InconsistentOutputsError indicates two runs produced values for the same
// field that diverge beyond the configured tolerance.
type InconsistentOutputsError struct {
	Row     int
	Key     string
	Value1  string
	Value2  string
	Results [2]model.RunResult
}

func (e *InconsistentOutputsError) Error() string {
	return fmt.Sprintf("output field %q at row %d is inconsistent across runs: %s vs %s",
		e.Key, e.Row, e.Value1, e.Value2)
}

// RunResults returns the full pair of result sequences for diagnostics.
func (e *InconsistentOutputsError) RunResults() (a, b model.RunResult) {
	return e.Results[0], e.Results[1]
}

// MissingOutputsError indicates a run produced fewer or more output rows than
// inputs were supplied.
type MissingOutputsError struct {
	Want int
	Got  int
}

func (e *MissingOutputsError) Error() string {
	return fmt.Sprintf("expected %d output rows, got %d", e.Want, e.Got)
}
