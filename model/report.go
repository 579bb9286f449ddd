package model

import "time"

// Report accumulates the outcome of one full test sequence for a model.
// It is threaded through the orchestrator as a value; each completed check
// returns a copy with its flag set, so no shared mutable state exists.
type Report struct {
	// Model under test
	ModelID string
	// Total size in bytes of the model's cloned source tree
	SizeBytes int64
	// Wall time for the whole check sequence
	Elapsed time.Duration

	// Metadata card passed all vocabulary checks
	MetadataValid bool
	// Model ran on the canonical single input without error
	SingleInputOK bool
	// Model ran on the generated example batch without error
	ExampleInputOK bool
	// Two runs on the identical batch agreed within tolerance
	OutputsConsistent bool
	// Environment was provisioned and the packaged script step completed
	BashRunOK bool
}
