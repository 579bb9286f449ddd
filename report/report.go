// Package report serializes the aggregated test outcome to a persisted JSON
// record.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/modelcheck/modelcheck/model"
)

// Size is the model size expressed in derived units.
type Size struct {
	KB float64 `json:"KB"`
	MB float64 `json:"MB"`
	GB float64 `json:"GB"`
}

// Record is the on-disk layout of a test report.
type Record struct {
	ModelSize         Size    `json:"model size"`
	Seconds           float64 `json:"time to run tests (seconds)"`
	BasicChecks       bool    `json:"basic checks passed"`
	SingleInput       bool    `json:"single input run without error"`
	ExampleInput      bool    `json:"example input run without error"`
	OutputsConsistent bool    `json:"outputs consistent"`
	BashRun           bool    `json:"bash run without error"`
}

// FromReport derives the persisted record from an aggregated report.
func FromReport(rep model.Report) Record {
	kb := float64(rep.SizeBytes) / 1024
	return Record{
		ModelSize: Size{
			KB: kb,
			MB: kb / 1024,
			GB: kb / 1024 / 1024,
		},
		Seconds:           rep.Elapsed.Seconds(),
		BasicChecks:       rep.MetadataValid,
		SingleInput:       rep.SingleInputOK,
		ExampleInput:      rep.ExampleInputOK,
		OutputsConsistent: rep.OutputsConsistent,
		BashRun:           rep.BashRunOK,
	}
}

// Write persists the report record to path as indented JSON.
func Write(rep model.Report, path string) error {
	data, err := json.MarshalIndent(FromReport(rep), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// Load reads a persisted report record from path.
func Load(path string) (Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read report: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return rec, nil
}
