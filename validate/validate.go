// Package validate checks a model card against the fixed publication
// taxonomy. Every field must match its closed vocabulary; validation runs in
// a fixed order and stops at the first violation.
package validate

import (
	"slices"
	"strings"

	"github.com/modelcheck/modelcheck/model"
)

// entrySeparator joins the entries of multi-valued card fields.
const entrySeparator = ", "

// Default vocabularies for each enumerated card field.
var (
	DefaultTasks = []string{
		"Classification", "Regression", "Generative", "Representation",
		"Similarity", "Clustering", "Dimensionality reduction",
	}
	DefaultInputs      = []string{"Compound", "Protein", "Text"}
	DefaultInputShapes = []string{"Single", "Pair", "List", "Pair of Lists", "List of Lists"}
	DefaultOutputs     = []string{
		"Boolean", "Compound", "Descriptor", "Distance", "Experimental value",
		"Image", "Other value", "Probability", "Protein", "Score", "Text",
	}
	DefaultOutputTypes  = []string{"String", "Float", "Integer"}
	DefaultOutputShapes = []string{"Single", "List", "Flexible List", "Matrix", "Serializable Object"}
)

// Validator validates model cards for a single model id. The vocabulary
// tables default to the publication taxonomy and can be overridden.
type Validator struct {
	ModelID string

	Tasks        []string
	Inputs       []string
	InputShapes  []string
	Outputs      []string
	OutputTypes  []string
	OutputShapes []string
}

// New returns a Validator for modelID with the default vocabularies.
func New(modelID string) *Validator {
	return &Validator{
		ModelID:      modelID,
		Tasks:        DefaultTasks,
		Inputs:       DefaultInputs,
		InputShapes:  DefaultInputShapes,
		Outputs:      DefaultOutputs,
		OutputTypes:  DefaultOutputTypes,
		OutputShapes: DefaultOutputShapes,
	}
}

// Validate applies the field rules in fixed order and returns the first
// violation: identifier, slug, description, task, input, input shape,
// output, output type, output shape.
func (v *Validator) Validate(card model.Card) error {
	if card.Identifier != v.ModelID {
		return &WrongIdentifierError{Want: v.ModelID, Got: card.Identifier}
	}
	if card.Slug == "" {
		return &EmptyFieldError{Field: "slug"}
	}
	if card.Description == "" {
		return &EmptyFieldError{Field: "Description"}
	}
	for _, task := range splitEntries(string(card.Task)) {
		if !slices.Contains(v.Tasks, task) {
			return &InvalidEntryError{Field: "Task", Value: task}
		}
	}
	if !slices.Contains(v.Inputs, string(card.Input)) {
		return &InvalidEntryError{Field: "Input", Value: string(card.Input)}
	}
	if !slices.Contains(v.InputShapes, card.InputShape) {
		return &InvalidEntryError{Field: "Input Shape", Value: card.InputShape}
	}
	for _, output := range splitEntries(string(card.Output)) {
		if !slices.Contains(v.Outputs, output) {
			return &InvalidEntryError{Field: "Output", Value: output}
		}
	}
	if !slices.Contains(v.OutputTypes, string(card.OutputType)) {
		return &InvalidEntryError{Field: "Output Type", Value: string(card.OutputType)}
	}
	if !slices.Contains(v.OutputShapes, card.OutputShape) {
		return &InvalidEntryError{Field: "Output Shape", Value: card.OutputShape}
	}
	return nil
}

func splitEntries(s string) []string {
	return strings.Split(s, entrySeparator)
}
