package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InformationFile is the conventional name of the per-model metadata file.
const InformationFile = "information.json"

// Card is the descriptive metadata a model publishes alongside its
// implementation. Fields are validated against closed vocabularies
// before a model is considered publishable.
type Card struct {
	Identifier  string     `json:"Identifier"`
	Slug        string     `json:"Slug"`
	Description string     `json:"Description"`
	Task        CardString `json:"Task"`
	Input       CardString `json:"Input"`
	InputShape  string     `json:"Input Shape"`
	Output      CardString `json:"Output"`
	OutputType  CardString `json:"Output Type"`
	OutputShape string     `json:"Output Shape"`
}

// CardString decodes a card field that information files store either as a
// plain string or as a list of strings. Lists are joined with ", ", the same
// separator used for multi-valued fields stored as strings.
type CardString string

func (s *CardString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = CardString(str)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("card field is neither a string nor a list of strings: %s", data)
	}
	*s = CardString(strings.Join(list, ", "))
	return nil
}

func (s CardString) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

// InformationFileNotExistError indicates that a model has no metadata file at
// the expected location.
type InformationFileNotExistError struct {
	ModelID string
	Path    string
}

func (e *InformationFileNotExistError) Error() string {
	return fmt.Sprintf("information file for model %s does not exist at %s", e.ModelID, e.Path)
}

// information mirrors the on-disk layout of the metadata file, which nests
// the card under a top-level "card" key.
type information struct {
	Card Card `json:"card"`
}

// LoadCard reads the model card from <dir>/<modelID>/information.json.
func LoadCard(dir, modelID string) (Card, error) {
	path := filepath.Join(dir, modelID, InformationFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Card{}, &InformationFileNotExistError{ModelID: modelID, Path: path}
	}
	if err != nil {
		return Card{}, fmt.Errorf("failed to read information file: %w", err)
	}

	var info information
	if err := json.Unmarshal(data, &info); err != nil {
		return Card{}, fmt.Errorf("failed to parse information file %s: %w", path, err)
	}
	return info.Card, nil
}
