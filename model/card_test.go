package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCard(t *testing.T) {
	dir := t.TempDir()
	modelDir := filepath.Join(dir, "eos4e40")
	require.NoError(t, os.MkdirAll(modelDir, 0755))

	data := `{
  "card": {
    "Identifier": "eos4e40",
    "Slug": "chemprop-antibiotic",
    "Description": "Antibiotic activity prediction",
    "Task": "Classification",
    "Input": ["Compound"],
    "Input Shape": "Single",
    "Output": "Probability, Score",
    "Output Type": ["Float"],
    "Output Shape": "Single"
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, InformationFile), []byte(data), 0644))

	card, err := LoadCard(dir, "eos4e40")
	require.NoError(t, err)
	require.Equal(t, "eos4e40", card.Identifier)
	require.Equal(t, CardString("Classification"), card.Task)
	// List-valued fields decode to their ", "-joined form
	require.Equal(t, CardString("Compound"), card.Input)
	require.Equal(t, CardString("Float"), card.OutputType)
	require.Equal(t, CardString("Probability, Score"), card.Output)
	require.Equal(t, "Single", card.InputShape)
}

func TestLoadCard_MissingFile(t *testing.T) {
	_, err := LoadCard(t.TempDir(), "eos0000")

	var notExist *InformationFileNotExistError
	require.ErrorAs(t, err, &notExist)
	require.Equal(t, "eos0000", notExist.ModelID)
}

func TestLoadCard_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	modelDir := filepath.Join(dir, "eos4e40")
	require.NoError(t, os.MkdirAll(modelDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(modelDir, InformationFile), []byte("{"), 0644))

	_, err := LoadCard(dir, "eos4e40")
	require.Error(t, err)

	var notExist *InformationFileNotExistError
	require.False(t, errors.As(err, &notExist))
}

func TestCardString_ListOfStrings(t *testing.T) {
	var s CardString
	require.NoError(t, s.UnmarshalJSON([]byte(`["Classification", "Regression"]`)))
	require.Equal(t, CardString("Classification, Regression"), s)

	require.Error(t, s.UnmarshalJSON([]byte(`42`)))
}
