package validate

import "fmt"

// WrongIdentifierError indicates that the card's Identifier does not match
// the model under test.
type WrongIdentifierError struct {
	Want string
	Got  string
}

func (e *WrongIdentifierError) Error() string {
	return fmt.Sprintf("card identifier %q does not match model %q", e.Got, e.Want)
}

// EmptyFieldError indicates a required card field is empty.
type EmptyFieldError struct {
	Field string
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("card field %q must not be empty", e.Field)
}

// InvalidEntryError indicates a card field holds a value outside its closed
// vocabulary.
type InvalidEntryError struct {
	Field string
	Value string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid entry %q for card field %q", e.Value, e.Field)
}
