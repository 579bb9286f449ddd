package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind discriminates the runtime type of an output value.
type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is one output field value: null, a number, a string, or an ordered
// list of number-or-string elements.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	List []Value
}

// Null, Number, String and ListOf are convenience constructors.
func Null() Value              { return Value{Kind: KindNull} }
func Number(n float64) Value   { return Value{Kind: KindNumber, Num: n} }
func String(s string) Value    { return Value{Kind: KindString, Str: s} }
func ListOf(vs ...Value) Value { return Value{Kind: KindList, List: vs} }

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty output value")
	}
	switch data[0] {
	case 'n':
		*v = Value{Kind: KindNull}
		return nil
	case '"':
		v.Kind = KindString
		return json.Unmarshal(data, &v.Str)
	case '[':
		v.Kind = KindList
		return json.Unmarshal(data, &v.List)
	case '{', 't', 'f':
		return fmt.Errorf("unsupported output value: %s", data)
	default:
		v.Kind = KindNumber
		return json.Unmarshal(data, &v.Num)
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindNull:
		return []byte("null"), nil
	case KindNumber:
		return json.Marshal(v.Num)
	case KindString:
		return json.Marshal(v.Str)
	case KindList:
		if v.List == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.List)
	}
	return nil, fmt.Errorf("cannot marshal value of kind %s", v.Kind)
}

// Field is one key/value pair of an output record.
type Field struct {
	Key   string
	Value Value
}

// OutputRecord is the output for a single input row: an ordered sequence of
// fields, preserving the key order of the JSON object it was decoded from.
type OutputRecord []Field

// Lookup returns the value stored under key.
func (r OutputRecord) Lookup(key string) (Value, bool) {
	for _, f := range r {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Value{}, false
}

// UnmarshalJSON decodes a JSON object through the token stream so that the
// declared key order survives the round trip.
func (r *OutputRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("output record must be a JSON object, got %s", data)
	}

	var rec OutputRecord
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("unexpected token %v in output record", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v Value
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("invalid value for output field %q: %w", key, err)
		}
		rec = append(rec, Field{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = rec
	return nil
}

func (r OutputRecord) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RunResult is the ordered output of one model invocation over a batch of
// inputs, one record per input row. A RunResult is owned by the caller that
// requested the run and is never mutated after creation.
type RunResult []OutputRecord
