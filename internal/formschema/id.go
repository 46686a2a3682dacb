package formschema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// QuestionID is a question identifier decoded from the hexadecimal
// questionId of the Forms API. The zero value is the null id.
type QuestionID struct {
	value int64
	valid bool
}

// NewQuestionID returns a valid id with the given value.
func NewQuestionID(v int64) QuestionID {
	return QuestionID{value: v, valid: true}
}

// ParseQuestionID parses a hexadecimal questionId. Empty, non-hex or
// out of range input yields the null id.
func ParseQuestionID(hex string) QuestionID {
	if hex == "" {
		return QuestionID{}
	}
	// ParseUint rejects signs; bit size 63 keeps the value within int64.
	v, err := strconv.ParseUint(hex, 16, 63)
	if err != nil {
		return QuestionID{}
	}
	return QuestionID{value: int64(v), valid: true}
}

// Valid reports whether the id was parsed successfully.
func (id QuestionID) Valid() bool { return id.valid }

// Int64 returns the numeric id, 0 for the null id.
func (id QuestionID) Int64() int64 { return id.value }

// String returns the decimal id, or "" for the null id.
func (id QuestionID) String() string {
	if !id.valid {
		return ""
	}
	return strconv.FormatInt(id.value, 10)
}

// MarshalJSON encodes the id as an integer, or null.
func (id QuestionID) MarshalJSON() ([]byte, error) {
	if !id.valid {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, id.value, 10), nil
}

// UnmarshalJSON accepts an integer or null.
func (id *QuestionID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*id = QuestionID{}
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid question id %s: %w", data, err)
	}
	*id = NewQuestionID(v)
	return nil
}

// MarshalYAML encodes the id for gopkg.in/yaml.v3.
func (id QuestionID) MarshalYAML() (interface{}, error) {
	if !id.valid {
		return nil, nil
	}
	return id.value, nil
}
