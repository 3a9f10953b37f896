// Package validation reports field-level validation failures so HTTP
// handlers can surface one structured error per offending field.
package validation

import (
	"fmt"
	"strings"
)

// FieldError describes a single invalid field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error collects the invalid fields of one request
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records a failure for field
func (e *Error) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Err returns e as an error, or nil when no field failed
func (e *Error) Err() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
