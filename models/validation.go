package models

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FieldError reports a single invalid field. Missing marks required fields
// that were empty.
type FieldError struct {
	Field   string
	Reason  string
	Missing bool
}

func (e *FieldError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func requireText(field, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Missing: true}
	}
	return maxLength(field, value, max)
}

func maxLength(field, value string, max int) error {
	if max > 0 && utf8.RuneCountInString(value) > max {
		return &FieldError{Field: field, Reason: fmt.Sprintf("cannot exceed %d characters", max)}
	}
	return nil
}
