package uploader

import (
	"fmt"
	"strings"
)

// ValidationError describes one failed check for one file.
type ValidationError struct {
	Field   string
	File    string
	Rule    string
	Message string
}

func (e ValidationError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s (%s): %s", e.Field, e.File, e.Message)
}

// ValidationErrors is the ordered sequence of errors accumulated by a Validator.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, err.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

// Has checks if a field has any errors.
func (ve ValidationErrors) Has(field string) bool {
	for _, err := range ve {
		if err.Field == field {
			return true
		}
	}
	return false
}

// Get returns the messages recorded for a field.
func (ve ValidationErrors) Get(field string) []string {
	var messages []string
	for _, err := range ve {
		if err.Field == field {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

// ForFile returns the errors recorded for a file name.
func (ve ValidationErrors) ForFile(name string) ValidationErrors {
	var out ValidationErrors
	for _, err := range ve {
		if err.File == name {
			out = append(out, err)
		}
	}
	return out
}

// Fields returns field names with errors in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var fields []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Field] {
			fields = append(fields, err.Field)
			seen[err.Field] = true
		}
	}
	return fields
}

// IsEmpty returns true if there are no validation errors.
func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}
