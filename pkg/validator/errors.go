package validator

import (
	"fmt"
	"strings"

	goValidator "github.com/go-playground/validator/v10"
)

// ValidationError holds a specific field error.
type ValidationError struct {
	Field   string
	Message string
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// ErrorList collects multiple validation errors.
type ErrorList []ValidationError

// AddMsg appends a single error message for field.
func (e *ErrorList) AddMsg(field string, msg string) {
	*e = append(*e, ValidationError{Field: field, Message: msg})
}

// Err returns nil if no errors, or the list itself if errors exist.
func (e ErrorList) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e ErrorList) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("invalid options (%d errors):\n", len(e)))
	for _, err := range e {
		b.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}

	return strings.TrimRight(b.String(), "\n")
}

// HandleValidatorError turns validator errors into an ErrorList, one entry
// per offending field.
func HandleValidatorError(errs error) error {
	validationErrors, ok := errs.(goValidator.ValidationErrors)
	if !ok {
		return errs
	}

	var list ErrorList
	seen := make(map[string]bool)
	for _, err := range validationErrors {
		// Dive errors name the element, e.g. "Sizes[1]".
		field, _, _ := strings.Cut(err.StructField(), "[")
		if seen[field] {
			continue
		}
		seen[field] = true
		list.AddMsg(strings.ToLower(field), ConversionFieldDescriptions[field])
	}

	return list.Err()
}

func quoteList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
