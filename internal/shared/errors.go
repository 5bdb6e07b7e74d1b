package shared

import (
	"fmt"
	"strings"
)

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrStoreUnavailable = fmt.Errorf("store unavailable")
	ErrUnsupportedStore = fmt.Errorf("unsupported store backend")

	// Document errors
	ErrParse         = fmt.Errorf("invalid JSON document")
	ErrInvalidFile   = fmt.Errorf("invalid import file")
	ErrNotFound      = fmt.Errorf("record not found")
	ErrDuplicateName = fmt.Errorf("duplicate playlist name")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)

// ParseError reports stored or imported content that is not a valid document.
type ParseError struct {
	Source string // "store" or the imported file name
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v (%s): %v", ErrParse, e.Source, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }

// FieldError is a single rejected form field, keyed by its JSON path.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation for one submission.
type ValidationError struct {
	Kind   string       `json:"kind"`
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	return fmt.Sprintf("%v %s: %s", ErrInvalidInput, e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Field returns the error attached to field, if any.
func (e *ValidationError) Field(field string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f, true
		}
	}
	return FieldError{}, false
}

// NotFoundError reports an update or delete aimed at an identity absent from the document.
type NotFoundError struct {
	Kind     string
	Identity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Identity, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateNameError reports a playlist name that already exists in the document.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%v: %q", ErrDuplicateName, e.Name)
}

func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }
