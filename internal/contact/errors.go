package contact

import (
	"fmt"
	"strings"

	"github.com/svera/camposanto/internal/sentinel"
	"golang.org/x/exp/slices"
)

// FieldError is returned when a field can no longer be modified
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s cannot be changed", e.Field)
}

func (e *FieldError) Unwrap() error {
	return sentinel.ErrImmutableField
}

// ValidationErrors maps each invalid field to a description of the problem
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for field := range v {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return "invalid fields: " + strings.Join(fields, ", ")
}

func (v ValidationErrors) Unwrap() error {
	return sentinel.ErrValidation
}
