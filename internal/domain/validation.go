package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingRequiredField is matched by validation errors for empty required fields
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrMissingReference is matched by validation errors for absent required foreign keys
	ErrMissingReference = errors.New("missing required reference")
)

// ValidationError reports the first field that failed validation.
// No state change happens when a save returns a ValidationError.
type ValidationError struct {
	Entity string `json:"entity"`
	Field  string `json:"field"`
	Kind   error  `json:"-"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Entity, e.Field, e.Kind)
}

// Unwrap exposes the kind so errors.Is matches the sentinel errors
func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// Message returns the text shown to the user
func (e *ValidationError) Message() string {
	if errors.Is(e.Kind, ErrMissingReference) {
		return "Keine ID gefunden"
	}
	if e.Field == "name" {
		return "Bitte Name eingeben"
	}
	return fmt.Sprintf("Bitte %s eingeben", e.Field)
}

// IsValidationError reports whether err is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// "reference" marks a required foreign key; it fails exactly like "required"
		v.RegisterAlias("reference", "required")
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("db"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		validate = v
	})
	return validate
}

// validateEntity runs the struct tags of v and converts the first failure
func validateEntity(entity string, v any) error {
	err := structValidator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%s: validate: %w", entity, err)
	}

	fe := fieldErrs[0]
	kind := ErrMissingRequiredField
	if fe.Tag() == "reference" {
		kind = ErrMissingReference
	}
	return &ValidationError{Entity: entity, Field: fe.Field(), Kind: kind}
}
