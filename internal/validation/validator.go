// Package validation provides request validation utilities using the validator/v10 library.
package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/Rishi-Dave/memoirAI/internal/domain"
	domainerrors "github.com/Rishi-Dave/memoirAI/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for our domain. It registers
// custom "mood" and "tone" validations against the closed vocabularies.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	// The panics here are unreachable: RegisterValidation only fails
	// on an empty tag name.
	if err := v.RegisterValidation("mood", validateMood); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("tone", validateTone); err != nil {
		panic(err)
	}

	return &Validator{v: v}
}

func validateMood(fl validator.FieldLevel) bool {
	return domain.IsValidMood(fl.Field().String())
}

func validateTone(fl validator.FieldLevel) bool {
	switch domain.Tone(fl.Field().String()) {
	case domain.ToneWhimsical, domain.ToneNostalgic, domain.ToneAdventurous, domain.ToneHeartwarming:
		return true
	default:
		return false
	}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return v.formatError(err)
	}
	return nil
}

// formatError converts validator errors to domain errors.
func (v *Validator) formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Collect all field errors
	fieldErrors := make(map[string]string)
	for _, e := range validationErrs {
		fieldErrors[e.Field()] = v.friendlyMessage(e)
	}

	// Return domain validation error with details
	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

func (v *Validator) friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", e.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s characters", e.Param())
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	case "mood":
		return "must be a recognized mood"
	case "tone":
		return "must be a recognized story tone"
	case "base64":
		return "must be base64 encoded"
	default:
		return "is invalid"
	}
}
