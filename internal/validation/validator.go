// Package validation checks structs with go-playground/validator and reports
// failures as domain validation errors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/spellitplease/spellit/internal/errors"
	"github.com/spellitplease/spellit/internal/normalize"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator with the "character" tag registered.
// The tag accepts strings holding exactly one user-perceived character.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their yaml or json name when they have one.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"yaml", "json"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name == "-" {
				break
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	err := v.RegisterValidation("character", func(fl validator.FieldLevel) bool {
		return normalize.IsSingleCharacter(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("validation: register character tag: %v", err))
	}

	return &Validator{v: v}
}

// Validate validates a struct and returns a domain error.
func (v *Validator) Validate(s any) error {
	if err := v.v.Struct(s); err != nil {
		return formatError(err)
	}
	return nil
}

func formatError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, e := range validationErrs {
		fieldErrors[fieldPath(e)] = friendlyMessage(e)
	}
	return domainerrors.ValidationWithDetails("validation failed", fieldErrors)
}

// fieldPath drops the root struct name: "Config.Storage.DataPath" -> "Storage.DataPath".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_unless", "required_if":
		return "is required"
	case "character":
		return "must be exactly one character"
	case "oneof":
		return "must be one of: " + e.Param()
	case "gte", "min":
		return "must be at least " + e.Param()
	case "lte", "max":
		return "must be at most " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "ltfield":
		return "must be less than " + e.Param()
	default:
		return fmt.Sprintf("failed %q validation", e.Tag())
	}
}
