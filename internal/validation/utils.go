package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

// newValidator names fields by their `koanf` tag, so error paths match the
// configuration keys. Untagged fields keep their Go name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("koanf"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// FieldError represents a single validation issue for a specific field.
type FieldError struct {
	// Field is the dotted key path below the root struct, e.g. "database.host".
	Field   string
	Message string
}

// Errors is the list of validation issues of one struct.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Struct validates v against its `validate` tags.
//
// It returns nil, an Errors value listing every failing field, or the
// validator's own error when v cannot be validated at all.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	return extractValidationError(validationErrors)
}

func extractValidationError(validationErrors validator.ValidationErrors) Errors {
	fieldErrors := make(Errors, 0, len(validationErrors))

	// Convert validator.ValidationErrors into user-friendly messages.
	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "required_if":
			// Param is "Field value", e.g. "Driver postgres".
			if field, value, ok := strings.Cut(err.Param(), " "); ok {
				msg = fmt.Sprintf("is required when %s is %s", field, value)
			} else {
				msg = "is required"
			}

		case "min":
			// min tag means:
			// - for strings: minimum length
			// - for numbers and durations: minimum value
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		default:
			// Fallback for tags not explicitly handled above.
			if err.Param() != "" {
				msg = fmt.Sprintf("failed %s:%s", err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("failed %s", err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, FieldError{
			Field:   fieldPath(err.Namespace()),
			Message: msg,
		})
	}

	return fieldErrors
}

// fieldPath drops the root type name: "Config.database.host" -> "database.host".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}
