// Package validation checks configuration before a generation run starts.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	countryPattern    = regexp.MustCompile(`^[A-Z]{2}$`)
	identifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

	// MaxIdentifierLength is PostgreSQL's NAMEDATALEN minus one.
	MaxIdentifierLength = 63
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("country", func(fl validator.FieldLevel) bool {
		return countryPattern.MatchString(fl.Field().String())
	})
}

// Struct validates v against its `validate` struct tags. The tag "country"
// accepts a two-letter upper-case code.
func Struct(v any) error {
	if v == nil {
		return errors.New("value to validate cannot be nil")
	}
	return formatValidationError(validate.Struct(v))
}

// CountryCode validates a single country code.
func CountryCode(code string) error {
	if !countryPattern.MatchString(code) {
		return fmt.Errorf("country code %q must be two upper-case letters", code)
	}
	return nil
}

// Identifier validates a SQL identifier such as a schema name.
func Identifier(name string) error {
	if name == "" {
		return errors.New("identifier cannot be empty")
	}
	if len(name) > MaxIdentifierLength {
		return fmt.Errorf("identifier %q exceeds maximum length of %d characters", name, MaxIdentifierLength)
	}
	if !identifierPattern.MatchString(name) {
		return fmt.Errorf("identifier %q is invalid (must start with letter or underscore, followed by alphanumeric or underscore)", name)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Namespace()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min", "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max", "lte":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "country":
			return fmt.Errorf("%s: %q is not a two-letter upper-case country code", field, e.Value())
		case "url":
			return fmt.Errorf("%s: must be a URL", field)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
