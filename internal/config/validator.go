// Package config provides configuration management for the report generator.
package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError represents a single validation error with user-friendly message.
type ValidationError struct {
	Field   string      // Field path (e.g., "report.root_dir")
	Tag     string      // Validation tag that failed (e.g., "required", "oneof")
	Value   interface{} // Actual value that failed validation
	Message string      // User-friendly error message
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  - %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// validate is the package-level validator instance.
var validate *validator.Validate

// init initializes the validator with custom validations.
func init() {
	validate = NewValidator()
}

// NewValidator returns a validator that reports fields by their mapstructure
// or yaml key and knows the media_type tag.
func NewValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"mapstructure", "yaml"} {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	// Register custom validation for "<type>/<subtype>" strings
	v.RegisterValidation("media_type", validateMediaType)

	return v
}

// Validate validates the configuration and returns user-friendly error messages.
func Validate(cfg *Config) error {
	var validationErrors ValidationErrors

	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		validationErrors = append(validationErrors, TranslateErrors(err)...)
	}

	// Run custom business logic validations
	if errs := validateInput(cfg); len(errs) > 0 {
		validationErrors = append(validationErrors, errs...)
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// TranslateErrors converts validator errors into ValidationErrors.
func TranslateErrors(err error) ValidationErrors {
	var validationErrors ValidationErrors

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return ValidationErrors{{Field: "", Tag: "", Message: err.Error()}}
	}

	for _, fe := range fieldErrors {
		validationErrors = append(validationErrors, &ValidationError{
			Field:   formatFieldName(fe.Namespace()),
			Tag:     fe.Tag(),
			Value:   fe.Value(),
			Message: translateError(fe),
		})
	}
	return validationErrors
}

// validateMediaType checks for a "<type>/<subtype>" string with a non-empty subtype.
func validateMediaType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // Empty is handled by required
	}
	mediaType, _, _ := strings.Cut(value, ";")
	_, subtype, ok := strings.Cut(mediaType, "/")
	return ok && strings.TrimSpace(subtype) != ""
}

// validateInput validates the HTTP input settings.
func validateInput(cfg *Config) ValidationErrors {
	var errors ValidationErrors

	if cfg.Input.Timeout <= 0 {
		errors = append(errors, &ValidationError{
			Field:   "input.timeout",
			Tag:     "positive",
			Value:   cfg.Input.Timeout,
			Message: fmt.Sprintf("timeout must be positive, got %s", cfg.Input.Timeout),
		})
	}

	if cfg.Input.Retry.BaseDelay < 0 {
		errors = append(errors, &ValidationError{
			Field:   "input.retry.base_delay",
			Tag:     "non_negative",
			Value:   cfg.Input.Retry.BaseDelay,
			Message: fmt.Sprintf("base delay must not be negative, got %s", cfg.Input.Retry.BaseDelay),
		})
	}

	return errors
}

// formatFieldName converts the validator field namespace to a user-friendly format.
// Example: "Config.report.root_dir" -> "report.root_dir"
func formatFieldName(namespace string) string {
	// Remove the root struct name (e.g., "Config.")
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}

	for i, part := range parts {
		parts[i] = strings.ToLower(part)
	}

	return strings.Join(parts, ".")
}

// translateError converts a validator.FieldError to a user-friendly message.
func translateError(fe validator.FieldError) string {
	field := formatFieldName(fe.Namespace())

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "gte":
		return fmt.Sprintf("value must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("value must be less than or equal to %s", fe.Param())
	case "min":
		return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
	case "oneof":
		return fmt.Sprintf("value must be one of: %s", fe.Param())
	case "media_type":
		return fmt.Sprintf("invalid format %q: expected <type>/<subtype>", fe.Value())
	default:
		return fmt.Sprintf("validation failed on '%s' tag for field '%s'", fe.Tag(), field)
	}
}
