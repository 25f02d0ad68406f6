package utils

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"chakai-booking/internal/data/entity"

	"github.com/go-playground/validator/v10"
)

var (
	validate      = newValidator()
	clockTimeExpr = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
)

func newValidator() *validator.Validate {
	v := validator.New()
	// seattime accepts "HH:MM" or the tentative label
	v.RegisterValidation("seattime", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == entity.TentativeSeatLabel || clockTimeExpr.MatchString(value)
	})
	return v
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum value is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum value is %s", err.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s characters", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid", "uuid4":
		return "Must be a valid UUID"
	case "datetime":
		return fmt.Sprintf("Must match layout %s", err.Param())
	case "seattime":
		return fmt.Sprintf("Must be HH:MM or %s", entity.TentativeSeatLabel)
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string, fields in stable order
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
