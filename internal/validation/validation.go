// Package validation applies structural validation to create requests
// before they reach persistence. It checks types, ranges and presence
// only; referential checks stay with the storage layer.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/klubbkatalog/backend/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// Struct validates a tagged request struct and returns a
// *models.ValidationError naming the first offending field.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validation failed: %w", err)
	}

	fe := fieldErrs[0]
	field := jsonFieldName(fe)

	switch fe.Tag() {
	case "required":
		return models.NewValidationError(field, "%s is required", field)
	case "email":
		return models.NewValidationError(field, "%s must be a valid email address", field)
	case "gte", "lte":
		return models.NewValidationError(field, "%s must be between 1 and 5", field)
	default:
		return models.NewValidationError(field, "%s is invalid", field)
	}
}

// jsonFieldName reports the field under its wire name so validation
// messages match what the client actually sent.
func jsonFieldName(fe validator.FieldError) string {
	name := fe.Field()
	switch name {
	case "OrgNumber":
		return "orgNumber"
	case "AuthorName":
		return "authorName"
	default:
		return strings.ToLower(name[:1]) + name[1:]
	}
}
