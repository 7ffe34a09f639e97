package server

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/Daskott/contactbook/server/models"
	"github.com/Daskott/contactbook/utils"
	"github.com/go-playground/validator"
)

const VALIDATION_FAILED_MSG = "The given data was invalid."

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their json names e.g. 'first_name'
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := RegisterValidators(v); err != nil {
		logg.Panic(err)
	}

	return v
}

func RegisterValidators(validate *validator.Validate) error {
	return validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		// if whitespace in password return false
		err := validate.Var(fl.Field().String(), "contains= ")
		if err == nil {
			return false
		}
		return len(fl.Field().String()) > 0
	})
}

// validationErrors turns the result of validate.Struct into field->messages.
// Fields already in 'skip' keep the messages they have.
func validationErrors(err error, skip map[string][]string) (map[string][]string, error) {
	fieldErrs := make(map[string][]string)
	if err == nil {
		return fieldErrs, nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}

	for _, fieldErr := range validationErrs {
		if _, ok := skip[fieldErr.Field()]; ok {
			continue
		}
		fieldErrs[fieldErr.Field()] = append(fieldErrs[fieldErr.Field()], validationMessage(fieldErr))
	}

	return fieldErrs, nil
}

func validationMessage(fieldErr validator.FieldError) string {
	attribute := utils.Humanize(fieldErr.Field())

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attribute)
	case "max":
		return fmt.Sprintf("The %s may not be greater than %s characters.", attribute, fieldErr.Param())
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", attribute)
	}
	return fmt.Sprintf("The %s is invalid.", attribute)
}

// validateContactInput checks 'input' against the contact rules. The
// organization must belong to 'accountID'. An empty result means valid.
func validateContactInput(ctx context.Context, accountID uint, input *models.ContactInput, typeErrs map[string][]string) (map[string][]string, error) {
	fieldErrs, err := validationErrors(validate.Struct(input), typeErrs)
	if err != nil {
		return nil, err
	}

	for field, messages := range typeErrs {
		fieldErrs[field] = messages
	}

	if input.OrganizationID != nil && len(typeErrs["organization_id"]) == 0 {
		exists, err := models.OrganizationExists(ctx, accountID, *input.OrganizationID)
		if err != nil {
			return nil, err
		}

		if !exists {
			fieldErrs["organization_id"] = append(fieldErrs["organization_id"], "The selected organization id is invalid.")
		}
	}

	return fieldErrs, nil
}
