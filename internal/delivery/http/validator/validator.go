// Package validator adapts go-playground/validator to echo.Validator.
package validator

import (
	playground "github.com/go-playground/validator/v10"

	domainerrors "guidemyai/internal/domain/errors"
)

// Validator validates bound request structs by their `validate` tags.
type Validator struct {
	validate *playground.Validate
}

// New creates the echo validator.
func New() *Validator {
	return &Validator{validate: playground.New()}
}

// Validate implements echo.Validator. Tag failures surface as 400 AppErrors so
// the error middleware renders them in the wire shape.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.NewValidationError(validationMessage(err))
	}

	return nil
}

func validationMessage(err error) string {
	var fieldErrors playground.ValidationErrors
	if ok := asValidationErrors(err, &fieldErrors); ok && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		switch {
		case fe.Tag() == "required":
			return fe.Field() + " is required"
		case fe.Tag() == "email":
			return "A valid email is required"
		case fe.Tag() == "min" && fe.Field() == "Password":
			return "Password must be at least " + fe.Param() + " characters"
		}

		return fe.Field() + " is invalid"
	}

	return "Invalid request"
}

func asValidationErrors(err error, target *playground.ValidationErrors) bool {
	fieldErrors, ok := err.(playground.ValidationErrors)
	if !ok {
		return false
	}
	*target = fieldErrors

	return true
}
