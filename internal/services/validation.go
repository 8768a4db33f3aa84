package services

import (
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return newError(ErrValidation, "%s", err.Error())
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return newError(ErrValidation, "%s is required", fe.Field())
	case "min":
		return newError(ErrValidation, "%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return newError(ErrValidation, "%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return newError(ErrValidation, "%s must be one of %s", fe.Field(), fe.Param())
	}
	return newError(ErrValidation, "%s is invalid", fe.Field())
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return newError(ErrValidation, "amount must be positive")
	}
	if amount.Exponent() < -2 && !amount.Equal(amount.Round(2)) {
		return newError(ErrValidation, "amount must have at most 2 decimal places")
	}
	return nil
}

// validateOpaqueJSON only checks well-formedness; shape is the boundary's concern.
func validateOpaqueJSON(field string, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	if !json.Valid(raw) {
		return newError(ErrValidation, "%s must be valid JSON", field)
	}
	return nil
}
