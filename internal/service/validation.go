package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/it-logbook-api/internal/domain"
)

// NewValidator returns a validator that knows the logbook enumerations
// through the "status" and "shift" tags.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		return domain.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("shift", func(fl validator.FieldLevel) bool {
		return domain.Shift(fl.Field().String()).Valid()
	})
	return v
}
