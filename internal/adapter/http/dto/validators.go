package dto

import (
	"rangerblock/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("rb_address", validateAddress)
		_ = v.RegisterValidation("rb_coin", validateCoin)
	}
}

// validateAddress accepts well-formed wallet addresses, system sinks included.
func validateAddress(fl validator.FieldLevel) bool {
	return domain.IsValidAddress(fl.Field().String())
}

func validateCoin(fl validator.FieldLevel) bool {
	_, ok := domain.LookupCoin(fl.Field().String())
	return ok
}
