package handlers

import (
	"fmt"

	"github.com/SscSPs/ledger_core/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// CurrencyCodeTag accepts three ASCII letters in either case; services upper-case the value.
const CurrencyCodeTag = "currency_code"

func validateCurrencyCode(fl validator.FieldLevel) bool {
	return domain.IsCurrencyCode(domain.NormalizeCurrency(fl.Field().String()))
}

// RegisterValidators installs the custom binding tags on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation(CurrencyCodeTag, validateCurrencyCode)
}
