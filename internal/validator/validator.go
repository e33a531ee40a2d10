// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"taxinator/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("user_role", validateUserRole)
		_ = v.RegisterValidation("tax_year", validateTaxYear)
	}
}

func validateUserRole(fl validator.FieldLevel) bool {
	_, ok := models.ParseRole(fl.Field().String())
	return ok
}

// validateTaxYear bounds tax years to a sane filing window. Upstream
// providers have sent two-digit years before; reject them outright.
func validateTaxYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 2000 && year <= 2100
}
