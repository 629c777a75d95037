package handlers

import (
	"sync"

	"snack_factory_backend/internal/models"
	"snack_factory_backend/pkg/utils"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the domain binding tags on gin's validator.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			utils.LogWarn("Binding engine is not go-playground/validator; domain tags not registered")
			return
		}
		if err := registerDomainValidations(v); err != nil {
			utils.LogError(err, "Failed to register binding validations")
		}
	})
}

func registerDomainValidations(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"material_unit":  models.IsValidMaterialUnit,
		"snack_category": models.IsValidSnackCategory,
		"payment_method": models.IsValidPaymentMethod,
	}
	for tag, valid := range rules {
		valid := valid
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return valid(fl.Field().String())
		}); err != nil {
			return err
		}
	}
	return nil
}
