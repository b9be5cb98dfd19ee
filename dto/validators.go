package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"agencydash/model"
)

// RegisterValidators adds the domain tags used in request bindings to
// gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	rules := map[string]validator.Func{
		"stage": func(fl validator.FieldLevel) bool {
			return model.StageIndex(fl.Field().String()) >= 0
		},
		"taskstatus": func(fl validator.FieldLevel) bool {
			_, ok := model.CanonicalStatus(fl.Field().String())
			return ok
		},
		"taskdate": func(fl validator.FieldLevel) bool {
			_, ok := model.ParseDate(fl.Field().String())
			return ok
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}
