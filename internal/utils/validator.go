package utils

import (
	"Dish-Discovery/entities"
	"Dish-Discovery/pkg/ranking"
	"fmt"
	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var customTags = map[string]validator.Func{
	"foodtype": func(fl validator.FieldLevel) bool {
		return entities.FoodType(fl.Field().String()).Valid()
	},
	"cuisine": func(fl validator.FieldLevel) bool {
		_, ok := ranking.ParseCuisine(fl.Field().String())
		return ok
	},
	"sortmode": func(fl validator.FieldLevel) bool {
		_, ok := ranking.ParseSortMode(fl.Field().String())
		return ok
	},
}

// InitValidator builds the shared validator. Validate stays nil when a
// custom tag fails to register.
func InitValidator() error {
	if Validate != nil {
		return nil
	}
	v, err := newValidator(customTags)
	if err != nil {
		return err
	}
	Validate = v
	return nil
}

func newValidator(tags map[string]validator.Func) (*validator.Validate, error) {
	v := validator.New()
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register validation %q: %w", tag, err)
		}
	}
	return v, nil
}
