package config

import (
	"SafeSphere/internal/api/voice"

	"github.com/go-playground/validator/v10"
)

func NewValidator() *validator.Validate {
	validate := validator.New()

	_ = validate.RegisterValidation(voice.LanguageCodeTag, voice.ValidLanguageCode)

	return validate
}
