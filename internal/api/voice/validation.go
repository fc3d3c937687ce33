package voice

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const LanguageCodeTag = "language_code"

var languageCodePattern = regexp.MustCompile(`^[a-z]{2}-[A-Z]{2}$`)

// ValidLanguageCode accepts BCP 47 style codes such as en-US.
func ValidLanguageCode(fl validator.FieldLevel) bool {
	return languageCodePattern.MatchString(fl.Field().String())
}
