package service

import (
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// NewValidator returns the validator used by the auth service with the
// strongpwd rule registered: at least 8 runes, one upper-case letter and one
// digit.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("strongpwd", func(fl validator.FieldLevel) bool {
		pwd := fl.Field().String()
		var hasUpper, hasDigit bool
		for _, r := range pwd {
			if unicode.IsUpper(r) {
				hasUpper = true
			}
			if unicode.IsDigit(r) {
				hasDigit = true
			}
		}
		return utf8.RuneCountInString(pwd) >= 8 && hasUpper && hasDigit
	})
	return v
}
