package app

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Brazilian phone numbers as customers actually type them: optional
// +55, DDD, 8 or 9 digits, with or without separators.
var brPhonePattern = regexp.MustCompile(`^\+?(55)?[\s\-.]?\(?\d{2}\)?[\s\-.]?9?\d{4}[\s\-.]?\d{4}$`)

func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterValidation("brphone", func(fl validator.FieldLevel) bool {
		return brPhonePattern.MatchString(fl.Field().String())
	})
}
