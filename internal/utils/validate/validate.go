// Package validate holds the shared go-playground validator instance with
// the application's custom tags registered.
package validate

import (
	"slices"

	"github.com/aanand-mishra/exam-portal/internal/types"
	"github.com/go-playground/validator/v10"
)

const phoneDigits = 10

// v is safe for concurrent use and caches struct metadata, so one
// instance serves every request.
var v = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// "department" accepts only the departments offered at sign-up.
	if err := v.RegisterValidation("department", func(fl validator.FieldLevel) bool {
		return slices.Contains(types.Departments, fl.Field().String())
	}); err != nil {
		panic(err)
	}

	// "phone" accepts a ten-digit mobile number with no separators.
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return isPhone(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

func isPhone(s string) bool {
	if len(s) != phoneDigits {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Struct checks the validate:"..." tags of s. A failure is returned as
// validator.ValidationErrors.
func Struct(s any) error {
	return v.Struct(s)
}
