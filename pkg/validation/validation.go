package validation

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the enforced password minimum. The historical
// frontends disagreed between 6 and 8; 8 is the documented choice.
const MinPasswordLength = 8

// RegisterCustomValidators attaches FastCRM's validators to gin's
// binding engine. Call once at startup.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("password", validatePassword); err != nil {
		return fmt.Errorf("register password validator: %w", err)
	}
	if err := v.RegisterValidation("role", validateRole); err != nil {
		return fmt.Errorf("register role validator: %w", err)
	}
	return nil
}

func validatePassword(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) >= MinPasswordLength
}

func validateRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "basic", "premium", "admin":
		return true
	}
	return false
}

// FormatErrors turns validator errors into user-facing messages.
// Non-validator errors collapse to a single generic message.
func FormatErrors(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{"invalid request body"}
	}

	messages := make([]string, 0, len(verrs))
	for _, e := range verrs {
		messages = append(messages, message(e))
	}
	return messages
}

func message(e validator.FieldError) string {
	field := strings.ToLower(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, e.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, e.Param())
	case "password":
		return fmt.Sprintf("%s must be at least %d characters", field, MinPasswordLength)
	case "role":
		return fmt.Sprintf("%s must be one of: basic, premium, admin", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
