package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type registerPayload struct {
	Email    string `binding:"required,email"`
	Password string `binding:"required,password"`
	Role     string `binding:"omitempty,role"`
}

func validate(t *testing.T, payload registerPayload) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := RegisterCustomValidators(); err != nil {
		t.Fatalf("RegisterCustomValidators: %v", err)
	}
	return binding.Validator.ValidateStruct(payload)
}

func TestPasswordValidator(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"long enough", "password123", false},
		{"exactly minimum", strings.Repeat("x", MinPasswordLength), false},
		{"one short", strings.Repeat("x", MinPasswordLength-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(t, registerPayload{Email: "a@b.test", Password: tt.password})
			if (err != nil) != tt.wantErr {
				t.Errorf("password %q: err=%v, wantErr=%v", tt.password, err, tt.wantErr)
			}
		})
	}
}

func TestRoleValidator(t *testing.T) {
	for _, role := range []string{"basic", "premium", "admin"} {
		if err := validate(t, registerPayload{Email: "a@b.test", Password: "password123", Role: role}); err != nil {
			t.Errorf("role %q should pass, got %v", role, err)
		}
	}
	if err := validate(t, registerPayload{Email: "a@b.test", Password: "password123", Role: "root"}); err == nil {
		t.Error("role root should fail validation")
	}
}

func TestFormatErrors(t *testing.T) {
	err := validate(t, registerPayload{Email: "not-an-email", Password: "short"})
	if err == nil {
		t.Fatal("expected validation errors")
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	messages := FormatErrors(err)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d: %v", len(messages), messages)
	}
	joined := strings.Join(messages, "; ")
	if !strings.Contains(joined, "email") || !strings.Contains(joined, "password") {
		t.Errorf("messages should name both fields: %v", messages)
	}
}

func TestFormatErrorsNonValidator(t *testing.T) {
	messages := FormatErrors(errors.New("unexpected EOF"))
	if len(messages) != 1 || messages[0] != "invalid request body" {
		t.Errorf("FormatErrors = %v, want single generic message", messages)
	}
}
