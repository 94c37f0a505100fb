package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fastcrm/fastcrm/internal/constants"
	"github.com/fastcrm/fastcrm/internal/model"
	"github.com/gin-gonic/gin"
)

func runRoleCheck(t *testing.T, role interface{}, min model.Role) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if role != nil {
		c.Set(constants.GinKeyUserRole, role)
	}

	RequireRole(min)(c)
	return w
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		role interface{}
		min  model.Role
		want int
	}{
		{"basic passes basic", model.RoleBasic, model.RoleBasic, http.StatusOK},
		{"basic blocked from premium", model.RoleBasic, model.RolePremium, http.StatusForbidden},
		{"basic blocked from admin", model.RoleBasic, model.RoleAdmin, http.StatusForbidden},
		{"premium passes premium", model.RolePremium, model.RolePremium, http.StatusOK},
		{"premium blocked from admin", model.RolePremium, model.RoleAdmin, http.StatusForbidden},
		{"admin passes everything", model.RoleAdmin, model.RoleBasic, http.StatusOK},
		{"missing role is unauthenticated", nil, model.RoleBasic, http.StatusUnauthorized},
		{"unknown role is unauthenticated", model.Role("root"), model.RoleBasic, http.StatusUnauthorized},
		{"wrong type is unauthenticated", "admin", model.RoleBasic, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := runRoleCheck(t, tt.role, tt.min)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
