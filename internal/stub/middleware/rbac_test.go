package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agrowork/agrowork-cli/internal/core/domain"
)

func invokeRBAC(role string, allowed ...domain.Role) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/laborers", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != "" {
		c.Set("role", role)
	}

	h := RequireRole(allowed...)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	_ = h(c)
	return rec
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		allowed []domain.Role
		want    int
	}{
		{"matching role passes", "farmer", []domain.Role{domain.RoleFarmer}, http.StatusOK},
		{"either of two roles passes", "laborer", []domain.Role{domain.RoleFarmer, domain.RoleLaborer}, http.StatusOK},
		{"wrong role is forbidden", "laborer", []domain.Role{domain.RoleFarmer}, http.StatusForbidden},
		{"missing role is forbidden", "", []domain.Role{domain.RoleFarmer}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := invokeRBAC(tt.role, tt.allowed...)
			if rec.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}
