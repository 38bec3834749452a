// file: internal/server/middleware/rbac_test.go
// version: 1.0.0
// guid: 63af0837-ad68-4f74-81b0-ff99038d6e9c

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/acikyardim/yardim-paneli/internal/models"
)

func rbacRouter(role string, handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		SetAuthContext(c, &models.User{ID: "u1", Role: role, Active: true}, &models.Session{Token: "t"})
		c.Next()
	})
	r.Use(handler)
	r.DELETE("/api/beneficiaries/1", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequireResourcePermission(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleModerator, http.StatusForbidden},
		{models.RoleUser, http.StatusForbidden},
		{models.RoleViewer, http.StatusForbidden},
	}
	for _, tt := range tests {
		r := rbacRouter(tt.role, RequireResourcePermission("beneficiaries", "delete"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/beneficiaries/1", nil))
		if w.Code != tt.want {
			t.Errorf("role %s: expected %d, got %d", tt.role, tt.want, w.Code)
		}
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		role string
		want int
	}{
		{models.RoleAdmin, http.StatusOK},
		{models.RoleModerator, http.StatusOK},
		{models.RoleUser, http.StatusForbidden},
		{models.RoleViewer, http.StatusForbidden},
	}
	for _, tt := range tests {
		r := rbacRouter(tt.role, RequirePermission("approve_applications"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/beneficiaries/1", nil))
		if w.Code != tt.want {
			t.Errorf("role %s: expected %d, got %d", tt.role, tt.want, w.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	r := rbacRouter(models.RoleViewer, RequireRole(models.RoleAdmin, models.RoleModerator))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/beneficiaries/1", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for viewer, got %d", w.Code)
	}

	r = rbacRouter(models.RoleAdmin, RequireRole(models.RoleAdmin))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/beneficiaries/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", w.Code)
	}
}
