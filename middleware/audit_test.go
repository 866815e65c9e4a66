package middleware

import (
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestAuditContext(t *testing.T) {
	e := echo.New()

	t.Run("AuthenticatedUser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/folders/1", nil)
		req.Header.Set("User-Agent", "test-agent")
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set(ContextKeyUser, &models.User{ID: "user-123", FullName: "Test User", Role: models.RoleAdmin})

		var fromRequest services.AuditContext
		var attached bool
		handler := AuditContext()(func(c echo.Context) error {
			fromRequest, attached = services.AuditContextFrom(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})

		assert.NoError(t, handler(c))

		ac := GetAuditContext(c)
		assert.Equal(t, "user-123", ac.UserID)
		assert.Equal(t, "Test User", ac.UserName)
		assert.Equal(t, models.RoleAdmin, ac.UserRole)
		assert.Equal(t, "test-agent", ac.UserAgent)

		assert.True(t, attached)
		assert.Equal(t, ac, fromRequest)
	})

	t.Run("Anonymous", func(t *testing.T) {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

		var attached bool
		handler := AuditContext()(func(c echo.Context) error {
			_, attached = services.AuditContextFrom(c.Request().Context())
			return c.NoContent(http.StatusOK)
		})

		assert.NoError(t, handler(c))
		assert.False(t, attached)
		assert.Empty(t, GetAuditContext(c).UserID)
	})
}
