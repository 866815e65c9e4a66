package handlers

import (
	"law_folder_app_go/middleware"
	"law_folder_app_go/models"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	api := newTestAPI(t, models.RoleLawyer)
	api.token = ""

	t.Run("ValidJSON", func(t *testing.T) {
		rec := api.request(t, http.MethodPost, "/api/login", map[string]string{
			"email":    "LAWYER@lexfolders.test",
			"password": testPassword,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		body := decode[loginResponse](t, rec)
		assert.Equal(t, api.user.ID, body.User.ID)
		assert.Len(t, body.Token, 64)

		var cookie *http.Cookie
		for _, c := range rec.Result().Cookies() {
			if c.Name == middleware.SessionCookieName {
				cookie = c
			}
		}
		require.NotNil(t, cookie)
		assert.Equal(t, body.Token, cookie.Value)
		assert.True(t, cookie.HttpOnly)

		// the token opens the API
		api.token = body.Token
		me := api.request(t, http.MethodGet, "/api/me", nil)
		api.token = ""
		assert.Equal(t, http.StatusOK, me.Code)
	})

	t.Run("ValidForm", func(t *testing.T) {
		form := url.Values{"email": {"lawyer@lexfolders.test"}, "password": {testPassword}}
		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

		assert.Equal(t, http.StatusOK, api.send(req).Code)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		rec := api.request(t, http.MethodPost, "/api/login", map[string]string{
			"email":    "lawyer@lexfolders.test",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		rec := api.request(t, http.MethodPost, "/api/login", map[string]string{
			"email":    "nobody@lexfolders.test",
			"password": testPassword,
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MissingFields", func(t *testing.T) {
		rec := api.request(t, http.MethodPost, "/api/login", map[string]string{"email": "not-an-email"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "password")
	})
}

func TestLogoutHandler(t *testing.T) {
	api := newTestAPI(t, models.RoleLawyer)

	rec := api.request(t, http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	var count int64
	api.db.Model(&models.Session{}).Count(&count)
	assert.Zero(t, count)

	// the old token no longer works
	assert.Equal(t, http.StatusUnauthorized, api.request(t, http.MethodGet, "/api/me", nil).Code)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	api := newTestAPI(t, models.RoleLawyer)
	api.token = ""

	for _, path := range []string{"/api/me", "/api/dashboard", "/api/folders", "/api/folders/stats"} {
		assert.Equal(t, http.StatusUnauthorized, api.request(t, http.MethodGet, path, nil).Code, path)
	}
}
