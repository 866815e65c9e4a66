package handlers

import (
	"errors"
	"law_folder_app_go/db"
	"law_folder_app_go/middleware"
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type loginResponse struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// LoginHandler checks credentials, opens a session and sets the session
// cookie. The token is also returned for Bearer clients.
func LoginHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Password, validation.Required),
	); err != nil {
		return validationFailed(err)
	}

	ctx := c.Request().Context()
	user, err := services.Authenticate(ctx, db.DB, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
		}
		return apiError(err, "Failed to log in")
	}

	ipAddress := c.RealIP()
	userAgent := c.Request().UserAgent()

	session, err := services.CreateSession(db.DB.WithContext(ctx), user.ID, ipAddress, userAgent)
	if err != nil {
		return apiError(err, "Failed to create session")
	}
	middleware.SetSessionCookie(c, session)

	auditCtx := services.AuditContext{
		UserID:    user.ID,
		UserName:  user.FullName,
		UserRole:  user.Role,
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}
	services.LogAuditEvent(db.DB, auditCtx, models.AuditActionLogin, models.AuditResourceSession, session.ID, user.Email, "User logged in", nil, nil)

	return c.JSON(http.StatusOK, loginResponse{User: user, Token: session.Token, ExpiresAt: session.ExpiresAt})
}

// LogoutHandler ends the current session
func LogoutHandler(c echo.Context) error {
	if user := middleware.GetCurrentUser(c); user != nil {
		session, _ := c.Get(middleware.ContextKeySession).(*models.Session)
		sessionID := ""
		if session != nil {
			sessionID = session.ID
		}
		services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), models.AuditActionLogout, models.AuditResourceSession, sessionID, user.Email, "User logged out", nil, nil)
	}

	if token := middleware.SessionToken(c); token != "" {
		if err := services.DeleteSession(db.DB.WithContext(c.Request().Context()), token); err != nil {
			return apiError(err, "Failed to log out")
		}
	}
	middleware.ClearSessionCookie(c)

	return c.NoContent(http.StatusNoContent)
}

// GetCurrentUserHandler returns the authenticated user
func GetCurrentUserHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, user)
}
