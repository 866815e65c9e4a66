package middleware

import (
	"law_folder_app_go/services"

	"github.com/labstack/echo/v4"
)

const ContextKeyAuditContext = "audit_context"

// AuditContext is middleware that attaches the acting user to the request
// context, so folder mutations downstream are written to the audit log
func AuditContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil {
				return next(c)
			}

			ac := services.AuditContext{
				UserID:    user.ID,
				UserName:  user.FullName,
				UserRole:  user.Role,
				IPAddress: c.RealIP(),
				UserAgent: c.Request().UserAgent(),
			}

			c.Set(ContextKeyAuditContext, ac)
			c.SetRequest(c.Request().WithContext(services.WithAuditContext(c.Request().Context(), ac)))
			return next(c)
		}
	}
}

// GetAuditContext retrieves the audit context from the request
func GetAuditContext(c echo.Context) services.AuditContext {
	if ac, ok := c.Get(ContextKeyAuditContext).(services.AuditContext); ok {
		return ac
	}
	return services.AuditContext{}
}
