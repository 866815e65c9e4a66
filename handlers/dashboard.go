package handlers

import (
	"law_folder_app_go/db"
	"law_folder_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

// DashboardHandler returns every dashboard widget. Widgets whose data is
// missing or failed to load carry demo values and is_demo=true, so this
// always answers 200.
func DashboardHandler(c echo.Context) error {
	data := services.NewDashboardService(db.DB).GetDashboardData(c.Request().Context())
	return c.JSON(http.StatusOK, data)
}
