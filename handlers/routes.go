package handlers

import (
	"law_folder_app_go/config"
	"law_folder_app_go/middleware"
	"law_folder_app_go/models"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the JSON API on e
func RegisterRoutes(e *echo.Echo, cfg *config.Config) {
	api := e.Group("/api")
	api.Use(middleware.Locale(cfg))

	// Public routes
	api.POST("/login", LoginHandler, middleware.LoginRateLimiter(cfg.LoginRateLimit))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.RequireAuth())
	protected.Use(middleware.AuditContext())
	{
		protected.POST("/logout", LogoutHandler)
		protected.GET("/me", GetCurrentUserHandler)
		protected.GET("/dashboard", DashboardHandler)

		protected.GET("/clients/:id", GetClientHandler)
		protected.POST("/clients", CreateClientHandler)

		folders := protected.Group("/folders")
		folders.GET("", GetFoldersHandler)
		folders.GET("/consultation", GetFoldersConsultationHandler)
		folders.GET("/stats", GetFolderStatsHandler)
		folders.GET("/export", ExportFoldersHandler)
		folders.GET("/:id", GetFolderHandler)
		folders.GET("/:id/sheet.pdf", FolderSheetPDFHandler)
		folders.GET("/:id/sheet", FolderSheetHTMLHandler)
		folders.GET("/:id/history", GetFolderHistoryHandler)
		folders.POST("", CreateFolderHandler)
		folders.PUT("/:id", UpdateFolderHandler)
		folders.PATCH("/:id/favorite", ToggleFavoriteHandler)

		folders.GET("/:id/documents", GetFolderDocumentsHandler)
		folders.POST("/:id/documents", UploadFolderDocumentHandler)
		folders.GET("/:id/documents/:docId", DownloadFolderDocumentHandler)
		folders.GET("/:id/hearings", GetFolderHearingsHandler)
		folders.POST("/:id/hearings", CreateFolderHearingHandler)
		folders.GET("/:id/tasks", GetFolderTasksHandler)
		folders.POST("/:id/tasks", CreateFolderTaskHandler)
		folders.POST("/:id/movements", CreateMovementHandler)

		protected.PATCH("/tasks/:id/status", UpdateTaskStatusHandler)

		// Bulk import and deletion are reserved to admins and lawyers
		managers := middleware.RequireRole(models.RoleAdmin, models.RoleLawyer)
		folders.GET("/import/template", ImportTemplateHandler, managers)
		folders.POST("/import", ImportFoldersHandler, managers)
		folders.DELETE("/:id", DeleteFolderHandler, managers)
	}
}
