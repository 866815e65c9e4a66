package handlers

import (
	"errors"
	"law_folder_app_go/db"
	"law_folder_app_go/services"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
)

const maxImportSize = 10 << 20

// ImportTemplateHandler downloads the workbook template for folder imports
func ImportTemplateHandler(c echo.Context) error {
	buf, err := services.GenerateImportTemplate(c.Request().Context())
	if err != nil {
		return apiError(err, "Failed to generate import template")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="folders_import_template.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ImportFoldersHandler creates folders from an uploaded xlsx "file"
func ImportFoldersHandler(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}
	if strings.ToLower(filepath.Ext(file.Filename)) != ".xlsx" {
		return echo.NewHTTPError(http.StatusBadRequest, "Only .xlsx workbooks can be imported")
	}
	if file.Size > maxImportSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Workbook exceeds the 10MB limit")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer src.Close()

	result, err := services.NewFolderService(db.DB).ImportFolders(c.Request().Context(), src)
	if errors.Is(err, services.ErrInvalidWorkbook) {
		if result != nil {
			return c.JSON(http.StatusUnprocessableEntity, result)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return apiError(err, "Failed to import folders")
	}

	log.Printf("[INFO] Imported %d folders (%d failed rows)", result.Created, result.Failed)
	return c.JSON(http.StatusOK, result)
}
