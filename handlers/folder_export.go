package handlers

import (
	"fmt"
	"law_folder_app_go/db"
	"law_folder_app_go/services"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportFoldersHandler downloads every folder matching the listing filters
// as a workbook (default) or CSV
func ExportFoldersHandler(c echo.Context) error {
	filters, err := parseFolderFilters(c)
	if err != nil {
		return err
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "xlsx"
	}
	if format != "xlsx" && format != "csv" {
		return echo.NewHTTPError(http.StatusBadRequest, "format must be xlsx or csv")
	}

	ctx := c.Request().Context()
	folders := services.NewFolderService(db.DB)
	filename := fmt.Sprintf("folders_%s.%s", time.Now().Format("20060102_150405"), format)

	res := c.Response()
	res.Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))

	var count int
	if format == "csv" {
		res.Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
		count, err = services.ExportFoldersCSV(ctx, folders, filters, res)
	} else {
		res.Header().Set(echo.HeaderContentType, xlsxContentType)
		count, err = services.ExportFoldersXLSX(ctx, folders, filters, res)
	}
	if err != nil {
		if !res.Committed {
			res.Header().Del(echo.HeaderContentDisposition)
			return apiError(err, "Failed to export folders")
		}
		log.Printf("[WARNING] Folder export aborted after %d rows: %v", count, err)
		return nil
	}

	log.Printf("[INFO] Exported %d folders as %s", count, format)
	return nil
}

// FolderSheetPDFHandler prints the folder sheet as PDF
func FolderSheetPDFHandler(c echo.Context) error {
	folder, err := requireFolder(c)
	if err != nil {
		return err
	}

	pdf, err := services.GenerateFolderSheetPDF(c.Request().Context(), folder)
	if err != nil {
		return apiError(err, "Failed to generate folder sheet")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", folder.Code+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

// FolderSheetHTMLHandler returns the printable sheet as HTML, for browsers
// that print themselves
func FolderSheetHTMLHandler(c echo.Context) error {
	folder, err := requireFolder(c)
	if err != nil {
		return err
	}

	html, err := services.RenderFolderSheetHTML(c.Request().Context(), folder, time.Now())
	if err != nil {
		return apiError(err, "Failed to render folder sheet")
	}
	return c.HTML(http.StatusOK, html)
}
