package handlers

import (
	"fmt"
	"io"
	"law_folder_app_go/db"
	"law_folder_app_go/middleware"
	"law_folder_app_go/services"
	"net/http"

	"github.com/labstack/echo/v4"
)

func documentService() *services.DocumentService {
	return services.NewDocumentService(db.DB, services.Storage)
}

// GetFolderDocumentsHandler lists the documents of a folder
func GetFolderDocumentsHandler(c echo.Context) error {
	folder, err := requireFolder(c)
	if err != nil {
		return err
	}

	docs, err := documentService().ListByFolder(c.Request().Context(), folder.ID)
	if err != nil {
		return apiError(err, "Failed to fetch documents")
	}
	return c.JSON(http.StatusOK, docs)
}

// UploadFolderDocumentHandler stores a multipart "file" on a folder
func UploadFolderDocumentHandler(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}

	var uploadedBy *string
	if user := middleware.GetCurrentUser(c); user != nil {
		uploadedBy = &user.ID
	}

	doc, err := documentService().Upload(c.Request().Context(), c.Param("id"), file, c.FormValue("document_type"), uploadedBy)
	if err != nil {
		return apiError(err, "Failed to upload document")
	}
	return c.JSON(http.StatusCreated, doc)
}

// DownloadFolderDocumentHandler redirects to a signed URL when the storage
// offers one, otherwise streams the file
func DownloadFolderDocumentHandler(c echo.Context) error {
	ctx := c.Request().Context()
	svc := documentService()

	doc, err := svc.Get(ctx, c.Param("id"), c.Param("docId"))
	if err != nil {
		return apiError(err, "Failed to fetch document")
	}

	if url, err := svc.SignedURL(ctx, doc); err == nil && url != "" {
		return c.Redirect(http.StatusTemporaryRedirect, url)
	}

	reader, contentType, err := svc.Open(ctx, doc)
	if err != nil {
		return apiError(err, "Failed to open document")
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.FileOriginalName))
	return c.Stream(http.StatusOK, contentType, io.Reader(reader))
}
