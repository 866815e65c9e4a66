package handlers

import (
	"errors"
	"law_folder_app_go/db"
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"log"
	"net/http"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"
)

const (
	dateLayout   = "2006-01-02"
	maxPageLimit = 100
)

func asInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

var (
	folderStatusRule = validation.In(asInterfaces(models.FolderStatuses)...).Error("unknown folder status")
	folderAreaRule   = validation.In(asInterfaces(models.FolderAreas)...).Error("unknown practice area")
)

// validationFailed wraps ozzo field errors into a 422 response
func validationFailed(err error) error {
	var fields validation.Errors
	if errors.As(err, &fields) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "Validation failed",
			"errors":  fields,
		})
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// apiError maps service errors onto HTTP errors, logging unexpected ones
func apiError(err error, message string) error {
	switch {
	case errors.Is(err, services.ErrFolderNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Folder not found")
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrHearingNotFound),
		errors.Is(err, services.ErrClientNotFound),
		errors.Is(err, services.ErrDocumentNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidUpload):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case isUniqueViolation(err):
		return echo.NewHTTPError(http.StatusConflict, "A folder with this code already exists")
	}
	log.Printf("[WARNING] %s: %v", message, err)
	return echo.NewHTTPError(http.StatusInternalServerError, message)
}

// folderQuery is the raw query string of folder listings
type folderQuery struct {
	Status   string `json:"status"`
	Area     string `json:"area"`
	ClientID string `json:"client_id"`
	LawyerID string `json:"responsible_lawyer_id"`
	Favorite string `json:"is_favorite"`
	Search   string `json:"search"`
	DateFrom string `json:"date_from"`
	DateTo   string `json:"date_to"`
}

// parseFolderFilters reads listing filters from the query string.
// Malformed ids or dates are rejected; unknown status or area values
// simply match no folders.
func parseFolderFilters(c echo.Context) (services.FolderFilters, error) {
	q := folderQuery{
		Status:   c.QueryParam("status"),
		Area:     c.QueryParam("area"),
		ClientID: c.QueryParam("client_id"),
		LawyerID: c.QueryParam("responsible_lawyer_id"),
		Favorite: c.QueryParam("is_favorite"),
		Search:   strings.TrimSpace(c.QueryParam("search")),
		DateFrom: c.QueryParam("date_from"),
		DateTo:   c.QueryParam("date_to"),
	}

	err := validation.ValidateStruct(&q,
		validation.Field(&q.ClientID, is.UUID),
		validation.Field(&q.LawyerID, is.UUID),
		validation.Field(&q.Favorite, validation.In("true", "false")),
		validation.Field(&q.Search, validation.Length(0, 200)),
		validation.Field(&q.DateFrom, validation.Date(dateLayout)),
		validation.Field(&q.DateTo, validation.Date(dateLayout)),
	)
	if err != nil {
		return services.FolderFilters{}, validationFailed(err)
	}

	filters := services.FolderFilters{
		Status:              q.Status,
		Area:                q.Area,
		ClientID:            q.ClientID,
		ResponsibleLawyerID: q.LawyerID,
		Search:              q.Search,
	}
	if q.Favorite != "" {
		favorite := q.Favorite == "true"
		filters.IsFavorite = &favorite
	}
	if q.DateFrom != "" || q.DateTo != "" {
		filters.DateRange = &services.DateRange{}
		if q.DateFrom != "" {
			filters.DateRange.From, _ = services.ParseDate(q.DateFrom)
		}
		if q.DateTo != "" {
			to, _ := services.ParseDate(q.DateTo)
			filters.DateRange.To = services.EndOfDay(to)
		}
	}
	return filters, nil
}

// parsePagination reads page and limit, falling back to defaults on bad input
func parsePagination(c echo.Context) (int, int) {
	page := 1
	limit := services.DefaultFolderPageSize
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(c.QueryParam("limit")); err == nil && l > 0 {
		limit = l
		if limit > maxPageLimit {
			limit = maxPageLimit
		}
	}
	return page, limit
}

// requireFolder loads the live folder named by the :id path param
func requireFolder(c echo.Context) (*models.Folder, error) {
	folder, err := services.NewFolderService(db.DB).GetFolder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, apiError(err, "Failed to fetch folder")
	}
	return folder, nil
}
