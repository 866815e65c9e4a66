package handlers

import (
	"law_folder_app_go/db"
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/labstack/echo/v4"
)

type hearingRequest struct {
	ScheduledAt time.Time `json:"scheduled_at"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
}

func (r *hearingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ScheduledAt, validation.Required),
		validation.Field(&r.Type, validation.By(func(value interface{}) error {
			if t := value.(string); t != "" && !models.IsValidHearingType(t) {
				return validation.NewError("validation_hearing_type", "unknown hearing type")
			}
			return nil
		})),
		validation.Field(&r.Location, validation.Length(0, 255)),
	)
}

// GetFolderHearingsHandler lists the hearings of a folder
func GetFolderHearingsHandler(c echo.Context) error {
	folder, err := requireFolder(c)
	if err != nil {
		return err
	}

	hearings, err := services.NewHearingService(db.DB).ListByFolder(c.Request().Context(), folder.ID)
	if err != nil {
		return apiError(err, "Failed to fetch hearings")
	}
	return c.JSON(http.StatusOK, hearings)
}

// CreateFolderHearingHandler schedules a hearing on a folder
func CreateFolderHearingHandler(c echo.Context) error {
	var req hearingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return validationFailed(err)
	}

	hearing, err := services.NewHearingService(db.DB).Create(c.Request().Context(), services.CreateHearingInput{
		FolderID:    c.Param("id"),
		ScheduledAt: req.ScheduledAt.UTC(),
		Type:        req.Type,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		return apiError(err, "Failed to schedule hearing")
	}
	return c.JSON(http.StatusCreated, hearing)
}
