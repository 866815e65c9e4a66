package handlers

import (
	"context"
	"errors"
	"law_folder_app_go/db"
	"law_folder_app_go/models"
	"law_folder_app_go/services"
	"net/http"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/labstack/echo/v4"
)

// folderRequest is the JSON body of folder creation
type folderRequest struct {
	Code          string `json:"code"`
	Area          string `json:"area"`
	Status        string `json:"status"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Court         string `json:"court"`
	CaseNumber    string `json:"case_number"`
	OpposingParty string `json:"opposing_party"`
	Observation   string `json:"observation"`
	ObjectDetail  string `json:"object_detail"`

	CaseValue       float64 `json:"case_value"`
	ConvictionValue float64 `json:"conviction_value"`
	Costs           float64 `json:"costs"`
	Fees            float64 `json:"fees"`

	DistributionDate *time.Time `json:"distribution_date"`
	CitationDate     *time.Time `json:"citation_date"`
	NextHearing      *time.Time `json:"next_hearing"`

	ClientID            string                 `json:"client_id"`
	ResponsibleLawyerID *string                `json:"responsible_lawyer_id"`
	IsFavorite          bool                   `json:"is_favorite"`
	Metadata            map[string]interface{} `json:"metadata"`
}

func (r *folderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code, validation.Length(0, 40)),
		validation.Field(&r.Area, validation.Required, folderAreaRule),
		validation.Field(&r.Status, folderStatusRule),
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.CaseNumber, validation.Length(0, 50)),
		validation.Field(&r.CaseValue, validation.Min(0.0)),
		validation.Field(&r.ConvictionValue, validation.Min(0.0)),
		validation.Field(&r.Costs, validation.Min(0.0)),
		validation.Field(&r.Fees, validation.Min(0.0)),
		validation.Field(&r.ClientID, validation.Required, is.UUID),
		validation.Field(&r.ResponsibleLawyerID, is.UUID),
	)
}

// folderUpdateRequest is the JSON body of a partial folder update
type folderUpdateRequest struct {
	Code          *string `json:"code"`
	Area          *string `json:"area"`
	Status        *string `json:"status"`
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	Court         *string `json:"court"`
	CaseNumber    *string `json:"case_number"`
	OpposingParty *string `json:"opposing_party"`
	Observation   *string `json:"observation"`
	ObjectDetail  *string `json:"object_detail"`

	CaseValue       *float64 `json:"case_value"`
	ConvictionValue *float64 `json:"conviction_value"`
	Costs           *float64 `json:"costs"`
	Fees            *float64 `json:"fees"`

	DistributionDate *time.Time `json:"distribution_date"`
	CitationDate     *time.Time `json:"citation_date"`
	NextHearing      *time.Time `json:"next_hearing"`

	ClientID            *string                `json:"client_id"`
	ResponsibleLawyerID *string                `json:"responsible_lawyer_id"`
	IsFavorite          *bool                  `json:"is_favorite"`
	Metadata            map[string]interface{} `json:"metadata"`
}

func (r *folderUpdateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Code, validation.NilOrNotEmpty, validation.Length(1, 40)),
		validation.Field(&r.Area, validation.NilOrNotEmpty, folderAreaRule),
		validation.Field(&r.Status, validation.NilOrNotEmpty, folderStatusRule),
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&r.CaseNumber, validation.Length(0, 50)),
		validation.Field(&r.CaseValue, validation.Min(0.0)),
		validation.Field(&r.ConvictionValue, validation.Min(0.0)),
		validation.Field(&r.Costs, validation.Min(0.0)),
		validation.Field(&r.Fees, validation.Min(0.0)),
		validation.Field(&r.ClientID, validation.NilOrNotEmpty, is.UUID),
		validation.Field(&r.ResponsibleLawyerID, is.UUID),
	)
}

// checkFolderReferences verifies the client and lawyer a folder points at
func checkFolderReferences(ctx context.Context, clientID, lawyerID *string) error {
	fields := validation.Errors{}
	if clientID != nil {
		if _, err := services.NewClientService(db.DB).GetClient(ctx, *clientID); err != nil {
			if !errors.Is(err, services.ErrClientNotFound) {
				return apiError(err, "Failed to fetch client")
			}
			fields["client_id"] = errors.New("client does not exist")
		}
	}
	if lawyerID != nil && *lawyerID != "" {
		var lawyer models.User
		err := db.DB.WithContext(ctx).Where("id = ? AND is_active = ?", *lawyerID, true).First(&lawyer).Error
		if err != nil || !lawyer.IsLawyer() {
			fields["responsible_lawyer_id"] = errors.New("lawyer does not exist")
		}
	}
	if len(fields) > 0 {
		return validationFailed(fields)
	}
	return nil
}

// GetFoldersHandler returns one page of folders matching the query filters
func GetFoldersHandler(c echo.Context) error {
	filters, err := parseFolderFilters(c)
	if err != nil {
		return err
	}
	page, limit := parsePagination(c)

	result, err := services.NewFolderService(db.DB).GetFolders(c.Request().Context(), page, limit, filters)
	if err != nil {
		return apiError(err, "Failed to fetch folders")
	}
	return c.JSON(http.StatusOK, result)
}

// GetFoldersConsultationHandler returns the capped quick-search list
func GetFoldersConsultationHandler(c echo.Context) error {
	filters, err := parseFolderFilters(c)
	if err != nil {
		return err
	}

	folders, err := services.NewFolderService(db.DB).GetFoldersForConsultation(c.Request().Context(), filters)
	if err != nil {
		return apiError(err, "Failed to fetch folders")
	}
	return c.JSON(http.StatusOK, folders)
}

// GetFolderStatsHandler returns folder counts by status and area plus history
func GetFolderStatsHandler(c echo.Context) error {
	stats, err := services.NewFolderService(db.DB).GetFoldersStats(c.Request().Context())
	if err != nil {
		return apiError(err, "Failed to compute folder statistics")
	}
	return c.JSON(http.StatusOK, stats)
}

// GetFolderHandler returns a single folder
func GetFolderHandler(c echo.Context) error {
	folder, err := requireFolder(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, folder)
}

// CreateFolderHandler opens a folder
func CreateFolderHandler(c echo.Context) error {
	var req folderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return validationFailed(err)
	}

	ctx := c.Request().Context()
	if err := checkFolderReferences(ctx, &req.ClientID, req.ResponsibleLawyerID); err != nil {
		return err
	}

	folder, err := services.NewFolderService(db.DB).Create(ctx, services.CreateFolderInput{
		Code:                req.Code,
		Area:                req.Area,
		Status:              req.Status,
		Title:               req.Title,
		Description:         req.Description,
		Court:               req.Court,
		CaseNumber:          req.CaseNumber,
		OpposingParty:       req.OpposingParty,
		Observation:         req.Observation,
		ObjectDetail:        req.ObjectDetail,
		CaseValue:           req.CaseValue,
		ConvictionValue:     req.ConvictionValue,
		Costs:               req.Costs,
		Fees:                req.Fees,
		DistributionDate:    req.DistributionDate,
		CitationDate:        req.CitationDate,
		NextHearing:         req.NextHearing,
		ClientID:            req.ClientID,
		ResponsibleLawyerID: req.ResponsibleLawyerID,
		IsFavorite:          req.IsFavorite,
		Metadata:            req.Metadata,
	})
	if err != nil {
		return apiError(err, "Failed to create folder")
	}
	return c.JSON(http.StatusCreated, folder)
}

// UpdateFolderHandler applies a partial update to a folder
func UpdateFolderHandler(c echo.Context) error {
	var req folderUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return validationFailed(err)
	}

	ctx := c.Request().Context()
	if err := checkFolderReferences(ctx, req.ClientID, req.ResponsibleLawyerID); err != nil {
		return err
	}

	folder, err := services.NewFolderService(db.DB).Update(ctx, c.Param("id"), services.UpdateFolderInput{
		Code:                req.Code,
		Area:                req.Area,
		Status:              req.Status,
		Title:               req.Title,
		Description:         req.Description,
		Court:               req.Court,
		CaseNumber:          req.CaseNumber,
		OpposingParty:       req.OpposingParty,
		Observation:         req.Observation,
		ObjectDetail:        req.ObjectDetail,
		CaseValue:           req.CaseValue,
		ConvictionValue:     req.ConvictionValue,
		Costs:               req.Costs,
		Fees:                req.Fees,
		DistributionDate:    req.DistributionDate,
		CitationDate:        req.CitationDate,
		NextHearing:         req.NextHearing,
		ClientID:            req.ClientID,
		ResponsibleLawyerID: req.ResponsibleLawyerID,
		IsFavorite:          req.IsFavorite,
		Metadata:            req.Metadata,
	})
	if err != nil {
		return apiError(err, "Failed to update folder")
	}
	return c.JSON(http.StatusOK, folder)
}

// ToggleFavoriteHandler flips the favorite flag of a folder
func ToggleFavoriteHandler(c echo.Context) error {
	folder, err := services.NewFolderService(db.DB).ToggleFavorite(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apiError(err, "Failed to toggle favorite")
	}
	return c.JSON(http.StatusOK, folder)
}

// DeleteFolderHandler soft-deletes a folder
func DeleteFolderHandler(c echo.Context) error {
	message, err := services.NewFolderService(db.DB).DeleteFolder(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apiError(err, "Failed to delete folder")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// GetFolderHistoryHandler returns the movements and audit trail of a folder
func GetFolderHistoryHandler(c echo.Context) error {
	folder, err := requireFolder(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	movements, err := services.NewMovementService(db.DB).ListByFolder(ctx, folder.ID)
	if err != nil {
		return apiError(err, "Failed to fetch movements")
	}
	audit, err := services.GetResourceAuditHistory(db.DB.WithContext(ctx), models.AuditResourceFolder, folder.ID)
	if err != nil {
		return apiError(err, "Failed to fetch audit history")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"movements": movements,
		"audit":     audit,
	})
}

type movementRequest struct {
	Description string     `json:"description"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

// CreateMovementHandler records a manual movement on a folder
func CreateMovementHandler(c echo.Context) error {
	var req movementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Description, validation.Required, validation.Length(1, 2000)),
	); err != nil {
		return validationFailed(err)
	}

	occurredAt := time.Now().UTC()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	movement, err := services.NewMovementService(db.DB).Record(c.Request().Context(), c.Param("id"), req.Description, "manual", occurredAt)
	if err != nil {
		return apiError(err, "Failed to record movement")
	}
	return c.JSON(http.StatusCreated, movement)
}
