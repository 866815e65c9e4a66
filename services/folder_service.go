package services

import (
	"context"
	"errors"
	"fmt"
	"law_folder_app_go/models"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrFolderNotFound = errors.New("folder not found")

const (
	DefaultFolderPageSize = 10
	ConsultationLimit     = 50
	StatsHistoryMonths    = 6
	FolderDeletedMessage  = "Folder deleted successfully"
	folderCodePrefix      = "PROC"
	maxCodeAttempts       = 3
)

// FolderFilters narrows folder listings. Zero values mean "no filter".
type FolderFilters struct {
	Status              string
	Area                string
	ClientID            string
	ResponsibleLawyerID string
	IsFavorite          *bool
	Search              string
	DateRange           *DateRange
}

// DateRange is an inclusive range on created_at. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// PaginationMeta describes the page returned by GetFolders
type PaginationMeta struct {
	Total        int64 `json:"total"`
	PerPage      int   `json:"per_page"`
	CurrentPage  int   `json:"current_page"`
	LastPage     int   `json:"last_page"`
	FirstPage    int   `json:"first_page"`
	NextPage     *int  `json:"next_page"`
	PreviousPage *int  `json:"previous_page"`
}

// PaginatedFolders is one page of folders plus its metadata
type PaginatedFolders struct {
	Data []models.Folder `json:"data"`
	Meta PaginationMeta  `json:"meta"`
}

// FolderService reads and writes folders. Every query goes through the
// live-folder scope, so soft-deleted rows never leak out of it.
type FolderService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewFolderService creates a folder service on the given store
func NewFolderService(db *gorm.DB) *FolderService {
	return &FolderService{db: db, now: time.Now}
}

// folders is the store-access boundary for every read
func (s *FolderService) folders(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Folder{}).Scopes(models.LiveFolders)
}

func (s *FolderService) filtered(ctx context.Context, filters FolderFilters) *gorm.DB {
	return applyFolderFilters(s.folders(ctx), filters)
}

func applyFolderFilters(query *gorm.DB, filters FolderFilters) *gorm.DB {
	if filters.Status != "" {
		query = query.Where("folders.status = ?", filters.Status)
	}
	if filters.Area != "" {
		query = query.Where("folders.area = ?", filters.Area)
	}
	if filters.ClientID != "" {
		query = query.Where("folders.client_id = ?", filters.ClientID)
	}
	if filters.ResponsibleLawyerID != "" {
		query = query.Where("folders.responsible_lawyer_id = ?", filters.ResponsibleLawyerID)
	}
	if filters.IsFavorite != nil {
		query = query.Where("folders.is_favorite = ?", *filters.IsFavorite)
	}
	if term := strings.TrimSpace(filters.Search); term != "" {
		// search_text is folded with strings.ToLower, so accents match too
		query = query.Where("folders.search_text LIKE ?", "%"+strings.ToLower(term)+"%")
	}
	if filters.DateRange != nil {
		if !filters.DateRange.From.IsZero() {
			query = query.Where("folders.created_at >= ?", filters.DateRange.From)
		}
		if !filters.DateRange.To.IsZero() {
			query = query.Where("folders.created_at <= ?", filters.DateRange.To)
		}
	}
	return query
}

func withFolderProjections(query *gorm.DB) *gorm.DB {
	return query.
		Preload("Client").
		Preload("ResponsibleLawyer").
		Order("folders.created_at DESC").
		Order("folders.id DESC")
}

// GetFolders returns one page of live folders matching filters, newest first
func (s *FolderService) GetFolders(ctx context.Context, page, limit int, filters FolderFilters) (*PaginatedFolders, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultFolderPageSize
	}

	var total int64
	if err := s.filtered(ctx, filters).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count folders: %w", err)
	}

	meta := buildPaginationMeta(total, page, limit)
	folders := []models.Folder{}
	if page > meta.LastPage {
		return &PaginatedFolders{Data: folders, Meta: meta}, nil
	}

	offset := (page - 1) * limit
	if err := withFolderProjections(s.filtered(ctx, filters)).
		Offset(offset).
		Limit(limit).
		Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch folders: %w", err)
	}

	return &PaginatedFolders{
		Data: folders,
		Meta: meta,
	}, nil
}

func buildPaginationMeta(total int64, page, limit int) PaginationMeta {
	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}
	lastPage := int(pages)
	if lastPage < 1 {
		lastPage = 1
	}

	meta := PaginationMeta{
		Total:       total,
		PerPage:     limit,
		CurrentPage: page,
		LastPage:    lastPage,
		FirstPage:   1,
	}
	if page < lastPage {
		next := page + 1
		meta.NextPage = &next
	}
	if page > 1 {
		prev := page - 1
		if prev > lastPage {
			prev = lastPage
		}
		meta.PreviousPage = &prev
	}
	return meta
}

// GetFoldersForConsultation is the quick list: same filters, capped, no meta
func (s *FolderService) GetFoldersForConsultation(ctx context.Context, filters FolderFilters) ([]models.Folder, error) {
	folders := []models.Folder{}
	if err := withFolderProjections(s.filtered(ctx, filters)).
		Limit(ConsultationLimit).
		Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch folders: %w", err)
	}
	return folders, nil
}

// GetFolder returns a single live folder with its projections
func (s *FolderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	var folder models.Folder
	err := s.folders(ctx).
		Preload("Client").
		Preload("ResponsibleLawyer").
		Where("folders.id = ?", id).
		First(&folder).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("failed to fetch folder: %w", err)
	}
	return &folder, nil
}

// ForEachFolderBatch walks every live folder matching filters, newest first,
// handing them to fn in batches of batchSize
func (s *FolderService) ForEachFolderBatch(ctx context.Context, filters FolderFilters, batchSize int, fn func([]models.Folder) error) error {
	if batchSize < 1 {
		batchSize = DefaultFolderPageSize
	}
	for offset := 0; ; offset += batchSize {
		var batch []models.Folder
		if err := withFolderProjections(s.filtered(ctx, filters)).
			Offset(offset).
			Limit(batchSize).
			Find(&batch).Error; err != nil {
			return fmt.Errorf("failed to fetch folder batch: %w", err)
		}
		if len(batch) == 0 {
			return nil
		}
		if err := fn(batch); err != nil {
			return err
		}
		if len(batch) < batchSize {
			return nil
		}
	}
}

// CreateFolderInput holds the fields accepted when opening a folder
type CreateFolderInput struct {
	Code          string
	Area          string
	Status        string
	Title         string
	Description   string
	Court         string
	CaseNumber    string
	OpposingParty string
	Observation   string
	ObjectDetail  string

	CaseValue       float64
	ConvictionValue float64
	Costs           float64
	Fees            float64

	DistributionDate *time.Time
	CitationDate     *time.Time
	NextHearing      *time.Time

	ClientID            string
	ResponsibleLawyerID *string
	IsFavorite          bool
	Metadata            map[string]interface{}
}

// UpdateFolderInput is a partial update: only non-nil fields change
type UpdateFolderInput struct {
	Code          *string
	Area          *string
	Status        *string
	Title         *string
	Description   *string
	Court         *string
	CaseNumber    *string
	OpposingParty *string
	Observation   *string
	ObjectDetail  *string

	CaseValue       *float64
	ConvictionValue *float64
	Costs           *float64
	Fees            *float64

	DistributionDate *time.Time
	CitationDate     *time.Time
	NextHearing      *time.Time

	ClientID            *string
	ResponsibleLawyerID *string
	IsFavorite          *bool
	Metadata            map[string]interface{}
}

var textPolicy = bluemonday.UGCPolicy()

func sanitizeText(s string) string {
	if s == "" {
		return s
	}
	return textPolicy.Sanitize(s)
}

// Create inserts a folder, defaulting status, metadata and code
func (s *FolderService) Create(ctx context.Context, input CreateFolderInput) (*models.Folder, error) {
	folder := models.Folder{
		Code:                strings.TrimSpace(input.Code),
		Area:                input.Area,
		Status:              input.Status,
		Title:               strings.TrimSpace(input.Title),
		Description:         sanitizeText(input.Description),
		Court:               input.Court,
		CaseNumber:          input.CaseNumber,
		OpposingParty:       input.OpposingParty,
		Observation:         sanitizeText(input.Observation),
		ObjectDetail:        sanitizeText(input.ObjectDetail),
		CaseValue:           input.CaseValue,
		ConvictionValue:     input.ConvictionValue,
		Costs:               input.Costs,
		Fees:                input.Fees,
		DistributionDate:    input.DistributionDate,
		CitationDate:        input.CitationDate,
		NextHearing:         input.NextHearing,
		ClientID:            input.ClientID,
		ResponsibleLawyerID: input.ResponsibleLawyerID,
		IsFavorite:          input.IsFavorite,
	}
	if folder.Status == "" {
		folder.Status = models.FolderStatusPending
	}
	if input.Metadata != nil {
		folder.Metadata = datatypes.JSONMap(input.Metadata)
	} else {
		folder.Metadata = datatypes.JSONMap{}
	}

	generated := folder.Code == ""
	for attempt := 1; ; attempt++ {
		if generated {
			code, err := s.nextFolderCode(ctx)
			if err != nil {
				return nil, err
			}
			folder.Code = code
		}

		err := s.db.WithContext(ctx).Omit("Client", "ResponsibleLawyer").Create(&folder).Error
		if err == nil {
			break
		}
		// a concurrent create took the generated code
		if generated && attempt < maxCodeAttempts && isUniqueViolation(err) {
			folder.ID = ""
			continue
		}
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	auditFromContext(ctx, s.db, models.AuditActionCreate, models.AuditResourceFolder,
		folder.ID, folder.Code, "Folder created", nil, folder)

	return &folder, nil
}

// nextFolderCode returns PROC-{YEAR}-{SEQ:05}, counting deleted folders too.
// Manual codes with a non-numeric suffix are ignored.
func (s *FolderService) nextFolderCode(ctx context.Context) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", folderCodePrefix, s.now().Year())
	suffixStart := len(prefix) + 1

	var last int64
	err := s.db.WithContext(ctx).Model(&models.Folder{}).
		Where("code GLOB ?", prefix+"[0-9]*").
		Where("SUBSTR(code, ?) NOT GLOB ?", suffixStart, "*[^0-9]*").
		Select("COALESCE(MAX(CAST(SUBSTR(code, ?) AS INTEGER)), 0)", suffixStart).
		Scan(&last).Error
	if err != nil {
		return "", fmt.Errorf("failed to generate folder code: %w", err)
	}

	return fmt.Sprintf("%s%05d", prefix, last+1), nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Update merges the provided fields into a live folder
func (s *FolderService) Update(ctx context.Context, id string, input UpdateFolderInput) (*models.Folder, error) {
	existing, err := s.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := folderUpdates(input)
	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&models.Folder{}).
			Where("id = ? AND is_deleted = ?", id, false).
			Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update folder: %w", err)
		}
	}

	updated, err := s.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}
	if text := updated.BuildSearchText(); text != updated.SearchText {
		if err := s.db.WithContext(ctx).Model(&models.Folder{}).
			Where("id = ?", id).
			UpdateColumn("search_text", text).Error; err != nil {
			return nil, fmt.Errorf("failed to update folder search text: %w", err)
		}
		updated.SearchText = text
	}

	auditFromContext(ctx, s.db, models.AuditActionUpdate, models.AuditResourceFolder,
		updated.ID, updated.Code, "Folder updated", existing, updated)

	return updated, nil
}

func folderUpdates(input UpdateFolderInput) map[string]interface{} {
	updates := map[string]interface{}{}
	setString := func(column string, v *string, clean func(string) string) {
		if v != nil {
			if clean != nil {
				updates[column] = clean(*v)
			} else {
				updates[column] = *v
			}
		}
	}
	setFloat := func(column string, v *float64) {
		if v != nil {
			updates[column] = *v
		}
	}
	setTime := func(column string, v *time.Time) {
		if v != nil {
			updates[column] = *v
		}
	}

	setString("code", input.Code, strings.TrimSpace)
	setString("area", input.Area, nil)
	setString("status", input.Status, nil)
	setString("title", input.Title, strings.TrimSpace)
	setString("description", input.Description, sanitizeText)
	setString("court", input.Court, nil)
	setString("case_number", input.CaseNumber, nil)
	setString("opposing_party", input.OpposingParty, nil)
	setString("observation", input.Observation, sanitizeText)
	setString("object_detail", input.ObjectDetail, sanitizeText)
	setString("client_id", input.ClientID, nil)
	setString("responsible_lawyer_id", input.ResponsibleLawyerID, nil)

	setFloat("case_value", input.CaseValue)
	setFloat("conviction_value", input.ConvictionValue)
	setFloat("costs", input.Costs)
	setFloat("fees", input.Fees)

	setTime("distribution_date", input.DistributionDate)
	setTime("citation_date", input.CitationDate)
	setTime("next_hearing", input.NextHearing)

	if input.IsFavorite != nil {
		updates["is_favorite"] = *input.IsFavorite
	}
	if input.Metadata != nil {
		updates["metadata"] = datatypes.JSONMap(input.Metadata)
	}
	return updates
}

// ToggleFavorite flips the favorite flag. Each call flips, so retries are not no-ops.
func (s *FolderService) ToggleFavorite(ctx context.Context, id string) (*models.Folder, error) {
	result := s.db.WithContext(ctx).Model(&models.Folder{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Update("is_favorite", gorm.Expr("NOT is_favorite"))
	if result.Error != nil {
		return nil, fmt.Errorf("failed to toggle favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrFolderNotFound
	}

	folder, err := s.GetFolder(ctx, id)
	if err != nil {
		return nil, err
	}

	auditFromContext(ctx, s.db, models.AuditActionFavoriteToggle, models.AuditResourceFolder,
		folder.ID, folder.Code, "Folder favorite toggled",
		map[string]interface{}{"is_favorite": !folder.IsFavorite},
		map[string]interface{}{"is_favorite": folder.IsFavorite})

	return folder, nil
}

// DeleteFolder soft-deletes a folder. The row stays in storage.
func (s *FolderService) DeleteFolder(ctx context.Context, id string) (string, error) {
	folder, err := s.GetFolder(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).Model(&models.Folder{}).
		Where("id = ?", folder.ID).
		Update("is_deleted", true).Error; err != nil {
		return "", fmt.Errorf("failed to delete folder: %w", err)
	}

	auditFromContext(ctx, s.db, models.AuditActionDelete, models.AuditResourceFolder,
		folder.ID, folder.Code, "Folder deleted", nil, nil)

	return FolderDeletedMessage, nil
}
