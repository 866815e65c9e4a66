package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Folder status constants
const (
	FolderStatusActive    = "active"
	FolderStatusCompleted = "completed"
	FolderStatusPending   = "pending"
	FolderStatusCancelled = "cancelled"
	FolderStatusArchived  = "archived"
)

// Legal practice areas
const (
	AreaCivilLitigation      = "civil_litigation"
	AreaLabor                = "labor"
	AreaTax                  = "tax"
	AreaCriminal             = "criminal"
	AreaAdministrative       = "administrative"
	AreaConsumer             = "consumer"
	AreaFamily               = "family"
	AreaCorporate            = "corporate"
	AreaEnvironmental        = "environmental"
	AreaIntellectualProperty = "intellectual_property"
	AreaRealEstate           = "real_estate"
	AreaInternational        = "international"
)

// FolderStatuses lists statuses in dashboard display order
var FolderStatuses = []string{
	FolderStatusActive,
	FolderStatusPending,
	FolderStatusCompleted,
	FolderStatusCancelled,
	FolderStatusArchived,
}

// FolderAreas lists every supported practice area
var FolderAreas = []string{
	AreaCivilLitigation,
	AreaLabor,
	AreaTax,
	AreaCriminal,
	AreaAdministrative,
	AreaConsumer,
	AreaFamily,
	AreaCorporate,
	AreaEnvironmental,
	AreaIntellectualProperty,
	AreaRealEstate,
	AreaInternational,
}

// FolderLifecycle is the soft-delete state of a folder
type FolderLifecycle string

const (
	FolderLive    FolderLifecycle = "live"
	FolderDeleted FolderLifecycle = "deleted"
)

// Folder represents a case file
type Folder struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Identification
	Code   string `gorm:"not null;uniqueIndex:idx_folders_code_live,where:is_deleted = false" json:"code"`
	Area   string `gorm:"size:40;not null;index" json:"area"`
	Status string `gorm:"size:20;not null;default:pending;index" json:"status"`

	// Descriptive
	Title         string `gorm:"not null" json:"title"`
	Description   string `gorm:"type:text" json:"description"`
	Court         string `json:"court"`
	CaseNumber    string `gorm:"index" json:"case_number"`
	OpposingParty string `json:"opposing_party"`
	Observation   string `gorm:"type:text" json:"observation"`
	ObjectDetail  string `gorm:"type:text" json:"object_detail"`

	// Financial
	CaseValue       float64 `gorm:"type:decimal(15,2);not null;default:0" json:"case_value"`
	ConvictionValue float64 `gorm:"type:decimal(15,2);not null;default:0" json:"conviction_value"`
	Costs           float64 `gorm:"type:decimal(15,2);not null;default:0" json:"costs"`
	Fees            float64 `gorm:"type:decimal(15,2);not null;default:0" json:"fees"`

	// Key dates
	DistributionDate *time.Time `json:"distribution_date"`
	CitationDate     *time.Time `json:"citation_date"`
	NextHearing      *time.Time `json:"next_hearing"`

	// Relationships
	ClientID            string  `gorm:"type:uuid;not null;index" json:"client_id"`
	ResponsibleLawyerID *string `gorm:"type:uuid;index" json:"responsible_lawyer_id"`

	// Flags
	IsFavorite bool `gorm:"not null;default:false;index" json:"is_favorite"`
	IsDeleted  bool `gorm:"not null;default:false;index" json:"is_deleted"`

	Metadata datatypes.JSONMap `gorm:"type:text" json:"metadata"`

	// Lower-cased searchable text; SQLite LOWER() only folds ASCII
	SearchText string `gorm:"type:text;not null;default:''" json:"-"`

	// Preloaded projections (never written through the folder)
	Client            *ClientSummary `gorm:"foreignKey:ClientID;-:migration" json:"client,omitempty"`
	ResponsibleLawyer *LawyerSummary `gorm:"foreignKey:ResponsibleLawyerID;-:migration" json:"responsibleLawyer,omitempty"`
}

// BeforeCreate hook to generate UUID and default metadata
func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	if f.Status == "" {
		f.Status = FolderStatusPending
	}
	if f.Metadata == nil {
		f.Metadata = datatypes.JSONMap{}
	}
	f.SearchText = f.BuildSearchText()
	return nil
}

// BuildSearchText folds the searchable columns into one lower-case string
func (f *Folder) BuildSearchText() string {
	return strings.ToLower(strings.Join([]string{
		f.Title, f.Code, f.Description, f.CaseNumber, f.OpposingParty,
	}, "\n"))
}

// TableName specifies the table name for Folder model
func (Folder) TableName() string {
	return "folders"
}

// LiveFolders is the default scope of every folder query: soft-deleted rows are excluded
func LiveFolders(db *gorm.DB) *gorm.DB {
	return db.Where("folders.is_deleted = ?", false)
}

// Lifecycle returns the soft-delete state of the folder
func (f *Folder) Lifecycle() FolderLifecycle {
	if f.IsDeleted {
		return FolderDeleted
	}
	return FolderLive
}

// IsActive checks if the folder is active
func (f *Folder) IsActive() bool {
	return f.Status == FolderStatusActive
}

// IsValidFolderStatus checks if the status is valid
func IsValidFolderStatus(status string) bool {
	for _, s := range FolderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidFolderArea checks if the area is a known practice area
func IsValidFolderArea(area string) bool {
	for _, a := range FolderAreas {
		if a == area {
			return true
		}
	}
	return false
}
