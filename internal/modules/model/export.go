package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatXLSX ExportFormat = "xlsx"
)

type ExportTemplate string

const (
	TemplateDefault     ExportTemplate = "default"
	TemplateJira        ExportTemplate = "jira"
	TemplateAzureDevOps ExportTemplate = "azure_devops"
)

type ExportStatus string

const (
	ExportQueued    ExportStatus = "queued"
	ExportExporting ExportStatus = "exporting"
	ExportSuccess   ExportStatus = "success"
	ExportError     ExportStatus = "error"
)

// IncludeFields selects which report fields an export carries.
type IncludeFields struct {
	Title           bool `json:"title"`
	Description     bool `json:"description"`
	Type            bool `json:"type"`
	Priority        bool `json:"priority"`
	Reporter        bool `json:"reporter"`
	URL             bool `json:"url"`
	CreatedAt       bool `json:"created_at"`
	ConsoleLogs     bool `json:"console_logs"`
	NetworkRequests bool `json:"network_requests"`
}

// Any reports whether at least one field is selected.
func (f IncludeFields) Any() bool {
	return f.Title || f.Description || f.Type || f.Priority || f.Reporter ||
		f.URL || f.CreatedAt || f.ConsoleLogs || f.NetworkRequests
}

// ReportFilter is the conjunctive filter applied to report listings and
// filter-based exports. Zero values mean "no constraint".
type ReportFilter struct {
	Title    string     `json:"title,omitempty"`
	Type     string     `json:"type,omitempty"`
	Priority string     `json:"priority,omitempty"`
	Reporter string     `json:"reporter,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
}

type ExportJob struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	RequestedBy uuid.UUID      `gorm:"type:uuid;not null" json:"requested_by"`
	Format      ExportFormat   `gorm:"type:varchar(10);not null" json:"format"`
	Template    ExportTemplate `gorm:"type:varchar(20);not null;default:'default'" json:"template"`

	IncludeFields datatypes.JSONType[IncludeFields] `gorm:"type:jsonb" swaggertype:"object" json:"include_fields"`
	ReportIDs     datatypes.JSONType[[]uuid.UUID]   `gorm:"type:jsonb" swaggertype:"array,string" json:"report_ids"`
	Filter        datatypes.JSONType[*ReportFilter] `gorm:"type:jsonb" swaggertype:"object" json:"filter"`

	Status       ExportStatus `gorm:"type:varchar(20);not null;default:'queued'" json:"status"`
	Progress     int          `gorm:"not null;default:0" json:"progress"`
	DownloadURL  string       `gorm:"type:text" json:"download_url,omitempty"`
	S3Key        string       `gorm:"column:s3_key;type:text" json:"-"`
	ErrorMessage string       `gorm:"type:text" json:"error_message,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// ExportJob <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`
}

func (ExportJob) TableName() string { return "export_jobs" }
