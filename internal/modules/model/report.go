package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ReportType string

const (
	TypeBug      ReportType = "bug"
	TypeFeature  ReportType = "feature"
	TypeFeedback ReportType = "feedback"
)

type ReportPriority string

const (
	PriorityLow      ReportPriority = "low"
	PriorityMedium   ReportPriority = "medium"
	PriorityHigh     ReportPriority = "high"
	PriorityCritical ReportPriority = "critical"
)

type ReportStatus string

const (
	StatusNew        ReportStatus = "new"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusClosed     ReportStatus = "closed"
)

// ConsoleLog is a single console entry captured by the widget.
type ConsoleLog struct {
	Type      string `json:"type"` // log | warn | error
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Stack     string `json:"stack,omitempty"`
}

// NetworkRequest is a single network trace entry captured by the widget.
type NetworkRequest struct {
	URL       string            `json:"url"`
	Method    string            `json:"method"`
	Status    int               `json:"status"`
	Duration  float64           `json:"duration"`
	Timestamp string            `json:"timestamp"`
	Size      *int64            `json:"size,omitempty"`
	Headers   map[string]string `json:"headers,omitempty"`
}

type Report struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	Title       string          `gorm:"type:varchar(200);not null" json:"title"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Type        ReportType      `gorm:"type:varchar(20);not null;index" json:"type"`
	Priority    *ReportPriority `gorm:"type:varchar(20);index" json:"priority"`
	Status      ReportStatus    `gorm:"type:varchar(20);not null;default:'new'" json:"status"`

	ReporterName  string `gorm:"type:varchar(200)" json:"reporter_name"`
	ReporterEmail string `gorm:"type:varchar(255)" json:"reporter_email"`
	BrowserInfo   string `gorm:"type:text" json:"browser_info"`
	PageURL       string `gorm:"type:text" json:"page_url"`

	ConsoleLogs     datatypes.JSONType[[]ConsoleLog]     `gorm:"type:jsonb" swaggertype:"array,object" json:"console_logs"`
	NetworkRequests datatypes.JSONType[[]NetworkRequest] `gorm:"type:jsonb" swaggertype:"array,object" json:"network_requests"`

	CreatedBy *uuid.UUID `gorm:"type:uuid" json:"created_by"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Report <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`

	// Report <-> Attachment
	Attachments []Attachment `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"attachments,omitempty"`
}

func (Report) TableName() string { return "reports" }

// ValidType reports whether s is one of the report type enum values.
func ValidType(s string) bool {
	switch ReportType(s) {
	case TypeBug, TypeFeature, TypeFeedback:
		return true
	}
	return false
}

// ValidPriority reports whether s is one of the priority enum values.
func ValidPriority(s string) bool {
	switch ReportPriority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ValidStatus reports whether s is one of the status enum values.
func ValidStatus(s string) bool {
	switch ReportStatus(s) {
	case StatusNew, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}
