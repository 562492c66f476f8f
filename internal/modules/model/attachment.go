package model

import (
	"time"

	"github.com/google/uuid"
)

type Attachment struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Filename string    `gorm:"type:varchar(255);not null" json:"filename"`
	FileSize int64     `gorm:"type:bigint;not null" json:"file_size"`
	MimeType string    `gorm:"type:varchar(120);not null" json:"mime_type"`
	FileURL  string    `gorm:"type:text" json:"file_url"`
	S3Key    string    `gorm:"column:s3_key;type:text;not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Attachment <-> Report
	Report *Report `gorm:"foreignKey:ReportID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"report,omitempty"`
}

func (Attachment) TableName() string { return "attachments" }
