package model

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(200);not null" json:"name"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	IntegrationKey string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"integration_key"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Project <-> Report
	Reports []Report `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"reports,omitempty"`

	// Project <-> ProjectMember
	Members []ProjectMember `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"members,omitempty"`
}

func (Project) TableName() string { return "projects" }

type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

type ProjectMember struct {
	ProjectID uuid.UUID  `gorm:"type:uuid;primaryKey" json:"project_id"`
	UserID    uuid.UUID  `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	Role      MemberRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// ProjectMember <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"user,omitempty"`
}

func (ProjectMember) TableName() string { return "project_members" }
