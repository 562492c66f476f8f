package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email         string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash  string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName     string     `gorm:"type:varchar(100)" json:"first_name"`
	LastName      string     `gorm:"type:varchar(100)" json:"last_name"`
	Company       string     `gorm:"type:varchar(200)" json:"company"`
	AvatarURL     string     `gorm:"type:text" json:"avatar_url"`
	EmailVerified bool       `gorm:"default:false" json:"email_verified"`
	LastLoginAt   *time.Time `json:"last_login_at"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// User <-> Project (owned)
	Projects []Project `gorm:"foreignKey:OwnerID" json:"projects,omitempty"`
}

func (User) TableName() string { return "users" }

// DisplayName joins first and last name, trimming when either is empty.
func (u *User) DisplayName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
