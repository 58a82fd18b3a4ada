package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token purposes stored alongside the token hash.
const (
	TokenPurposeVerify = "verify"
	TokenPurposeReset  = "reset"
)

// User is the durable account record. Emails are stored lowercased; at most
// one verification/reset token is live per account (issuing a new one
// overwrites the previous).
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email    string    `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Username *string   `gorm:"size:50;uniqueIndex" json:"username,omitempty"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;default:'user'" json:"role"`
	Verified bool      `gorm:"default:false" json:"verified"`

	FirstName  string `gorm:"size:100" json:"first_name"`
	LastName   string `gorm:"size:100" json:"last_name"`
	Bio        string `gorm:"type:text" json:"bio"`
	ProfilePic string `gorm:"size:512" json:"profile_pic"`

	EmailNotify bool `gorm:"default:true" json:"email_notify"`
	InAppNotify bool `gorm:"default:true" json:"in_app_notify"`

	TokenHash      *string    `gorm:"size:64;index" json:"-"`
	TokenPurpose   string     `gorm:"size:10" json:"-"`
	TokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
