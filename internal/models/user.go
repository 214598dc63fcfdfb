package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string

const (
	RoleOwner  UserRole = "owner"
	RoleMember UserRole = "member"
)

// User is an account identity. OrganizationID is nil while the user works in
// personal mode; a non-nil value makes the user a member of that tenant.
type User struct {
	ID             uint64   `gorm:"primarykey" json:"id"`
	Email          string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name           string   `gorm:"type:varchar(255)" json:"name"`
	PasswordHash   string   `gorm:"type:varchar(255)" json:"-"`
	Role           UserRole `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	OrganizationID *uint64  `gorm:"index" json:"organization_id"`

	// OAuth identity, empty for password accounts.
	Provider   string `gorm:"type:varchar(20);index:idx_users_provider" json:"provider,omitempty"`
	ProviderID string `gorm:"type:varchar(255);index:idx_users_provider" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
