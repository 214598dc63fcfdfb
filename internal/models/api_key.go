package models

import "time"

// ApiKey is a stored provider credential. The secret is only ever returned
// in full by the create response; reads redact it to a trailing suffix.
type ApiKey struct {
	ID       uint64 `gorm:"primarykey" json:"id"`
	KeyID    string `gorm:"type:varchar(36);uniqueIndex;not null" json:"key_id"`
	Provider string `gorm:"type:varchar(50);not null" json:"provider"`
	Label    string `gorm:"type:varchar(255)" json:"label"`
	Secret   string `gorm:"type:varchar(255);not null" json:"-"`

	OrganizationID *uint64 `gorm:"index" json:"organization_id"`
	UserID         uint64  `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
