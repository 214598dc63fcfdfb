package models

import "time"

// AppSetting is a scoped key/value pair. The key is unique within a tenant,
// enforced by the upsert in the repository rather than a partial index.
type AppSetting struct {
	ID    uint64 `gorm:"primarykey" json:"id"`
	Key   string `gorm:"type:varchar(100);not null;index" json:"key"`
	Value string `gorm:"type:text" json:"value"`

	OrganizationID *uint64 `gorm:"index" json:"organization_id"`
	UserID         uint64  `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
