package models

import "time"

type Comment struct {
	ID     uint64 `gorm:"primarykey" json:"id"`
	TaskID uint64 `gorm:"not null;index" json:"task_id"`
	Body   string `gorm:"type:text;not null" json:"body"`

	OrganizationID *uint64 `gorm:"index" json:"organization_id"`
	UserID         uint64  `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:UserID" json:"author,omitempty"`
}
