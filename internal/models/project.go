package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "active"
	ProjectStatusArchived ProjectStatus = "archived"
)

type Project struct {
	ID          uint64        `gorm:"primarykey" json:"id"`
	Name        string        `gorm:"type:varchar(255);not null" json:"name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Color       string        `gorm:"type:varchar(7)" json:"color"`

	OrganizationID *uint64 `gorm:"index" json:"organization_id"`
	UserID         uint64  `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Tasks   []Task   `gorm:"foreignKey:ProjectID" json:"tasks,omitempty"`
	Sprints []Sprint `gorm:"foreignKey:ProjectID" json:"sprints,omitempty"`
}
