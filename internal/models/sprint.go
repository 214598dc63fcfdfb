package models

import (
	"time"

	"gorm.io/gorm"
)

type SprintStatus string

const (
	SprintStatusPlanned   SprintStatus = "planned"
	SprintStatusActive    SprintStatus = "active"
	SprintStatusCompleted SprintStatus = "completed"
)

type Sprint struct {
	ID     uint64       `gorm:"primarykey" json:"id"`
	Name   string       `gorm:"type:varchar(255);not null" json:"name"`
	Status SprintStatus `gorm:"type:varchar(20);not null;default:'planned'" json:"status"`

	ProjectID *uint64    `gorm:"index" json:"project_id"`
	StartsOn  *time.Time `json:"starts_on"`
	EndsOn    *time.Time `json:"ends_on"`

	OrganizationID *uint64 `gorm:"index" json:"organization_id"`
	UserID         uint64  `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Tasks []Task `gorm:"foreignKey:SprintID" json:"tasks,omitempty"`
}
