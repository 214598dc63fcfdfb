package models

import (
	"time"

	"gorm.io/gorm"
)

// Organization is the tenant boundary. Membership is defined entirely by
// User.OrganizationID pointing at this row; there is no membership table.
type Organization struct {
	ID      uint64 `gorm:"primarykey" json:"id"`
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	OwnerID uint64 `gorm:"not null" json:"owner_id"`

	// Work hours in "HH:MM", used by the calendar views.
	WorkHoursStart string `gorm:"type:varchar(5);default:'09:00'" json:"work_hours_start"`
	WorkHoursEnd   string `gorm:"type:varchar(5);default:'17:00'" json:"work_hours_end"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Members []User `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
}
