package models

import (
	"time"

	"gorm.io/gorm"
)

// Meeting is owned by its organizer: in personal mode the scope predicate
// falls back to the organizer_id column rather than user_id.
type Meeting struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	Title    string    `gorm:"type:varchar(255);not null" json:"title"`
	Agenda   string    `gorm:"type:text" json:"agenda"`
	StartsAt time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`
	Location string    `gorm:"type:varchar(255)" json:"location"`

	OrganizationID *uint64 `gorm:"index" json:"organization_id"`
	OrganizerID    uint64  `gorm:"not null;index" json:"organizer_id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Organizer *User `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
}
