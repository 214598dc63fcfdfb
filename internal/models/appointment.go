package models

import "time"

type Appointment struct {
	ID       uint64    `gorm:"primarykey" json:"id"`
	Title    string    `gorm:"type:varchar(255);not null" json:"title"`
	StartsAt time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt   time.Time `gorm:"not null" json:"ends_at"`
	Location string    `gorm:"type:varchar(255)" json:"location"`

	OrganizationID *uint64 `gorm:"index" json:"organization_id"`
	UserID         uint64  `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
