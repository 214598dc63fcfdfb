package models

import "time"

// TimeEntry records minutes spent on a task (or unattached work) on a date.
type TimeEntry struct {
	ID      uint64     `gorm:"primarykey" json:"id"`
	TaskID  *uint64    `gorm:"index" json:"task_id"`
	Date    time.Time  `gorm:"not null;index" json:"date"`
	Minutes int        `gorm:"not null" json:"minutes"`
	Note    string     `gorm:"type:text" json:"note"`

	OrganizationID *uint64 `gorm:"index" json:"organization_id"`
	UserID         uint64  `gorm:"not null;index" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Task *Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
}
