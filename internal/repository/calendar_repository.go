package repository

import (
	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
)

// GormCalendarRepository is a GORM implementation of CalendarRepository.
// Meetings fall back to organizer_id in personal mode, appointments to
// user_id; the owner column is the only difference between the two halves.
type GormCalendarRepository struct {
	db *gorm.DB
}

// NewCalendarRepository creates a new CalendarRepository
func NewCalendarRepository(db *gorm.DB) CalendarRepository {
	return &GormCalendarRepository{db: db}
}

// CreateMeeting creates a new meeting. The caller stamps the tenant columns.
func (r *GormCalendarRepository) CreateMeeting(meeting *models.Meeting) error {
	return r.db.Create(meeting).Error
}

// ListMeetings lists the tenant's meetings by start time.
func (r *GormCalendarRepository) ListMeetings(t database.Tenant) ([]models.Meeting, error) {
	var meetings []models.Meeting
	err := r.db.
		Scopes(database.TenantScope(t, "organizer_id")).
		Order("starts_at ASC").
		Preload("Organizer").
		Find(&meetings).Error
	if err != nil {
		return nil, err
	}
	return meetings, nil
}

// UpdateMeeting applies an allow-listed patch within the tenant scope.
func (r *GormCalendarRepository) UpdateMeeting(t database.Tenant, id uint64, patch map[string]interface{}) error {
	return scopedUpdate(r.db, &models.Meeting{}, t, "organizer_id", id, patch)
}

// DeleteMeeting removes a meeting within the tenant scope.
func (r *GormCalendarRepository) DeleteMeeting(t database.Tenant, id uint64) error {
	return scopedDelete(r.db, &models.Meeting{}, t, "organizer_id", id)
}

// CreateAppointment creates a new appointment. The caller stamps the tenant columns.
func (r *GormCalendarRepository) CreateAppointment(appointment *models.Appointment) error {
	return r.db.Create(appointment).Error
}

// ListAppointments lists the tenant's appointments by start time.
func (r *GormCalendarRepository) ListAppointments(t database.Tenant) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		Order("starts_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// UpdateAppointment applies an allow-listed patch within the tenant scope.
func (r *GormCalendarRepository) UpdateAppointment(t database.Tenant, id uint64, patch map[string]interface{}) error {
	return scopedUpdate(r.db, &models.Appointment{}, t, "user_id", id, patch)
}

// DeleteAppointment removes an appointment within the tenant scope.
func (r *GormCalendarRepository) DeleteAppointment(t database.Tenant, id uint64) error {
	return scopedDelete(r.db, &models.Appointment{}, t, "user_id", id)
}
