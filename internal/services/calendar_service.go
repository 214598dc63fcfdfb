package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
)

var (
	ErrEventTitleRequired = errors.New("title is required")
	ErrEventTimesInverted = errors.New("event must start before it ends")
)

// CalendarService handles meetings and appointments.
type CalendarService struct {
	tenants  *TenantService
	calendar repository.CalendarRepository
}

// NewCalendarService creates a new CalendarService.
func NewCalendarService(tenants *TenantService, calendar repository.CalendarRepository) *CalendarService {
	return &CalendarService{
		tenants:  tenants,
		calendar: calendar,
	}
}

// CreateEventInput represents input for creating a meeting or appointment.
type CreateEventInput struct {
	Title    string
	Agenda   string
	StartsAt time.Time
	EndsAt   time.Time
	Location string
}

func (input CreateEventInput) validate() error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrEventTitleRequired
	}
	if !input.StartsAt.Before(input.EndsAt) {
		return ErrEventTimesInverted
	}
	return nil
}

// CreateMeeting creates a meeting organized by the caller.
func (s *CalendarService) CreateMeeting(userID uint64, input CreateEventInput) (*models.Meeting, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	meeting := &models.Meeting{
		Title:          strings.TrimSpace(input.Title),
		Agenda:         input.Agenda,
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		Location:       input.Location,
		OrganizationID: t.OrganizationID,
		OrganizerID:    t.UserID,
	}

	if err := s.calendar.CreateMeeting(meeting); err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}
	return meeting, nil
}

// ListMeetings returns the tenant's meetings by start time.
func (s *CalendarService) ListMeetings(userID uint64) ([]models.Meeting, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	meetings, err := s.calendar.ListMeetings(t)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// UpdateEventInput holds the patchable meeting/appointment fields.
type UpdateEventInput struct {
	Title    *string
	Agenda   *string
	StartsAt *time.Time
	EndsAt   *time.Time
	Location *string
}

func (input UpdateEventInput) patch() (map[string]interface{}, error) {
	patch := map[string]interface{}{}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrEventTitleRequired
		}
		patch["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Agenda != nil {
		patch["agenda"] = *input.Agenda
	}
	if input.StartsAt != nil {
		patch["starts_at"] = *input.StartsAt
	}
	if input.EndsAt != nil {
		patch["ends_at"] = *input.EndsAt
	}
	if input.StartsAt != nil && input.EndsAt != nil && !input.StartsAt.Before(*input.EndsAt) {
		return nil, ErrEventTimesInverted
	}
	if input.Location != nil {
		patch["location"] = *input.Location
	}

	if len(patch) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	return patch, nil
}

// UpdateMeeting patches a meeting within the tenant scope.
func (s *CalendarService) UpdateMeeting(userID, meetingID uint64, input UpdateEventInput) error {
	patch, err := input.patch()
	if err != nil {
		return err
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.calendar.UpdateMeeting(t, meetingID, patch)
}

// DeleteMeeting removes a meeting within the tenant scope.
func (s *CalendarService) DeleteMeeting(userID, meetingID uint64) error {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.calendar.DeleteMeeting(t, meetingID)
}

// CreateAppointment creates an appointment for the caller.
func (s *CalendarService) CreateAppointment(userID uint64, input CreateEventInput) (*models.Appointment, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		Title:          strings.TrimSpace(input.Title),
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		Location:       input.Location,
		OrganizationID: t.OrganizationID,
		UserID:         t.UserID,
	}

	if err := s.calendar.CreateAppointment(appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	return appointment, nil
}

// ListAppointments returns the tenant's appointments by start time.
func (s *CalendarService) ListAppointments(userID uint64) ([]models.Appointment, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.calendar.ListAppointments(t)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// UpdateAppointment patches an appointment within the tenant scope.
func (s *CalendarService) UpdateAppointment(userID, appointmentID uint64, input UpdateEventInput) error {
	patch, err := input.patch()
	if err != nil {
		return err
	}
	delete(patch, "agenda") // appointments have no agenda column

	if len(patch) == 0 {
		return ErrNoFieldsToUpdate
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.calendar.UpdateAppointment(t, appointmentID, patch)
}

// DeleteAppointment removes an appointment within the tenant scope.
func (s *CalendarService) DeleteAppointment(userID, appointmentID uint64) error {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.calendar.DeleteAppointment(t, appointmentID)
}
