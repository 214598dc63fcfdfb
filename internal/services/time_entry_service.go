package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
)

var (
	ErrMinutesNotPositive = errors.New("minutes must be greater than zero")
	ErrDateRequired       = errors.New("date is required")
)

// TimeEntryService handles time tracking business logic.
type TimeEntryService struct {
	tenants *TenantService
	entries repository.TimeEntryRepository
	tasks   repository.TaskRepository
}

// NewTimeEntryService creates a new TimeEntryService.
func NewTimeEntryService(tenants *TenantService, entries repository.TimeEntryRepository, tasks repository.TaskRepository) *TimeEntryService {
	return &TimeEntryService{
		tenants: tenants,
		entries: entries,
		tasks:   tasks,
	}
}

// CreateTimeEntryInput represents input for logging time.
type CreateTimeEntryInput struct {
	TaskID  *uint64
	Date    time.Time
	Minutes int
	Note    string
}

// Create logs time stamped with the caller's resolved tenant.
func (s *TimeEntryService) Create(userID uint64, input CreateTimeEntryInput) (*models.TimeEntry, error) {
	if input.Minutes <= 0 {
		return nil, ErrMinutesNotPositive
	}
	if input.Date.IsZero() {
		return nil, ErrDateRequired
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	if input.TaskID != nil {
		if _, err := s.tasks.FindByID(t, *input.TaskID); err != nil {
			return nil, err
		}
	}

	entry := &models.TimeEntry{
		TaskID:         input.TaskID,
		Date:           input.Date,
		Minutes:        input.Minutes,
		Note:           input.Note,
		OrganizationID: t.OrganizationID,
		UserID:         t.UserID,
	}

	if err := s.entries.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create time entry: %w", err)
	}
	return entry, nil
}

// List returns the tenant's time entries, newest date first.
func (s *TimeEntryService) List(userID uint64, filter repository.TimeEntryFilter) ([]models.TimeEntry, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	entries, err := s.entries.List(t, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list time entries: %w", err)
	}
	return entries, nil
}

// UpdateTimeEntryInput holds the patchable time entry fields.
type UpdateTimeEntryInput struct {
	Date    *time.Time
	Minutes *int
	Note    *string
}

// Update patches a time entry within the tenant scope.
func (s *TimeEntryService) Update(userID, entryID uint64, input UpdateTimeEntryInput) error {
	patch := map[string]interface{}{}

	if input.Date != nil {
		if input.Date.IsZero() {
			return ErrDateRequired
		}
		patch["date"] = *input.Date
	}
	if input.Minutes != nil {
		if *input.Minutes <= 0 {
			return ErrMinutesNotPositive
		}
		patch["minutes"] = *input.Minutes
	}
	if input.Note != nil {
		patch["note"] = *input.Note
	}

	if len(patch) == 0 {
		return ErrNoFieldsToUpdate
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.entries.Update(t, entryID, patch)
}

// Delete removes a time entry within the tenant scope.
func (s *TimeEntryService) Delete(userID, entryID uint64) error {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.entries.Delete(t, entryID)
}
