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
	ErrSprintNameRequired  = errors.New("sprint name is required")
	ErrInvalidSprintStatus = errors.New("invalid sprint status")
	ErrSprintDatesInverted = errors.New("sprint must start before it ends")
)

// SprintService handles sprint business logic.
type SprintService struct {
	tenants  *TenantService
	sprints  repository.SprintRepository
	projects repository.ProjectRepository
}

// NewSprintService creates a new SprintService.
func NewSprintService(tenants *TenantService, sprints repository.SprintRepository, projects repository.ProjectRepository) *SprintService {
	return &SprintService{
		tenants:  tenants,
		sprints:  sprints,
		projects: projects,
	}
}

// CreateSprintInput represents input for creating a sprint.
type CreateSprintInput struct {
	Name      string
	ProjectID *uint64
	StartsOn  *time.Time
	EndsOn    *time.Time
}

// Create creates a sprint stamped with the caller's resolved tenant.
func (s *SprintService) Create(userID uint64, input CreateSprintInput) (*models.Sprint, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrSprintNameRequired
	}
	if input.StartsOn != nil && input.EndsOn != nil && !input.StartsOn.Before(*input.EndsOn) {
		return nil, ErrSprintDatesInverted
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	if input.ProjectID != nil {
		if _, err := s.projects.FindByID(t, *input.ProjectID); err != nil {
			return nil, err
		}
	}

	sprint := &models.Sprint{
		Name:           strings.TrimSpace(input.Name),
		Status:         models.SprintStatusPlanned,
		ProjectID:      input.ProjectID,
		StartsOn:       input.StartsOn,
		EndsOn:         input.EndsOn,
		OrganizationID: t.OrganizationID,
		UserID:         t.UserID,
	}

	if err := s.sprints.Create(sprint); err != nil {
		return nil, fmt.Errorf("failed to create sprint: %w", err)
	}
	return sprint, nil
}

// List returns the tenant's sprints, optionally filtered by project.
func (s *SprintService) List(userID uint64, projectID *uint64) ([]models.Sprint, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	sprints, err := s.sprints.List(t, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sprints: %w", err)
	}
	return sprints, nil
}

// UpdateSprintInput holds the patchable sprint fields.
type UpdateSprintInput struct {
	Name     *string
	Status   *models.SprintStatus
	StartsOn *time.Time
	EndsOn   *time.Time
}

// Update patches a sprint within the tenant scope.
func (s *SprintService) Update(userID, sprintID uint64, input UpdateSprintInput) (*models.Sprint, error) {
	patch := map[string]interface{}{}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrSprintNameRequired
		}
		patch["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Status != nil {
		switch *input.Status {
		case models.SprintStatusPlanned, models.SprintStatusActive, models.SprintStatusCompleted:
			patch["status"] = *input.Status
		default:
			return nil, ErrInvalidSprintStatus
		}
	}
	if input.StartsOn != nil {
		patch["starts_on"] = *input.StartsOn
	}
	if input.EndsOn != nil {
		patch["ends_on"] = *input.EndsOn
	}

	if len(patch) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	// A patched window must stay valid against whichever bound it does not
	// touch, so the stored row fills in the missing side.
	if input.StartsOn != nil || input.EndsOn != nil {
		current, err := s.sprints.FindByID(t, sprintID)
		if err != nil {
			return nil, err
		}

		starts := current.StartsOn
		if input.StartsOn != nil {
			starts = input.StartsOn
		}
		ends := current.EndsOn
		if input.EndsOn != nil {
			ends = input.EndsOn
		}
		if starts != nil && ends != nil && !starts.Before(*ends) {
			return nil, ErrSprintDatesInverted
		}
	}

	if err := s.sprints.Update(t, sprintID, patch); err != nil {
		return nil, err
	}
	return s.sprints.FindByID(t, sprintID)
}

// Delete removes a sprint within the tenant scope.
func (s *SprintService) Delete(userID, sprintID uint64) error {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.sprints.Delete(t, sprintID)
}
