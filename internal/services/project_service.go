package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
)

var (
	ErrProjectNameRequired  = errors.New("project name is required")
	ErrInvalidProjectStatus = errors.New("invalid project status")
	ErrNoFieldsToUpdate     = errors.New("no updatable fields provided")
)

// ProjectService handles project business logic.
type ProjectService struct {
	tenants  *TenantService
	projects repository.ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(tenants *TenantService, projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		tenants:  tenants,
		projects: projects,
	}
}

// CreateProjectInput represents input for creating a project. It carries no
// organization id on purpose: the tenant is stamped from the resolver.
type CreateProjectInput struct {
	Name        string
	Description string
	Color       string
}

// Create creates a project stamped with the caller's resolved tenant.
func (s *ProjectService) Create(userID uint64, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:           strings.TrimSpace(input.Name),
		Description:    input.Description,
		Color:          input.Color,
		Status:         models.ProjectStatusActive,
		OrganizationID: t.OrganizationID,
		UserID:         t.UserID,
	}

	if err := s.projects.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// List returns the tenant's projects.
func (s *ProjectService) List(userID uint64) ([]models.Project, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	projects, err := s.projects.List(t)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// Get returns a single project visible to the tenant.
func (s *ProjectService) Get(userID, projectID uint64) (*models.Project, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}
	return s.projects.FindByID(t, projectID)
}

// UpdateProjectInput holds the patchable project fields. Anything outside
// this set, organization_id included, cannot be written through an update.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Status      *models.ProjectStatus
	Color       *string
}

// Update patches a project within the tenant scope.
func (s *ProjectService) Update(userID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	patch := map[string]interface{}{}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrProjectNameRequired
		}
		patch["name"] = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Status != nil {
		switch *input.Status {
		case models.ProjectStatusActive, models.ProjectStatusArchived:
			patch["status"] = *input.Status
		default:
			return nil, ErrInvalidProjectStatus
		}
	}
	if input.Color != nil {
		patch["color"] = *input.Color
	}

	if len(patch) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	if err := s.projects.Update(t, projectID, patch); err != nil {
		return nil, err
	}
	return s.projects.FindByID(t, projectID)
}

// Delete removes a project within the tenant scope.
func (s *ProjectService) Delete(userID, projectID uint64) error {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.projects.Delete(t, projectID)
}
