package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// Create creates a new project. The caller stamps the tenant columns.
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByID finds a project visible to the tenant.
func (r *GormProjectRepository) FindByID(t database.Tenant, id uint64) (*models.Project, error) {
	var project models.Project
	err := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		First(&project, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// List lists the tenant's projects in creation order.
func (r *GormProjectRepository) List(t database.Tenant) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Update applies an allow-listed patch within the tenant scope.
func (r *GormProjectRepository) Update(t database.Tenant, id uint64, patch map[string]interface{}) error {
	return scopedUpdate(r.db, &models.Project{}, t, "user_id", id, patch)
}

// Delete removes a project within the tenant scope.
func (r *GormProjectRepository) Delete(t database.Tenant, id uint64) error {
	return scopedDelete(r.db, &models.Project{}, t, "user_id", id)
}
