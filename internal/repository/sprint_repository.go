package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
)

// GormSprintRepository is a GORM implementation of SprintRepository
type GormSprintRepository struct {
	db *gorm.DB
}

// NewSprintRepository creates a new SprintRepository
func NewSprintRepository(db *gorm.DB) SprintRepository {
	return &GormSprintRepository{db: db}
}

// Create creates a new sprint. The caller stamps the tenant columns.
func (r *GormSprintRepository) Create(sprint *models.Sprint) error {
	return r.db.Create(sprint).Error
}

// FindByID finds a sprint visible to the tenant.
func (r *GormSprintRepository) FindByID(t database.Tenant, id uint64) (*models.Sprint, error) {
	var sprint models.Sprint
	err := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		First(&sprint, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sprint, nil
}

// List lists the tenant's sprints, optionally filtered by project.
func (r *GormSprintRepository) List(t database.Tenant, projectID *uint64) ([]models.Sprint, error) {
	query := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		Order("id ASC")

	if projectID != nil {
		query = query.Where("project_id = ?", *projectID)
	}

	var sprints []models.Sprint
	if err := query.Find(&sprints).Error; err != nil {
		return nil, err
	}
	return sprints, nil
}

// Update applies an allow-listed patch within the tenant scope.
func (r *GormSprintRepository) Update(t database.Tenant, id uint64, patch map[string]interface{}) error {
	return scopedUpdate(r.db, &models.Sprint{}, t, "user_id", id, patch)
}

// Delete removes a sprint within the tenant scope and detaches its tasks.
func (r *GormSprintRepository) Delete(t database.Tenant, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := scopedDelete(tx, &models.Sprint{}, t, "user_id", id); err != nil {
			return err
		}
		return tx.Model(&models.Task{}).
			Where("sprint_id = ?", id).
			Update("sprint_id", nil).Error
	})
}
