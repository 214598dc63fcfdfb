package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/utils"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task. The caller stamps the tenant columns.
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task visible to the tenant, with relations.
func (r *GormTaskRepository) FindByID(t database.Tenant, id uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		Preload("Project").
		Preload("Assignee").
		First(&task, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &task, nil
}

// List retrieves the tenant's tasks with filtering and pagination, in
// creation order.
func (r *GormTaskRepository) List(t database.Tenant, filter TaskFilter, page, limit int) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).
		Scopes(database.TenantScope(t, "user_id"))

	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}
	if filter.SprintID != nil {
		query = query.Where("sprint_id = ?", *filter.SprintID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []models.Task
	listQuery := query.Order("id ASC")
	if page > 0 && limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.PaginationParams{
			Page:   page,
			Limit:  limit,
			Offset: (page - 1) * limit,
		}))
	}

	if err := listQuery.Preload("Assignee").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update applies an allow-listed patch within the tenant scope.
func (r *GormTaskRepository) Update(t database.Tenant, id uint64, patch map[string]interface{}) error {
	return scopedUpdate(r.db, &models.Task{}, t, "user_id", id, patch)
}

// Delete removes a task and its comments within the tenant scope.
func (r *GormTaskRepository) Delete(t database.Tenant, id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := scopedDelete(tx, &models.Task{}, t, "user_id", id); err != nil {
			return err
		}
		// Comments hang off the task; once the scoped task delete succeeded
		// the comments are in the same tenant by construction.
		return tx.Where("task_id = ?", id).Delete(&models.Comment{}).Error
	})
}

// CreateComment creates a new comment. The caller stamps the tenant columns.
func (r *GormTaskRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ListComments lists a task's comments visible to the tenant, oldest first.
func (r *GormTaskRepository) ListComments(t database.Tenant, taskID uint64) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		Where("task_id = ?", taskID).
		Order("id ASC").
		Preload("Author").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateComment applies an allow-listed patch within the tenant scope.
func (r *GormTaskRepository) UpdateComment(t database.Tenant, id uint64, patch map[string]interface{}) error {
	return scopedUpdate(r.db, &models.Comment{}, t, "user_id", id, patch)
}

// DeleteComment removes a comment within the tenant scope.
func (r *GormTaskRepository) DeleteComment(t database.Tenant, id uint64) error {
	return scopedDelete(r.db, &models.Comment{}, t, "user_id", id)
}
