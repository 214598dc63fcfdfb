package repository

import (
	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
)

// GormTimeEntryRepository is a GORM implementation of TimeEntryRepository
type GormTimeEntryRepository struct {
	db *gorm.DB
}

// NewTimeEntryRepository creates a new TimeEntryRepository
func NewTimeEntryRepository(db *gorm.DB) TimeEntryRepository {
	return &GormTimeEntryRepository{db: db}
}

// Create creates a new time entry. The caller stamps the tenant columns.
func (r *GormTimeEntryRepository) Create(entry *models.TimeEntry) error {
	return r.db.Create(entry).Error
}

// List lists the tenant's time entries, newest date first.
func (r *GormTimeEntryRepository) List(t database.Tenant, filter TimeEntryFilter) ([]models.TimeEntry, error) {
	query := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		Order("date DESC, id DESC")

	if filter.TaskID != nil {
		query = query.Where("task_id = ?", *filter.TaskID)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("date < ?", *filter.To)
	}

	var entries []models.TimeEntry
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Update applies an allow-listed patch within the tenant scope.
func (r *GormTimeEntryRepository) Update(t database.Tenant, id uint64, patch map[string]interface{}) error {
	return scopedUpdate(r.db, &models.TimeEntry{}, t, "user_id", id, patch)
}

// Delete removes a time entry within the tenant scope.
func (r *GormTimeEntryRepository) Delete(t database.Tenant, id uint64) error {
	return scopedDelete(r.db, &models.TimeEntry{}, t, "user_id", id)
}
