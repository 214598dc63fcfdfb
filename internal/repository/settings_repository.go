package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
)

// GormSettingsRepository is a GORM implementation of SettingsRepository
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &GormSettingsRepository{db: db}
}

// UpsertSetting writes a key/value pair for the tenant. The read and the
// write run in one transaction so concurrent upserts cannot duplicate a key.
func (r *GormSettingsRepository) UpsertSetting(t database.Tenant, key, value string) (*models.AppSetting, error) {
	var setting models.AppSetting

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Scopes(database.TenantScope(t, "user_id")).
			Where("key = ?", key).
			First(&setting).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = models.AppSetting{
				Key:            key,
				Value:          value,
				OrganizationID: t.OrganizationID,
				UserID:         t.UserID,
			}
			return tx.Create(&setting).Error
		}
		if err != nil {
			return err
		}

		return scopedUpdate(tx, &models.AppSetting{}, t, "user_id", setting.ID,
			map[string]interface{}{"value": value})
	})
	if err != nil {
		return nil, err
	}

	setting.Value = value
	return &setting, nil
}

// ListSettings lists the tenant's settings by key.
func (r *GormSettingsRepository) ListSettings(t database.Tenant) ([]models.AppSetting, error) {
	var settings []models.AppSetting
	err := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		Order("key ASC").
		Find(&settings).Error
	if err != nil {
		return nil, err
	}
	return settings, nil
}

// DeleteSetting removes a setting by key within the tenant scope.
func (r *GormSettingsRepository) DeleteSetting(t database.Tenant, key string) error {
	result := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		Where("key = ?", key).
		Delete(&models.AppSetting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateAPIKey creates a stored provider credential. The caller stamps the
// tenant columns and generates the secret.
func (r *GormSettingsRepository) CreateAPIKey(key *models.ApiKey) error {
	return r.db.Create(key).Error
}

// ListAPIKeys lists the tenant's API keys in creation order.
func (r *GormSettingsRepository) ListAPIKeys(t database.Tenant) ([]models.ApiKey, error) {
	var keys []models.ApiKey
	err := r.db.
		Scopes(database.TenantScope(t, "user_id")).
		Order("id ASC").
		Find(&keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// DeleteAPIKey removes an API key within the tenant scope.
func (r *GormSettingsRepository) DeleteAPIKey(t database.Tenant, id uint64) error {
	return scopedDelete(r.db, &models.ApiKey{}, t, "user_id", id)
}
