package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/models"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// CreateWithOwner creates the organization and moves the creator into it as
// owner, atomically. Rows the owner created in personal mode are left
// untouched: they keep organization_id NULL and drop out of the owner's new
// scoped view (fresh-start behavior, covered by tests).
func (r *GormOrganizationRepository) CreateWithOwner(org *models.Organization, ownerID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		org.OwnerID = ownerID
		if err := tx.Create(org).Error; err != nil {
			return err
		}

		result := tx.Model(&models.User{}).
			Where("id = ?", ownerID).
			Updates(map[string]interface{}{
				"organization_id": org.ID,
				"role":            models.RoleOwner,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Preload("Members").First(&org, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &org, nil
}

// Update updates an organization
func (r *GormOrganizationRepository) Update(org *models.Organization) error {
	return r.db.Save(org).Error
}

// DeleteWithMembers deletes the organization, releases members to personal
// mode and removes org-scoped rows in one transaction.
func (r *GormOrganizationRepository) DeleteWithMembers(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("organization_id = ?", id).
			Updates(map[string]interface{}{
				"organization_id": nil,
				"role":            models.RoleMember,
			}).Error; err != nil {
			return err
		}

		for _, model := range []interface{}{
			&models.Task{},
			&models.Project{},
			&models.Sprint{},
			&models.TimeEntry{},
			&models.Comment{},
			&models.Meeting{},
			&models.Appointment{},
			&models.AppSetting{},
			&models.ApiKey{},
		} {
			if err := tx.Where("organization_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		result := tx.Delete(&models.Organization{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
