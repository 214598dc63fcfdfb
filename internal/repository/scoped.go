package repository

import (
	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/database"
)

// scopedUpdate applies an allow-listed patch to a single row with the tenant
// predicate in the same UPDATE statement, so the authorization check and the
// mutation are atomic. Zero affected rows means the row does not exist or is
// out of scope; callers get ErrNotFound either way.
func scopedUpdate(db *gorm.DB, model interface{}, t database.Tenant, ownerColumn string, id uint64, patch map[string]interface{}) error {
	result := db.Model(model).
		Scopes(database.TenantScope(t, ownerColumn)).
		Where("id = ?", id).
		Updates(patch)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// scopedDelete deletes a single row with the tenant predicate in the same
// DELETE statement. Same zero-row semantics as scopedUpdate.
func scopedDelete(db *gorm.DB, model interface{}, t database.Tenant, ownerColumn string, id uint64) error {
	result := db.
		Scopes(database.TenantScope(t, ownerColumn)).
		Where("id = ?", id).
		Delete(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
