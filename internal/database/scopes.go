package database

import (
	"gorm.io/gorm"

	"github.com/ryotashiba/project-management-api/internal/utils"
)

// Tenant is the resolved scope of an authenticated request: the user's
// organization, or the user alone when OrganizationID is nil (personal mode).
type Tenant struct {
	UserID         uint64
	OrganizationID *uint64
}

// Personal reports whether the tenant is an org-less personal scope.
func (t Tenant) Personal() bool {
	return t.OrganizationID == nil
}

// TenantScope returns a GORM scope restricting a query to rows visible to the
// tenant. Must be applied to every statement touching a scoped entity,
// mutations included; skipping it on writes is the bug class this package
// exists to prevent.
//
// Exactly two branches:
//   - org member:     organization_id = ?
//   - personal mode:  organization_id IS NULL AND <ownerColumn> = ?
//
// Every scoped row matches exactly one branch for a given requester, so no
// row is double-counted or skipped through ambiguous NULL handling.
func TenantScope(t Tenant, ownerColumn string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if t.OrganizationID != nil {
			return db.Where("organization_id = ?", *t.OrganizationID)
		}
		return db.Where("organization_id IS NULL AND "+ownerColumn+" = ?", t.UserID)
	}
}

// Paginate applies pagination to a GORM query.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
