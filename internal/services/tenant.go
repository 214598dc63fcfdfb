package services

import (
	"errors"
	"fmt"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/repository"
)

// ErrUserNotFound means the authenticated id has no user row. Always fatal to
// the request; the caller must answer with an authorization-equivalent error,
// never fall back to a default scope.
var ErrUserNotFound = errors.New("user not found")

// TenantService resolves an authenticated user id to its tenant scope.
type TenantService struct {
	users repository.UserRepository
}

// NewTenantService creates a new TenantService.
func NewTenantService(users repository.UserRepository) *TenantService {
	return &TenantService{users: users}
}

// Resolve loads the user row and returns its organization id verbatim, nil
// meaning personal mode. Read-only.
func (s *TenantService) Resolve(userID uint64) (database.Tenant, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return database.Tenant{}, ErrUserNotFound
		}
		return database.Tenant{}, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	return database.Tenant{
		UserID:         user.ID,
		OrganizationID: user.OrganizationID,
	}, nil
}
