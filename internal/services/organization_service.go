package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
)

var (
	ErrOrganizationNameRequired = errors.New("organization name cannot be empty")
	ErrAlreadyInOrganization    = errors.New("user already belongs to an organization")
	ErrNotInOrganization        = errors.New("user does not belong to an organization")
	ErrNotOrganizationOwner     = errors.New("only the organization owner can perform this action")
	ErrInviteeNotFound          = errors.New("no user with that email exists")
	ErrInviteeAlreadyMember     = errors.New("user already belongs to an organization")
	ErrOwnerCannotLeave         = errors.New("the owner cannot leave while other members remain")
	ErrInvalidWorkHours         = errors.New("work hours must be HH:MM")
)

var workHoursRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgs  repository.OrganizationRepository
	users repository.UserRepository
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgs repository.OrganizationRepository, users repository.UserRepository) *OrganizationService {
	return &OrganizationService{
		orgs:  orgs,
		users: users,
	}
}

// CreateOrganization creates an organization with the caller as owner and
// moves the caller into it. Rows the caller created in personal mode are NOT
// re-scoped: they keep organization_id NULL and disappear from the caller's
// org-scoped views until the caller leaves again. Explicit fresh-start
// behavior; see DESIGN.md.
func (s *OrganizationService) CreateOrganization(ownerID uint64, name string) (*models.Organization, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrOrganizationNameRequired
	}

	owner, err := s.users.FindByID(ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if owner.OrganizationID != nil {
		return nil, ErrAlreadyInOrganization
	}

	org := &models.Organization{Name: strings.TrimSpace(name)}
	if err := s.orgs.CreateWithOwner(org, ownerID); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// GetCurrent returns the caller's organization with its members.
func (s *OrganizationService) GetCurrent(userID uint64) (*models.Organization, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.OrganizationID == nil {
		return nil, ErrNotInOrganization
	}

	org, err := s.orgs.FindByID(*user.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	return org, nil
}

// UpdateCurrentInput holds the owner-editable organization fields.
type UpdateCurrentInput struct {
	Name           *string
	WorkHoursStart *string
	WorkHoursEnd   *string
}

// UpdateCurrent updates organization settings. Owner only.
func (s *OrganizationService) UpdateCurrent(userID uint64, input UpdateCurrentInput) (*models.Organization, error) {
	org, err := s.requireOwner(userID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrOrganizationNameRequired
		}
		org.Name = strings.TrimSpace(*input.Name)
	}
	if input.WorkHoursStart != nil {
		if !workHoursRe.MatchString(*input.WorkHoursStart) {
			return nil, ErrInvalidWorkHours
		}
		org.WorkHoursStart = *input.WorkHoursStart
	}
	if input.WorkHoursEnd != nil {
		if !workHoursRe.MatchString(*input.WorkHoursEnd) {
			return nil, ErrInvalidWorkHours
		}
		org.WorkHoursEnd = *input.WorkHoursEnd
	}

	if err := s.orgs.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}
	return org, nil
}

// InviteUser reassigns an existing user's organization_id into the caller's
// organization. This is the one sanctioned cross-tenant move; the invitee's
// personal-mode rows stay behind in their personal scope.
func (s *OrganizationService) InviteUser(actorID uint64, email string) (*models.User, error) {
	org, err := s.requireOwner(actorID)
	if err != nil {
		return nil, err
	}

	invitee, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInviteeNotFound
		}
		return nil, fmt.Errorf("failed to find invitee: %w", err)
	}
	if invitee.OrganizationID != nil {
		return nil, ErrInviteeAlreadyMember
	}

	if err := s.users.SetOrganization(invitee.ID, &org.ID, models.RoleMember); err != nil {
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	invitee.OrganizationID = &org.ID
	invitee.Role = models.RoleMember
	return invitee, nil
}

// Leave returns the caller to personal mode. The owner may only leave when no
// other members remain, in which case the organization is deleted.
func (s *OrganizationService) Leave(userID uint64) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user.OrganizationID == nil {
		return ErrNotInOrganization
	}

	org, err := s.orgs.FindByID(*user.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if org.OwnerID == userID {
		members, err := s.users.ListByOrganization(org.ID)
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}
		if len(members) > 1 {
			return ErrOwnerCannotLeave
		}
		return s.deleteOrganization(org.ID)
	}

	if err := s.users.SetOrganization(userID, nil, models.RoleMember); err != nil {
		return fmt.Errorf("failed to leave organization: %w", err)
	}
	return nil
}

// DeleteCurrent deletes the caller's organization. Owner only. Members are
// released to personal mode; org-scoped rows are removed.
func (s *OrganizationService) DeleteCurrent(userID uint64) error {
	org, err := s.requireOwner(userID)
	if err != nil {
		return err
	}
	return s.deleteOrganization(org.ID)
}

func (s *OrganizationService) deleteOrganization(orgID uint64) error {
	if err := s.orgs.DeleteWithMembers(orgID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}
	return nil
}

func (s *OrganizationService) requireOwner(userID uint64) (*models.Organization, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.OrganizationID == nil {
		return nil, ErrNotInOrganization
	}

	org, err := s.orgs.FindByID(*user.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}
	if org.OwnerID != userID {
		return nil, ErrNotOrganizationOwner
	}
	return org, nil
}
