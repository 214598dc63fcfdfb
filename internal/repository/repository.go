package repository

import (
	"errors"
	"time"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
)

// ErrNotFound is returned whenever a scoped statement matched zero rows. It
// deliberately covers both "row does not exist" and "row belongs to another
// tenant" so callers cannot tell the two apart.
var ErrNotFound = errors.New("resource not found")

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id uint64) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	FindByProvider(provider, providerID string) (*models.User, error)
	Update(user *models.User) error
	// SetOrganization reassigns a user's tenant. Pass nil to return the user
	// to personal mode. This is the only sanctioned cross-tenant move.
	SetOrganization(userID uint64, organizationID *uint64, role models.UserRole) error
	ListByOrganization(organizationID uint64) ([]models.User, error)
}

// OrganizationRepository defines the interface for organization data access
type OrganizationRepository interface {
	// CreateWithOwner creates the organization and moves the owner into it
	// within a single transaction.
	CreateWithOwner(org *models.Organization, ownerID uint64) error
	FindByID(id uint64) (*models.Organization, error)
	Update(org *models.Organization) error
	// DeleteWithMembers removes the organization, releases its members to
	// personal mode, and deletes org-scoped rows, atomically.
	DeleteWithMembers(id uint64) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	ProjectID  *uint64
	SprintID   *uint64
	AssigneeID *uint64
	Status     *models.TaskStatus
}

// ProjectRepository defines scoped data access for projects.
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(t database.Tenant, id uint64) (*models.Project, error)
	List(t database.Tenant) ([]models.Project, error)
	Update(t database.Tenant, id uint64, patch map[string]interface{}) error
	Delete(t database.Tenant, id uint64) error
}

// TaskRepository defines scoped data access for tasks and their comments.
type TaskRepository interface {
	Create(task *models.Task) error
	FindByID(t database.Tenant, id uint64) (*models.Task, error)
	List(t database.Tenant, filter TaskFilter, page, limit int) ([]models.Task, int64, error)
	Update(t database.Tenant, id uint64, patch map[string]interface{}) error
	Delete(t database.Tenant, id uint64) error

	CreateComment(comment *models.Comment) error
	ListComments(t database.Tenant, taskID uint64) ([]models.Comment, error)
	UpdateComment(t database.Tenant, id uint64, patch map[string]interface{}) error
	DeleteComment(t database.Tenant, id uint64) error
}

// SprintRepository defines scoped data access for sprints.
type SprintRepository interface {
	Create(sprint *models.Sprint) error
	FindByID(t database.Tenant, id uint64) (*models.Sprint, error)
	List(t database.Tenant, projectID *uint64) ([]models.Sprint, error)
	Update(t database.Tenant, id uint64, patch map[string]interface{}) error
	Delete(t database.Tenant, id uint64) error
}

// TimeEntryFilter holds filtering options for listing time entries.
type TimeEntryFilter struct {
	TaskID *uint64
	From   *time.Time
	To     *time.Time
}

// TimeEntryRepository defines scoped data access for time entries.
type TimeEntryRepository interface {
	Create(entry *models.TimeEntry) error
	List(t database.Tenant, filter TimeEntryFilter) ([]models.TimeEntry, error)
	Update(t database.Tenant, id uint64, patch map[string]interface{}) error
	Delete(t database.Tenant, id uint64) error
}

// CalendarRepository defines scoped data access for meetings and appointments.
type CalendarRepository interface {
	CreateMeeting(meeting *models.Meeting) error
	ListMeetings(t database.Tenant) ([]models.Meeting, error)
	UpdateMeeting(t database.Tenant, id uint64, patch map[string]interface{}) error
	DeleteMeeting(t database.Tenant, id uint64) error

	CreateAppointment(appointment *models.Appointment) error
	ListAppointments(t database.Tenant) ([]models.Appointment, error)
	UpdateAppointment(t database.Tenant, id uint64, patch map[string]interface{}) error
	DeleteAppointment(t database.Tenant, id uint64) error
}

// SettingsRepository defines scoped data access for app settings and API keys.
type SettingsRepository interface {
	UpsertSetting(t database.Tenant, key, value string) (*models.AppSetting, error)
	ListSettings(t database.Tenant) ([]models.AppSetting, error)
	DeleteSetting(t database.Tenant, key string) error

	CreateAPIKey(key *models.ApiKey) error
	ListAPIKeys(t database.Tenant) ([]models.ApiKey, error)
	DeleteAPIKey(t database.Tenant, id uint64) error
}
