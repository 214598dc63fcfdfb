package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ryotashiba/project-management-api/internal/database"
	"github.com/ryotashiba/project-management-api/internal/models"
	"github.com/ryotashiba/project-management-api/internal/repository"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrInvalidTaskStatus   = errors.New("invalid task status")
	ErrInvalidTaskPriority = errors.New("invalid task priority")
	ErrCommentBodyRequired = errors.New("comment body cannot be empty")
)

// TaskService handles task and comment business logic.
type TaskService struct {
	tenants  *TenantService
	tasks    repository.TaskRepository
	projects repository.ProjectRepository
	sprints  repository.SprintRepository
	users    repository.UserRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	tenants *TenantService,
	tasks repository.TaskRepository,
	projects repository.ProjectRepository,
	sprints repository.SprintRepository,
	users repository.UserRepository,
) *TaskService {
	return &TaskService{
		tenants:  tenants,
		tasks:    tasks,
		projects: projects,
		sprints:  sprints,
		users:    users,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	DueDate     *time.Time
	ProjectID   *uint64
	SprintID    *uint64
	AssigneeID  *uint64
}

// Create creates a task stamped with the caller's resolved tenant. Project,
// sprint and assignee references are validated inside the same tenant, so a
// task can never point into another organization's data.
func (s *TaskService) Create(userID uint64, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if err := validTaskStatus(input.Status); err != nil {
		return nil, err
	}
	if input.Priority == "" {
		input.Priority = models.TaskPriorityMedium
	}
	if err := validTaskPriority(input.Priority); err != nil {
		return nil, err
	}

	if err := s.checkTaskRefs(t, input.ProjectID, input.SprintID, input.AssigneeID); err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Status:         input.Status,
		Priority:       input.Priority,
		DueDate:        input.DueDate,
		ProjectID:      input.ProjectID,
		SprintID:       input.SprintID,
		AssigneeID:     input.AssigneeID,
		OrganizationID: t.OrganizationID,
		UserID:         t.UserID,
	}

	if err := s.tasks.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// List returns the tenant's tasks with filters and pagination.
func (s *TaskService) List(userID uint64, filter repository.TaskFilter, page, limit int) ([]models.Task, int64, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.tasks.List(t, filter, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// Get returns a single task visible to the tenant.
func (s *TaskService) Get(userID, taskID uint64) (*models.Task, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}
	return s.tasks.FindByID(t, taskID)
}

// UpdateTaskInput holds the patchable task fields.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Status       *models.TaskStatus
	Priority     *models.TaskPriority
	DueDate      *time.Time
	ClearDueDate bool
	ProjectID    *uint64
	SprintID     *uint64
	AssigneeID   *uint64
}

// Update patches a task within the tenant scope.
func (s *TaskService) Update(userID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	patch := map[string]interface{}{}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		patch["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		patch["description"] = *input.Description
	}
	if input.Status != nil {
		if err := validTaskStatus(*input.Status); err != nil {
			return nil, err
		}
		patch["status"] = *input.Status
	}
	if input.Priority != nil {
		if err := validTaskPriority(*input.Priority); err != nil {
			return nil, err
		}
		patch["priority"] = *input.Priority
	}
	if input.ClearDueDate {
		patch["due_date"] = nil
	} else if input.DueDate != nil {
		patch["due_date"] = *input.DueDate
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	if input.ProjectID != nil || input.SprintID != nil || input.AssigneeID != nil {
		if err := s.checkTaskRefs(t, input.ProjectID, input.SprintID, input.AssigneeID); err != nil {
			return nil, err
		}
		if input.ProjectID != nil {
			patch["project_id"] = *input.ProjectID
		}
		if input.SprintID != nil {
			patch["sprint_id"] = *input.SprintID
		}
		if input.AssigneeID != nil {
			patch["assignee_id"] = *input.AssigneeID
		}
	}

	if len(patch) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.tasks.Update(t, taskID, patch); err != nil {
		return nil, err
	}
	return s.tasks.FindByID(t, taskID)
}

// Delete removes a task within the tenant scope.
func (s *TaskService) Delete(userID, taskID uint64) error {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.tasks.Delete(t, taskID)
}

// AddComment creates a comment on a task the tenant can see.
func (s *TaskService) AddComment(userID, taskID uint64, body string) (*models.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, ErrCommentBodyRequired
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	// The task lookup runs through the scope predicate, so commenting on
	// another tenant's task reports not-found.
	if _, err := s.tasks.FindByID(t, taskID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:         taskID,
		Body:           body,
		OrganizationID: t.OrganizationID,
		UserID:         t.UserID,
	}

	if err := s.tasks.CreateComment(comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// ListComments returns a visible task's comments.
func (s *TaskService) ListComments(userID, taskID uint64) ([]models.Comment, error) {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return nil, err
	}

	if _, err := s.tasks.FindByID(t, taskID); err != nil {
		return nil, err
	}

	comments, err := s.tasks.ListComments(t, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateComment patches a comment's body within the tenant scope.
func (s *TaskService) UpdateComment(userID, commentID uint64, body string) error {
	if strings.TrimSpace(body) == "" {
		return ErrCommentBodyRequired
	}

	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.tasks.UpdateComment(t, commentID, map[string]interface{}{"body": body})
}

// DeleteComment removes a comment within the tenant scope.
func (s *TaskService) DeleteComment(userID, commentID uint64) error {
	t, err := s.tenants.Resolve(userID)
	if err != nil {
		return err
	}
	return s.tasks.DeleteComment(t, commentID)
}

// checkTaskRefs verifies referenced rows are visible to the same tenant.
func (s *TaskService) checkTaskRefs(t database.Tenant, projectID, sprintID, assigneeID *uint64) error {
	if projectID != nil {
		if _, err := s.projects.FindByID(t, *projectID); err != nil {
			return err
		}
	}
	if sprintID != nil {
		if _, err := s.sprints.FindByID(t, *sprintID); err != nil {
			return err
		}
	}
	if assigneeID != nil {
		assignee, err := s.users.FindByID(*assigneeID)
		if err != nil {
			return err
		}
		// Personal-mode tasks can only be assigned to their owner; org tasks
		// only to members of the same organization.
		if t.Personal() {
			if assignee.ID != t.UserID {
				return repository.ErrNotFound
			}
		} else if assignee.OrganizationID == nil || *assignee.OrganizationID != *t.OrganizationID {
			return repository.ErrNotFound
		}
	}
	return nil
}

func validTaskStatus(status models.TaskStatus) error {
	switch status {
	case models.TaskStatusTodo, models.TaskStatusInProgress, models.TaskStatusDone:
		return nil
	default:
		return ErrInvalidTaskStatus
	}
}

func validTaskPriority(priority models.TaskPriority) error {
	switch priority {
	case models.TaskPriorityLow, models.TaskPriorityMedium, models.TaskPriorityHigh:
		return nil
	default:
		return ErrInvalidTaskPriority
	}
}
