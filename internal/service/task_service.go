package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/task-tracker/internal/authz"
	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/events"
	"github.com/spec-kit/task-tracker/internal/repository"
	apperrors "github.com/spec-kit/task-tracker/pkg/util/errorutil"
)

// TaskService coordinates the task board: CRUD with assignee existence
// checks and status-driven completion timestamping.
type TaskService struct {
	tasks      repository.TaskRepository
	employees  repository.EmployeeRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	clock      func() time.Time
}

// TaskDependencies bundles requirements for the task service.
type TaskDependencies struct {
	TaskRepo     repository.TaskRepository
	EmployeeRepo repository.EmployeeRepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
	Clock        func() time.Time
}

// TaskListFilter describes board listing filters.
type TaskListFilter struct {
	Status     *domain.TaskStatus
	AssignedTo *string
	Priority   *domain.TaskPriority
	Search     *string
}

// TaskCreateInput describes task creation payload.
type TaskCreateInput struct {
	Title       string
	Description string
	Status      domain.TaskStatus
	Priority    domain.TaskPriority
	AssignedTo  string
	DueDate     *time.Time
}

// TaskUpdateInput describes a partial update; nil fields stay unchanged.
type TaskUpdateInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	AssignedTo  *string
	DueDate     *time.Time
}

// NewTaskService constructs the service.
func NewTaskService(deps TaskDependencies) *TaskService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &TaskService{
		tasks:      deps.TaskRepo,
		employees:  deps.EmployeeRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		clock:      clock,
	}
}

// List returns tasks, most-recently-created first, references expanded.
// Search matches title or description case-insensitively.
func (s *TaskService) List(ctx context.Context, filter TaskListFilter) ([]TaskWithRefs, error) {
	// a malformed assignee id can never match a record
	if filter.AssignedTo != nil && !validID(*filter.AssignedTo) {
		return []TaskWithRefs{}, nil
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{
		Status:     filter.Status,
		AssignedTo: filter.AssignedTo,
		Priority:   filter.Priority,
		Search:     filter.Search,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	expanded, err := expandTaskRefs(ctx, tasks, s.employees, s.users)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return expanded, nil
}

// Get returns one task with references expanded.
func (s *TaskService) Get(ctx context.Context, id string) (*TaskWithRefs, error) {
	if !validID(id) {
		return nil, apperrors.NewNotFoundMessage("Task not found")
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundMessage("Task not found")
		}
		return nil, apperrors.MapError(err)
	}
	return s.expandOne(ctx, task)
}

// Create inserts a new task assigned to an existing employee. Admin only.
// The creating principal becomes the task's CreatedBy reference.
func (s *TaskService) Create(ctx context.Context, actor *domain.User, input TaskCreateInput) (*TaskWithRefs, error) {
	if !authz.CanCreateTask(actor.Role) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if strings.TrimSpace(input.Title) == "" || input.AssignedTo == "" {
		return nil, apperrors.NewValidationError("Title and assignedTo are required", nil)
	}
	if !validID(input.AssignedTo) {
		return nil, apperrors.NewNotFoundMessage("Assigned employee not found")
	}
	if _, err := s.employees.GetByID(ctx, input.AssignedTo); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundMessage("Assigned employee not found")
		}
		return nil, apperrors.MapError(err)
	}

	task := &domain.Task{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
		Priority:    input.Priority,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		CreatedBy:   actor.ID,
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}
	if task.Priority == "" {
		task.Priority = domain.TaskPriorityMedium
	}

	if msgs := task.Validate(); len(msgs) > 0 {
		return nil, validationError(msgs)
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		// the FK constraint closes the check-then-write race window
		if errors.Is(err, repository.ErrAssigneeMissing) {
			return nil, apperrors.NewNotFoundMessage("Assigned employee not found")
		}
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventTaskCreated, task.ID, actor.ID)
	return s.expandOne(ctx, task)
}

// Update applies the supplied fields to a task. Any authenticated principal
// may update; reassignment validates the new employee exists. Setting status
// to Completed stamps CompletedDate; moving it anywhere else clears it.
func (s *TaskService) Update(ctx context.Context, actor *domain.User, id string, input TaskUpdateInput) (*TaskWithRefs, error) {
	if !validID(id) {
		return nil, apperrors.NewNotFoundMessage("Task not found")
	}
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundMessage("Task not found")
		}
		return nil, apperrors.MapError(err)
	}

	if input.AssignedTo != nil && *input.AssignedTo != task.AssignedTo {
		if !validID(*input.AssignedTo) {
			return nil, apperrors.NewNotFoundMessage("Assigned employee not found")
		}
		if _, err := s.employees.GetByID(ctx, *input.AssignedTo); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.NewNotFoundMessage("Assigned employee not found")
			}
			return nil, apperrors.MapError(err)
		}
		task.AssignedTo = *input.AssignedTo
	}

	if input.Title != nil {
		task.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		task.Description = strings.TrimSpace(*input.Description)
	}
	if input.Status != nil {
		task.Status = *input.Status
		if task.Status == domain.TaskStatusCompleted {
			now := s.clock()
			task.CompletedDate = &now
		} else if task.CompletedDate != nil {
			task.CompletedDate = nil
		}
	}
	if input.Priority != nil {
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if msgs := task.Validate(); len(msgs) > 0 {
		return nil, validationError(msgs)
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		switch {
		case errors.Is(err, repository.ErrAssigneeMissing):
			return nil, apperrors.NewNotFoundMessage("Assigned employee not found")
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFoundMessage("Task not found")
		}
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventTaskUpdated, task.ID, actor.ID)
	return s.expandOne(ctx, task)
}

// Delete removes a task. Admin only; tasks are leaf records, so no
// referential checks apply.
func (s *TaskService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !authz.CanDeleteTask(actor.Role) {
		return apperrors.NewForbidden("admin role required")
	}
	if !validID(id) {
		return apperrors.NewNotFoundMessage("Task not found")
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundMessage("Task not found")
		}
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventTaskDeleted, id, actor.ID)
	return nil
}

func (s *TaskService) expandOne(ctx context.Context, task *domain.Task) (*TaskWithRefs, error) {
	expanded, err := expandTaskRefs(ctx, []domain.Task{*task}, s.employees, s.users)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return &expanded[0], nil
}

func (s *TaskService) publish(ctx context.Context, eventType events.EventType, subjectID, actorID string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		ActorID:   actorID,
		Timestamp: s.clock(),
	})
}
