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

// EmployeeService coordinates the employee directory: role-gated CRUD with
// email uniqueness and delete protection while tasks reference the record.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	tasks      repository.TaskRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	clock      func() time.Time
}

// EmployeeDependencies bundles requirements for the employee service.
type EmployeeDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	TaskRepo     repository.TaskRepository
	UserRepo     repository.UserRepository
	Dispatcher   events.Dispatcher
	Clock        func() time.Time
}

// EmployeeListFilter describes directory listing filters.
type EmployeeListFilter struct {
	Department *domain.Department
	Search     *string
}

// EmployeeCreateInput describes employee creation payload.
type EmployeeCreateInput struct {
	Name       string
	Email      string
	Department domain.Department
	Role       domain.EmployeeRole
	Status     domain.EmployeeStatus
	JoinDate   *time.Time
}

// EmployeeUpdateInput describes a partial update; nil fields stay unchanged.
type EmployeeUpdateInput struct {
	Name       *string
	Email      *string
	Department *domain.Department
	Role       *domain.EmployeeRole
	Status     *domain.EmployeeStatus
	JoinDate   *time.Time
}

// NewEmployeeService constructs the service.
func NewEmployeeService(deps EmployeeDependencies) *EmployeeService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &EmployeeService{
		employees:  deps.EmployeeRepo,
		tasks:      deps.TaskRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
		clock:      clock,
	}
}

// List returns employees, most-recently-created first. Search matches name
// or email case-insensitively.
func (s *EmployeeService) List(ctx context.Context, filter EmployeeListFilter) ([]domain.Employee, error) {
	employees, err := s.employees.List(ctx, repository.EmployeeFilter{
		Department: filter.Department,
		Search:     filter.Search,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if employees == nil {
		employees = []domain.Employee{}
	}
	return employees, nil
}

// Get returns an employee together with the tasks assigned to it, each with
// its references expanded.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, []TaskWithRefs, error) {
	if !validID(id) {
		return nil, nil, apperrors.NewNotFoundMessage("Employee not found")
	}
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundMessage("Employee not found")
		}
		return nil, nil, apperrors.MapError(err)
	}

	tasks, err := s.tasks.List(ctx, repository.TaskFilter{AssignedTo: &id})
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	expanded, err := expandTaskRefs(ctx, tasks, s.employees, s.users)
	if err != nil {
		return nil, nil, apperrors.MapError(err)
	}
	return employee, expanded, nil
}

// Create inserts a new employee. Admin only.
func (s *EmployeeService) Create(ctx context.Context, actor *domain.User, input EmployeeCreateInput) (*domain.Employee, error) {
	if !authz.CanEditEmployee(actor.Role) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.NewValidationError("Name and email are required", nil)
	}

	employee := &domain.Employee{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.ToLower(strings.TrimSpace(input.Email)),
		Department: input.Department,
		Role:       input.Role,
		Status:     input.Status,
		JoinDate:   s.clock(),
	}
	if employee.Department == "" {
		employee.Department = domain.DepartmentEngineering
	}
	if employee.Role == "" {
		employee.Role = domain.EmployeeRoleDeveloper
	}
	if employee.Status == "" {
		employee.Status = domain.EmployeeStatusActive
	}
	if input.JoinDate != nil {
		employee.JoinDate = *input.JoinDate
	}

	if msgs := employee.Validate(); len(msgs) > 0 {
		return nil, validationError(msgs)
	}

	if _, err := s.employees.GetByEmail(ctx, employee.Email); err == nil {
		return nil, apperrors.NewConflict("Employee with this email already exists", nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.MapError(err)
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		// the unique index closes the pre-check race window
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperrors.NewConflict("Employee with this email already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventEmployeeCreated, employee.ID, actor.ID)
	return employee, nil
}

// Update applies the supplied fields to an employee. Admin only; absent
// fields are left unchanged.
func (s *EmployeeService) Update(ctx context.Context, actor *domain.User, id string, input EmployeeUpdateInput) (*domain.Employee, error) {
	if !authz.CanEditEmployee(actor.Role) {
		return nil, apperrors.NewForbidden("admin role required")
	}
	if !validID(id) {
		return nil, apperrors.NewNotFoundMessage("Employee not found")
	}
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundMessage("Employee not found")
		}
		return nil, apperrors.MapError(err)
	}

	if input.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*input.Email))
		if newEmail != employee.Email {
			if _, err := s.employees.GetByEmail(ctx, newEmail); err == nil {
				return nil, apperrors.NewConflict("Email already in use", nil)
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, apperrors.MapError(err)
			}
		}
		employee.Email = newEmail
	}
	if input.Name != nil {
		employee.Name = strings.TrimSpace(*input.Name)
	}
	if input.Department != nil {
		employee.Department = *input.Department
	}
	if input.Role != nil {
		employee.Role = *input.Role
	}
	if input.Status != nil {
		employee.Status = *input.Status
	}
	if input.JoinDate != nil {
		employee.JoinDate = *input.JoinDate
	}

	if msgs := employee.Validate(); len(msgs) > 0 {
		return nil, validationError(msgs)
	}

	if err := s.employees.Update(ctx, employee); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, apperrors.NewConflict("Email already in use", nil)
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFoundMessage("Employee not found")
		}
		return nil, apperrors.MapError(err)
	}
	s.publish(ctx, events.EventEmployeeUpdated, employee.ID, actor.ID)
	return employee, nil
}

// Delete removes an employee. Admin only; blocked while any task still
// references the record.
func (s *EmployeeService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !authz.CanDeleteEmployee(actor.Role) {
		return apperrors.NewForbidden("admin role required")
	}
	if !validID(id) {
		return apperrors.NewNotFoundMessage("Employee not found")
	}
	if _, err := s.employees.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFoundMessage("Employee not found")
		}
		return apperrors.MapError(err)
	}

	assigned, err := s.tasks.CountByAssignee(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	if assigned > 0 {
		return apperrors.NewConflict("Cannot delete employee with assigned tasks", nil)
	}

	if err := s.employees.Delete(ctx, id); err != nil {
		switch {
		// the FK RESTRICT closes the count-then-delete race window
		case errors.Is(err, repository.ErrEmployeeReferenced):
			return apperrors.NewConflict("Cannot delete employee with assigned tasks", nil)
		case errors.Is(err, repository.ErrNotFound):
			return apperrors.NewNotFoundMessage("Employee not found")
		}
		return apperrors.MapError(err)
	}
	s.publish(ctx, events.EventEmployeeDeleted, id, actor.ID)
	return nil
}

func (s *EmployeeService) publish(ctx context.Context, eventType events.EventType, subjectID, actorID string) {
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
