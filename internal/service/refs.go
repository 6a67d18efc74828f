package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository"
	apperrors "github.com/spec-kit/task-tracker/pkg/util/errorutil"
)

// EmployeeSummary is the expanded form of a task's assignee reference.
type EmployeeSummary struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Department domain.Department `json:"department"`
}

// UserSummary is the expanded form of a task's creator reference.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskWithRefs carries a task with its references expanded. A nil summary
// means the referenced record no longer resolves (deleted principal).
type TaskWithRefs struct {
	Task     domain.Task
	Assignee *EmployeeSummary
	Creator  *UserSummary
}

func employeeSummary(e domain.Employee) *EmployeeSummary {
	return &EmployeeSummary{ID: e.ID, Name: e.Name, Email: e.Email, Department: e.Department}
}

func userSummary(u domain.User) *UserSummary {
	return &UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

// expandTaskRefs resolves assignee and creator references with one batch
// fetch per collection, then merges. Avoids a query per task.
func expandTaskRefs(ctx context.Context, tasks []domain.Task, employees repository.EmployeeRepository, users repository.UserRepository) ([]TaskWithRefs, error) {
	employeeIDs := make([]string, 0, len(tasks))
	userIDs := make([]string, 0, len(tasks))
	seenEmployees := map[string]struct{}{}
	seenUsers := map[string]struct{}{}
	for _, task := range tasks {
		if _, ok := seenEmployees[task.AssignedTo]; !ok {
			seenEmployees[task.AssignedTo] = struct{}{}
			employeeIDs = append(employeeIDs, task.AssignedTo)
		}
		if _, ok := seenUsers[task.CreatedBy]; !ok {
			seenUsers[task.CreatedBy] = struct{}{}
			userIDs = append(userIDs, task.CreatedBy)
		}
	}

	employeesByID, err := employees.GetByIDs(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}
	usersByID, err := users.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	result := make([]TaskWithRefs, 0, len(tasks))
	for _, task := range tasks {
		expanded := TaskWithRefs{Task: task}
		if employee, ok := employeesByID[task.AssignedTo]; ok {
			expanded.Assignee = employeeSummary(employee)
		}
		if user, ok := usersByID[task.CreatedBy]; ok {
			expanded.Creator = userSummary(user)
		}
		result = append(result, expanded)
	}
	return result, nil
}

// validationError joins all failing field messages into one Validation error.
func validationError(messages []string) error {
	return apperrors.NewValidationError(strings.Join(messages, ", "), nil)
}

// validID reports whether the id is a well-formed record id. Malformed ids
// cannot name a record, so callers treat them as NotFound.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
