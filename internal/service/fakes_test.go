package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/events"
	"github.com/spec-kit/task-tracker/internal/repository"
	"github.com/spec-kit/task-tracker/pkg/util/errorutil"
)

// domainErr unwraps err into a DomainError or fails the test.
func domainErr(t *testing.T, err error) *errorutil.DomainError {
	t.Helper()
	require.Error(t, err)
	mapped := errorutil.ToDomainError(err)
	require.NotNil(t, mapped)
	return mapped
}

type fakeUserRepo struct {
	users     map[string]domain.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (f *fakeUserRepo) add(user domain.User) domain.User {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if user, ok := f.users[id]; ok {
		return &user, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Email, email) {
			found := user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByIDs(_ context.Context, ids []string) (map[string]domain.User, error) {
	result := make(map[string]domain.User, len(ids))
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			result[id] = user
		}
	}
	return result, nil
}

type fakeEmployeeRepo struct {
	employees map[string]domain.Employee
	order     []string
	deleteErr error
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: map[string]domain.Employee{}}
}

func (f *fakeEmployeeRepo) add(employee domain.Employee) domain.Employee {
	if employee.ID == "" {
		employee.ID = uuid.NewString()
	}
	f.employees[employee.ID] = employee
	f.order = append(f.order, employee.ID)
	return employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, employee *domain.Employee) error {
	for _, existing := range f.employees {
		if strings.EqualFold(existing.Email, employee.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	employee.ID = uuid.NewString()
	f.employees[employee.ID] = *employee
	f.order = append(f.order, employee.ID)
	return nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, employee *domain.Employee) error {
	if _, ok := f.employees[employee.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range f.employees {
		if id != employee.ID && strings.EqualFold(existing.Email, employee.Email) {
			return repository.ErrDuplicateEmail
		}
	}
	f.employees[employee.ID] = *employee
	return nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (*domain.Employee, error) {
	if employee, ok := f.employees[id]; ok {
		return &employee, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string) (*domain.Employee, error) {
	for _, employee := range f.employees {
		if strings.EqualFold(employee.Email, email) {
			found := employee
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEmployeeRepo) GetByIDs(_ context.Context, ids []string) (map[string]domain.Employee, error) {
	result := make(map[string]domain.Employee, len(ids))
	for _, id := range ids {
		if employee, ok := f.employees[id]; ok {
			result[id] = employee
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter repository.EmployeeFilter) ([]domain.Employee, error) {
	var result []domain.Employee
	for _, id := range f.order {
		employee := f.employees[id]
		if filter.Department != nil && employee.Department != *filter.Department {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.Search))
			if needle != "" &&
				!strings.Contains(strings.ToLower(employee.Name), needle) &&
				!strings.Contains(strings.ToLower(employee.Email), needle) {
				continue
			}
		}
		result = append(result, employee)
	}
	return result, nil
}

func (f *fakeEmployeeRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.employees[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.employees, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeTaskRepo struct {
	tasks     map[string]domain.Task
	order     []string
	createErr error
	updateErr error
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: map[string]domain.Task{}}
}

func (f *fakeTaskRepo) add(task domain.Task) domain.Task {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	f.tasks[task.ID] = task
	f.order = append(f.order, task.ID)
	return task
}

func (f *fakeTaskRepo) Create(_ context.Context, task *domain.Task) error {
	if f.createErr != nil {
		return f.createErr
	}
	task.ID = uuid.NewString()
	f.tasks[task.ID] = *task
	f.order = append(f.order, task.ID)
	return nil
}

func (f *fakeTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id string) (*domain.Task, error) {
	if task, ok := f.tasks[id]; ok {
		return &task, nil
	}
	return nil, repository.ErrNotFound
}

func (f *fakeTaskRepo) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	var result []domain.Task
	for _, id := range f.order {
		task := f.tasks[id]
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.AssignedTo != nil && task.AssignedTo != *filter.AssignedTo {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.Search != nil {
			needle := strings.ToLower(strings.TrimSpace(*filter.Search))
			if needle != "" &&
				!strings.Contains(strings.ToLower(task.Title), needle) &&
				!strings.Contains(strings.ToLower(task.Description), needle) {
				continue
			}
		}
		result = append(result, task)
	}
	return result, nil
}

func (f *fakeTaskRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	for i, existing := range f.order {
		if existing == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeTaskRepo) CountByAssignee(_ context.Context, employeeID string) (int64, error) {
	var count int64
	for _, task := range f.tasks {
		if task.AssignedTo == employeeID {
			count++
		}
	}
	return count, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	result := make([]events.EventType, 0, len(d.published))
	for _, event := range d.published {
		result = append(result, event.Type)
	}
	return result
}
