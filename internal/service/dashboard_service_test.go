package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/service"
)

func newDashboardFixture(now time.Time) (*service.DashboardService, *fakeEmployeeRepo, *fakeTaskRepo) {
	employees := newFakeEmployeeRepo()
	tasks := newFakeTaskRepo()
	svc := service.NewDashboardService(service.DashboardDependencies{
		EmployeeRepo: employees,
		TaskRepo:     tasks,
		Clock:        func() time.Time { return now },
	})
	return svc, employees, tasks
}

func dashEmployee(repo *fakeEmployeeRepo, name string, status domain.EmployeeStatus) domain.Employee {
	return repo.add(domain.Employee{
		Name:       name,
		Email:      name + "@example.com",
		Department: domain.DepartmentEngineering,
		Role:       domain.EmployeeRoleDeveloper,
		Status:     status,
	})
}

func dashTask(repo *fakeTaskRepo, assignee string, status domain.TaskStatus, priority domain.TaskPriority, due *time.Time) {
	repo.add(domain.Task{
		Title:      "work item",
		Status:     status,
		Priority:   priority,
		AssignedTo: assignee,
		DueDate:    due,
		CreatedBy:  adminActor.ID,
	})
}

func TestDashboardSummary(t *testing.T) {
	now := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	svc, employees, tasks := newDashboardFixture(now)

	alice := dashEmployee(employees, "alice", domain.EmployeeStatusActive)
	bob := dashEmployee(employees, "bob", domain.EmployeeStatusActive)
	carol := dashEmployee(employees, "carol", domain.EmployeeStatusInactive)
	dashEmployee(employees, "drew", domain.EmployeeStatusOnLeave)

	past := now.Add(-48 * time.Hour)
	future := now.Add(48 * time.Hour)

	// alice: 4 tasks, 2 completed; one open task past due
	dashTask(tasks, alice.ID, domain.TaskStatusCompleted, domain.TaskPriorityHigh, &past)
	dashTask(tasks, alice.ID, domain.TaskStatusCompleted, domain.TaskPriorityLow, nil)
	dashTask(tasks, alice.ID, domain.TaskStatusPending, domain.TaskPriorityMedium, &past)
	dashTask(tasks, alice.ID, domain.TaskStatusInProgress, domain.TaskPriorityMedium, &future)

	// bob: 4 tasks, 1 completed; one on-hold task past due
	dashTask(tasks, bob.ID, domain.TaskStatusCompleted, domain.TaskPriorityCritical, nil)
	dashTask(tasks, bob.ID, domain.TaskStatusPending, domain.TaskPriorityLow, nil)
	dashTask(tasks, bob.ID, domain.TaskStatusOnHold, domain.TaskPriorityMedium, &past)
	dashTask(tasks, bob.ID, domain.TaskStatusInProgress, domain.TaskPriorityHigh, nil)

	// carol: 2 open tasks
	dashTask(tasks, carol.ID, domain.TaskStatusPending, domain.TaskPriorityMedium, &future)
	dashTask(tasks, carol.ID, domain.TaskStatusInProgress, domain.TaskPriorityLow, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, summary.TotalTasks)
	assert.Equal(t, 3, summary.CompletedTasks)
	assert.InDelta(t, 30.0, summary.CompletionRate, 0.001)

	assert.Equal(t, 3, summary.StatusBreakdown.Pending)
	assert.Equal(t, 3, summary.StatusBreakdown.InProgress)
	assert.Equal(t, 3, summary.StatusBreakdown.Completed)
	assert.Equal(t, 1, summary.StatusBreakdown.OnHold)

	assert.Equal(t, 3, summary.PriorityBreakdown.Low)
	assert.Equal(t, 4, summary.PriorityBreakdown.Medium)
	assert.Equal(t, 2, summary.PriorityBreakdown.High)
	assert.Equal(t, 1, summary.PriorityBreakdown.Critical)

	assert.Equal(t, 4, summary.TotalEmployees)
	assert.Equal(t, 2, summary.ActiveEmployees)
	assert.Equal(t, 2, summary.OverdueTasks)

	require.Len(t, summary.TasksPerEmployee, 4)
	stats := map[string]service.EmployeeTaskStats{}
	for _, s := range summary.TasksPerEmployee {
		stats[s.EmployeeID] = s
	}

	require.Contains(t, stats, alice.ID)
	assert.Equal(t, 4, stats[alice.ID].TotalTasks)
	assert.Equal(t, 2, stats[alice.ID].CompletedTasks)
	assert.InDelta(t, 50.0, stats[alice.ID].CompletionRate, 0.001)

	require.Contains(t, stats, bob.ID)
	assert.Equal(t, 4, stats[bob.ID].TotalTasks)
	assert.Equal(t, 1, stats[bob.ID].CompletedTasks)
	assert.InDelta(t, 25.0, stats[bob.ID].CompletionRate, 0.001)

	require.Contains(t, stats, carol.ID)
	assert.Equal(t, 2, stats[carol.ID].TotalTasks)
	assert.Equal(t, 0, stats[carol.ID].CompletedTasks)
	assert.InDelta(t, 0.0, stats[carol.ID].CompletionRate, 0.001)
}

func TestDashboardSummaryEmpty(t *testing.T) {
	svc, _, _ := newDashboardFixture(time.Now())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Zero(t, summary.TotalTasks)
	assert.Zero(t, summary.CompletedTasks)
	assert.Zero(t, summary.CompletionRate)
	assert.Zero(t, summary.TotalEmployees)
	assert.Zero(t, summary.ActiveEmployees)
	assert.Zero(t, summary.OverdueTasks)
	assert.Empty(t, summary.TasksPerEmployee)
}

func TestDashboardCompletionRateRounding(t *testing.T) {
	now := time.Now()
	svc, employees, tasks := newDashboardFixture(now)

	employee := dashEmployee(employees, "alice", domain.EmployeeStatusActive)
	dashTask(tasks, employee.ID, domain.TaskStatusCompleted, domain.TaskPriorityLow, nil)
	dashTask(tasks, employee.ID, domain.TaskStatusPending, domain.TaskPriorityLow, nil)
	dashTask(tasks, employee.ID, domain.TaskStatusPending, domain.TaskPriorityLow, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	// 1/3 rounds to two decimal places
	assert.InDelta(t, 33.33, summary.CompletionRate, 0.001)
}
