package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/persistence"
	"github.com/spec-kit/task-tracker/internal/repository"
	apperrors "github.com/spec-kit/task-tracker/pkg/util/errorutil"
)

const dashboardCacheKey = "dashboard:summary"

// StatusBreakdown counts tasks per status value.
type StatusBreakdown struct {
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	OnHold     int `json:"onHold"`
}

// PriorityBreakdown counts tasks per priority value.
type PriorityBreakdown struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// EmployeeTaskStats summarizes one employee's workload.
type EmployeeTaskStats struct {
	EmployeeID     string  `json:"employeeId"`
	EmployeeName   string  `json:"employeeName"`
	TotalTasks     int     `json:"totalTasks"`
	CompletedTasks int     `json:"completedTasks"`
	CompletionRate float64 `json:"completionRate"`
}

// DashboardSummary aggregates completion and workload statistics computed
// from one consistent snapshot of both collections.
type DashboardSummary struct {
	TotalTasks        int                 `json:"totalTasks"`
	CompletedTasks    int                 `json:"completedTasks"`
	CompletionRate    float64             `json:"completionRate"`
	StatusBreakdown   StatusBreakdown     `json:"statusBreakdown"`
	PriorityBreakdown PriorityBreakdown   `json:"priorityBreakdown"`
	TotalEmployees    int                 `json:"totalEmployees"`
	ActiveEmployees   int                 `json:"activeEmployees"`
	TasksPerEmployee  []EmployeeTaskStats `json:"tasksPerEmployee"`
	OverdueTasks      int                 `json:"overdueTasks"`
}

// DashboardService computes read-only reporting over the full employee and
// task collections. Results are cached in Redis for a short TTL; cache
// failures degrade to recomputation.
type DashboardService struct {
	employees repository.EmployeeRepository
	tasks     repository.TaskRepository
	cache     *persistence.Redis
	cacheTTL  time.Duration
	logger    *zap.Logger
	clock     func() time.Time
}

// DashboardDependencies bundles requirements for the dashboard service.
type DashboardDependencies struct {
	EmployeeRepo repository.EmployeeRepository
	TaskRepo     repository.TaskRepository
	Cache        *persistence.Redis
	CacheTTL     time.Duration
	Logger       *zap.Logger
	Clock        func() time.Time
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		employees: deps.EmployeeRepo,
		tasks:     deps.TaskRepo,
		cache:     deps.Cache,
		cacheTTL:  deps.CacheTTL,
		logger:    logger,
		clock:     clock,
	}
}

// Summary returns the aggregate statistics, from cache when fresh.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	employees, err := s.employees.List(ctx, repository.EmployeeFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	summary := s.compute(employees, tasks)
	s.toCache(ctx, summary)
	return summary, nil
}

// InvalidateCache drops the cached summary; called on every mutation event.
func (s *DashboardService) InvalidateCache(ctx context.Context) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, dashboardCacheKey).Err(); err != nil {
		s.logger.Warn("dashboard cache invalidate failed", zap.Error(err))
	}
}

func (s *DashboardService) compute(employees []domain.Employee, tasks []domain.Task) *DashboardSummary {
	now := s.clock()
	summary := &DashboardSummary{
		TotalTasks:       len(tasks),
		TotalEmployees:   len(employees),
		TasksPerEmployee: make([]EmployeeTaskStats, 0, len(employees)),
	}

	totalByEmployee := make(map[string]int, len(employees))
	completedByEmployee := make(map[string]int, len(employees))

	for _, task := range tasks {
		switch task.Status {
		case domain.TaskStatusPending:
			summary.StatusBreakdown.Pending++
		case domain.TaskStatusInProgress:
			summary.StatusBreakdown.InProgress++
		case domain.TaskStatusCompleted:
			summary.StatusBreakdown.Completed++
		case domain.TaskStatusOnHold:
			summary.StatusBreakdown.OnHold++
		}
		switch task.Priority {
		case domain.TaskPriorityLow:
			summary.PriorityBreakdown.Low++
		case domain.TaskPriorityMedium:
			summary.PriorityBreakdown.Medium++
		case domain.TaskPriorityHigh:
			summary.PriorityBreakdown.High++
		case domain.TaskPriorityCritical:
			summary.PriorityBreakdown.Critical++
		}
		totalByEmployee[task.AssignedTo]++
		if task.Status == domain.TaskStatusCompleted {
			completedByEmployee[task.AssignedTo]++
		}
		if task.IsOverdue(now) {
			summary.OverdueTasks++
		}
	}

	summary.CompletedTasks = summary.StatusBreakdown.Completed
	summary.CompletionRate = completionRate(summary.CompletedTasks, summary.TotalTasks)

	for _, employee := range employees {
		if employee.Status == domain.EmployeeStatusActive {
			summary.ActiveEmployees++
		}
		total := totalByEmployee[employee.ID]
		completed := completedByEmployee[employee.ID]
		summary.TasksPerEmployee = append(summary.TasksPerEmployee, EmployeeTaskStats{
			EmployeeID:     employee.ID,
			EmployeeName:   employee.Name,
			TotalTasks:     total,
			CompletedTasks: completed,
			CompletionRate: completionRate(completed, total),
		})
	}

	return summary
}

// completionRate rounds to 2 decimal places and yields 0 on an empty
// denominator rather than NaN.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*10000) / 100
}

func (s *DashboardService) fromCache(ctx context.Context) *DashboardSummary {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return nil
	}
	payload, err := s.cache.Client.Get(ctx, dashboardCacheKey).Bytes()
	if err != nil {
		return nil
	}
	var summary DashboardSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		s.logger.Warn("dashboard cache decode failed", zap.Error(err))
		return nil
	}
	return &summary
}

func (s *DashboardService) toCache(ctx context.Context, summary *DashboardSummary) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, dashboardCacheKey, payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("dashboard cache store failed", zap.Error(err))
	}
}
