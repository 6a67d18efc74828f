package domain

import "time"

// TaskStatus enumerates lifecycle states for tasks.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "Pending"
	TaskStatusInProgress TaskStatus = "In Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
	TaskStatusOnHold     TaskStatus = "On Hold"
)

// TaskPriority enumerates urgency.
type TaskPriority string

const (
	TaskPriorityLow      TaskPriority = "Low"
	TaskPriorityMedium   TaskPriority = "Medium"
	TaskPriorityHigh     TaskPriority = "High"
	TaskPriorityCritical TaskPriority = "Critical"
)

// Task is a unit of work assigned to exactly one employee. AssignedTo must
// reference an existing employee at creation and every reassignment.
// CompletedDate is set exactly when status transitions to Completed and
// cleared when status transitions away from it.
type Task struct {
	ID            string
	Title         string
	Description   string
	Status        TaskStatus
	Priority      TaskPriority
	AssignedTo    string
	DueDate       *time.Time
	CompletedDate *time.Time
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsOverdue reports whether the task is past due at the given instant.
// Completed tasks are never overdue.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskStatusCompleted {
		return false
	}
	if t.DueDate == nil {
		return false
	}
	return now.After(*t.DueDate)
}

// ValidTaskStatus reports enum membership.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusOnHold:
		return true
	}
	return false
}

// ValidTaskPriority reports enum membership.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh, TaskPriorityCritical:
		return true
	}
	return false
}

// Validate returns the list of failing field messages.
func (t *Task) Validate() []string {
	var errs []string
	if t.Title == "" {
		errs = append(errs, "Please provide a task title")
	} else if len(t.Title) > 100 {
		errs = append(errs, "Title cannot be more than 100 characters")
	}
	if len(t.Description) > 500 {
		errs = append(errs, "Description cannot be more than 500 characters")
	}
	if !ValidTaskStatus(t.Status) {
		errs = append(errs, "Status must be Pending, In Progress, Completed or On Hold")
	}
	if !ValidTaskPriority(t.Priority) {
		errs = append(errs, "Priority must be Low, Medium, High or Critical")
	}
	if t.AssignedTo == "" {
		errs = append(errs, "Please assign the task to an employee")
	}
	return errs
}
