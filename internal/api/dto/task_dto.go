package dto

import (
	"time"

	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/service"
)

// CreateTaskRequest payload.
type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	AssignedTo  string              `json:"assignedTo"`
	DueDate     *time.Time          `json:"dueDate"`
}

// UpdateTaskRequest payload; nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Status      *domain.TaskStatus   `json:"status"`
	Priority    *domain.TaskPriority `json:"priority"`
	AssignedTo  *string              `json:"assignedTo"`
	DueDate     *time.Time           `json:"dueDate"`
}

// TaskAssigneeResponse is the expanded assignee reference.
type TaskAssigneeResponse struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Email      string            `json:"email"`
	Department domain.Department `json:"department"`
}

// TaskCreatorResponse is the expanded creator reference.
type TaskCreatorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TaskResponse response with references expanded.
type TaskResponse struct {
	ID            string                `json:"id"`
	Title         string                `json:"title"`
	Description   string                `json:"description"`
	Status        domain.TaskStatus     `json:"status"`
	Priority      domain.TaskPriority   `json:"priority"`
	AssignedTo    *TaskAssigneeResponse `json:"assignedTo"`
	DueDate       *time.Time            `json:"dueDate"`
	CompletedDate *time.Time            `json:"completedDate"`
	CreatedBy     *TaskCreatorResponse  `json:"createdBy"`
	IsOverdue     bool                  `json:"isOverdue"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}

// NewTaskResponse maps an expanded task.
func NewTaskResponse(expanded *service.TaskWithRefs) TaskResponse {
	task := expanded.Task
	resp := TaskResponse{
		ID:            task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Status:        task.Status,
		Priority:      task.Priority,
		DueDate:       task.DueDate,
		CompletedDate: task.CompletedDate,
		IsOverdue:     task.IsOverdue(time.Now()),
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
	if expanded.Assignee != nil {
		resp.AssignedTo = &TaskAssigneeResponse{
			ID:         expanded.Assignee.ID,
			Name:       expanded.Assignee.Name,
			Email:      expanded.Assignee.Email,
			Department: expanded.Assignee.Department,
		}
	}
	if expanded.Creator != nil {
		resp.CreatedBy = &TaskCreatorResponse{
			ID:    expanded.Creator.ID,
			Name:  expanded.Creator.Name,
			Email: expanded.Creator.Email,
		}
	}
	return resp
}

// NewTaskResponses maps a list of expanded tasks.
func NewTaskResponses(expanded []service.TaskWithRefs) []TaskResponse {
	items := make([]TaskResponse, 0, len(expanded))
	for i := range expanded {
		items = append(items, NewTaskResponse(&expanded[i]))
	}
	return items
}
