package dto

import (
	"time"

	"github.com/spec-kit/task-tracker/internal/domain"
)

// CreateEmployeeRequest payload.
type CreateEmployeeRequest struct {
	Name       string                `json:"name"`
	Email      string                `json:"email"`
	Department domain.Department     `json:"department"`
	Role       domain.EmployeeRole   `json:"role"`
	Status     domain.EmployeeStatus `json:"status"`
	JoinDate   *time.Time            `json:"joinDate"`
}

// UpdateEmployeeRequest payload; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	Name       *string                `json:"name"`
	Email      *string                `json:"email"`
	Department *domain.Department     `json:"department"`
	Role       *domain.EmployeeRole   `json:"role"`
	Status     *domain.EmployeeStatus `json:"status"`
	JoinDate   *time.Time             `json:"joinDate"`
}

// EmployeeResponse response.
type EmployeeResponse struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Email      string                `json:"email"`
	Department domain.Department     `json:"department"`
	Role       domain.EmployeeRole   `json:"role"`
	Status     domain.EmployeeStatus `json:"status"`
	JoinDate   time.Time             `json:"joinDate"`
	CreatedAt  time.Time             `json:"createdAt"`
	UpdatedAt  time.Time             `json:"updatedAt"`
}

// EmployeeDetailResponse includes the tasks assigned to the employee.
type EmployeeDetailResponse struct {
	Employee EmployeeResponse `json:"employee"`
	Tasks    []TaskResponse   `json:"tasks"`
}

// NewEmployeeResponse maps the domain record.
func NewEmployeeResponse(employee *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         employee.ID,
		Name:       employee.Name,
		Email:      employee.Email,
		Department: employee.Department,
		Role:       employee.Role,
		Status:     employee.Status,
		JoinDate:   employee.JoinDate,
		CreatedAt:  employee.CreatedAt,
		UpdatedAt:  employee.UpdatedAt,
	}
}
