package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/task-tracker/internal/api/dto"
	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/service"
	apperrors "github.com/spec-kit/task-tracker/pkg/util/errorutil"
)

// EmployeesHandler manages employee directory endpoints.
type EmployeesHandler struct {
	service *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{service: employeeService}
}

// List GET /api/employees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	filter := service.EmployeeListFilter{}
	if department := c.Query("department"); department != "" {
		d := domain.Department(department)
		filter.Department = &d
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	employees, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, dto.NewEmployeeResponse(&employees[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /api/employees/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	employee, tasks, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.EmployeeDetailResponse{
		Employee: dto.NewEmployeeResponse(employee),
		Tasks:    dto.NewTaskResponses(tasks),
	}})
}

// Create POST /api/employees.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	employee, err := h.service.Create(c.UserContext(), principal.User, service.EmployeeCreateInput{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Role:       req.Role,
		Status:     req.Status,
		JoinDate:   req.JoinDate,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Update PUT /api/employees/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	employee, err := h.service.Update(c.UserContext(), principal.User, c.Params("id"), service.EmployeeUpdateInput{
		Name:       req.Name,
		Email:      req.Email,
		Department: req.Department,
		Role:       req.Role,
		Status:     req.Status,
		JoinDate:   req.JoinDate,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewEmployeeResponse(employee)})
}

// Delete DELETE /api/employees/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	if err := h.service.Delete(c.UserContext(), principal.User, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"message": "Employee deleted successfully"}})
}
