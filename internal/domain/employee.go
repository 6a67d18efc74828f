package domain

import "time"

// Department enumerates organizational units.
type Department string

const (
	DepartmentEngineering Department = "Engineering"
	DepartmentSales       Department = "Sales"
	DepartmentMarketing   Department = "Marketing"
	DepartmentHR          Department = "HR"
	DepartmentOperations  Department = "Operations"
	DepartmentFinance     Department = "Finance"
)

// EmployeeRole enumerates job functions.
type EmployeeRole string

const (
	EmployeeRoleAdmin     EmployeeRole = "Admin"
	EmployeeRoleManager   EmployeeRole = "Manager"
	EmployeeRoleDeveloper EmployeeRole = "Developer"
	EmployeeRoleDesigner  EmployeeRole = "Designer"
	EmployeeRoleAnalyst   EmployeeRole = "Analyst"
	EmployeeRoleOther     EmployeeRole = "Other"
)

// EmployeeStatus enumerates personnel states.
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "Active"
	EmployeeStatusInactive EmployeeStatus = "Inactive"
	EmployeeStatusOnLeave  EmployeeStatus = "On Leave"
)

// Employee is a managed personnel record, the target of task assignment.
// Email is unique across all employees, case-insensitive.
type Employee struct {
	ID         string
	Name       string
	Email      string
	Department Department
	Role       EmployeeRole
	Status     EmployeeStatus
	JoinDate   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidDepartment reports enum membership.
func ValidDepartment(d Department) bool {
	switch d {
	case DepartmentEngineering, DepartmentSales, DepartmentMarketing,
		DepartmentHR, DepartmentOperations, DepartmentFinance:
		return true
	}
	return false
}

// ValidEmployeeRole reports enum membership.
func ValidEmployeeRole(r EmployeeRole) bool {
	switch r {
	case EmployeeRoleAdmin, EmployeeRoleManager, EmployeeRoleDeveloper,
		EmployeeRoleDesigner, EmployeeRoleAnalyst, EmployeeRoleOther:
		return true
	}
	return false
}

// ValidEmployeeStatus reports enum membership.
func ValidEmployeeStatus(s EmployeeStatus) bool {
	switch s {
	case EmployeeStatusActive, EmployeeStatusInactive, EmployeeStatusOnLeave:
		return true
	}
	return false
}

// Validate returns the list of failing field messages.
func (e *Employee) Validate() []string {
	var errs []string
	if e.Name == "" {
		errs = append(errs, "Please provide a name")
	} else if len(e.Name) > 60 {
		errs = append(errs, "Name cannot be more than 60 characters")
	}
	if e.Email == "" {
		errs = append(errs, "Please provide an email")
	} else if !ValidEmail(e.Email) {
		errs = append(errs, "Please provide a valid email")
	}
	if !ValidDepartment(e.Department) {
		errs = append(errs, "Please provide a department")
	}
	if !ValidEmployeeRole(e.Role) {
		errs = append(errs, "Please provide a role")
	}
	if !ValidEmployeeStatus(e.Status) {
		errs = append(errs, "Status must be Active, Inactive or On Leave")
	}
	return errs
}
