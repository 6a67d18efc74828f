// Package authz holds the pure role-to-permission decision functions.
// Services consult these before every mutation; nothing here performs I/O.
package authz

import "github.com/spec-kit/task-tracker/internal/domain"

// IsAdmin reports whether the role carries administrative rights.
func IsAdmin(role domain.UserRole) bool {
	return role == domain.UserRoleAdmin
}

// CanCreateTask allows task creation for admins only.
func CanCreateTask(role domain.UserRole) bool {
	return IsAdmin(role)
}

// CanDeleteTask allows task deletion for admins only.
func CanDeleteTask(role domain.UserRole) bool {
	return IsAdmin(role)
}

// CanEditEmployee allows employee creation and updates for admins only.
func CanEditEmployee(role domain.UserRole) bool {
	return IsAdmin(role)
}

// CanDeleteEmployee allows employee deletion for admins only.
func CanDeleteEmployee(role domain.UserRole) bool {
	return IsAdmin(role)
}

// CanViewAllTasks allows unscoped task listing for admins only.
func CanViewAllTasks(role domain.UserRole) bool {
	return IsAdmin(role)
}

// CanViewOwnTasks holds for every authenticated principal.
func CanViewOwnTasks(role domain.UserRole) bool {
	return true
}
