package domain

import (
	"regexp"
	"time"
)

// UserRole governs permission to mutate employee and task records.
type UserRole string

const (
	UserRoleAdmin UserRole = "Admin"
	UserRoleUser  UserRole = "User"
)

// User is the authenticated principal. A principal creates tasks but need
// not itself be an employee record.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// ValidEmail reports whether the address matches the accepted format.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidUserRole reports enum membership.
func ValidUserRole(role UserRole) bool {
	return role == UserRoleAdmin || role == UserRoleUser
}

// Validate returns the list of failing field messages, empty when the
// record satisfies all schema constraints.
func (u *User) Validate() []string {
	var errs []string
	if u.Name == "" {
		errs = append(errs, "Please provide a name")
	} else if len(u.Name) > 60 {
		errs = append(errs, "Name cannot be more than 60 characters")
	}
	if u.Email == "" {
		errs = append(errs, "Please provide an email")
	} else if !ValidEmail(u.Email) {
		errs = append(errs, "Please provide a valid email")
	}
	if !ValidUserRole(u.Role) {
		errs = append(errs, "Role must be Admin or User")
	}
	return errs
}
