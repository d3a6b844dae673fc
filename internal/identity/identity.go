// Package identity owns the users and auth collections: credential checks,
// the persisted session, password management, and the role/club scoping
// contract consumed by the roster and attendance services.
package identity

import (
	"errors"
	"fmt"
)

// Roles.
const (
	RoleAdmin       = "admin"
	RoleCoordinator = "coordinator"
)

// User is a stored login. Password hashes never leave the package; the
// json tag on PasswordHash only governs the store document, API responses
// use a separate view type.
type User struct {
	Username     string  `json:"username"`
	PasswordHash string  `json:"password"`
	Role         string  `json:"role"`
	Club         *string `json:"club"`
}

// Session is the persisted authentication state. It is derived entirely
// from a successful credential match and survives restarts until an
// explicit logout.
type Session struct {
	IsAuthenticated bool    `json:"isAuthenticated"`
	Username        *string `json:"username"`
	Role            *string `json:"role"`
	Club            *string `json:"club"`
}

// Anonymous is the unauthenticated default session.
func Anonymous() Session { return Session{} }

// Actor is the role/club lens for an authenticated caller.
type Actor struct {
	Username string
	Role     string
	Club     string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccessClub applies the scoping contract: admin reaches every club,
// a coordinator only their own.
func (a Actor) CanAccessClub(club string) bool {
	return a.IsAdmin() || a.Club == club
}

// Sentinel errors surfaced to callers; handlers map these to HTTP statuses.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("user not found")
	ErrForbidden          = errors.New("operation not permitted")
)

// ValidationError marks a rejected input. It is recoverable at the point
// of the action that caused it.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Validation formats a rejection.
func Validation(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
