package fund

import (
	"fmt"
	"strings"
)

// Role is the capability of a session on the fund.
type Role string

const (
	// Guest can only look at the fund.
	Guest Role = "guest"
	// Admin can also create, edit and delete records.
	Admin Role = "admin"
)

// ParseRole parses a role name, case insensitive. The empty string is a guest.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "guest", "viewer":
		return Guest, nil
	case "admin", "administrator":
		return Admin, nil
	default:
		return Guest, fmt.Errorf("unknown role %q", s)
	}
}

// User is the active session.
type User struct {
	Role Role
	Name string
}

// NewUser returns a user with the display name matching its role.
func NewUser(role Role) User {
	if role == Admin {
		return User{Role: Admin, Name: "Administrator"}
	}
	return User{Role: Guest, Name: "Viewer"}
}

// CanEdit reports whether the user may mutate the fund.
func (u User) CanEdit() bool { return u.Role == Admin }
