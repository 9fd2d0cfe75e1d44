package core

import (
	"strings"
)

// Role is the closed set of user roles. It is resolved once, when a user is loaded.
type Role int

const (
	// RoleUnknown is any role string that is not recognized. It permits nothing.
	RoleUnknown Role = iota

	// RoleClient is a library member who borrows books.
	RoleClient

	// RoleLibrarian is a staff member who reviews the loan history.
	RoleLibrarian
)

// ParseRole resolves a role string case-insensitively.
// Both the English names and the names used in the legacy record files are accepted.
func ParseRole(raw string) Role {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "client", "cliente":
		return RoleClient

	case "librarian", "bibliotecario", "bibliotecário":
		return RoleLibrarian

	default:
		return RoleUnknown
	}
}

// String returns the canonical name of the role.
func (r Role) String() string {
	switch r {
	case RoleClient:
		return "client"
	case RoleLibrarian:
		return "librarian"
	default:
		return "unknown"
	}
}

// User is a person who can log in. Users are immutable during a run.
type User struct {
	ID     UserIDString
	Name   string
	Role   Role
	Login  LoginString
	Secret string
}

// BuildUser creates a User, resolving the role string.
func BuildUser(id UserIDString, name string, role string, login LoginString, secret string) User {
	return User{
		ID:     id,
		Name:   name,
		Role:   ParseRole(role),
		Login:  login,
		Secret: secret,
	}
}
