package session

import (
	"slices"

	"github.com/AntonStoeckl/library-lending-go/library/core"
)

// Operation is something a user can do in a session.
type Operation int

const (
	ViewOwnLoans Operation = iota + 1
	RenewLoan
	ViewLoanHistory
	ViewBooks
	ViewAbout
)

var permissions = map[core.Role][]Operation{
	core.RoleClient:    {ViewOwnLoans, RenewLoan, ViewBooks, ViewAbout},
	core.RoleLibrarian: {ViewLoanHistory, ViewBooks, ViewAbout},
}

// UserDirectory looks up users by login.
type UserDirectory interface {
	FindUserByLogin(login core.LoginString) (core.User, bool)
}

// Session is an authenticated user.
type Session struct {
	User core.User
}

// Permits reports whether the session's role allows the operation.
func (s Session) Permits(operation Operation) bool {
	return slices.Contains(permissions[s.User.Role], operation)
}

// Role returns the role of the session's user.
func (s Session) Role() core.Role {
	return s.User.Role
}

// Service authenticates users.
type Service struct {
	users         UserDirectory
	authenticator Authenticator
}

// NewService creates a new Service.
func NewService(users UserDirectory, authenticator Authenticator) Service {
	return Service{
		users:         users,
		authenticator: authenticator,
	}
}

// Authenticate opens a session if the login exists (exact, case-sensitive match) and the secret is correct.
func (s Service) Authenticate(login core.LoginString, secret string) (Session, bool) {
	user, found := s.users.FindUserByLogin(login)
	if !found {
		return Session{}, false
	}

	if !s.authenticator.Verify(user.Secret, secret) {
		return Session{}, false
	}

	return Session{User: user}, true
}
