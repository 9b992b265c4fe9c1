// Package models defines server-side data models persisted in the database.
package models

import "time"

// Role is the privilege flag stored on a user record.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Satisfies reports whether a holder of r may access a route that requires
// the given role. Admin satisfies every requirement.
func (r Role) Satisfies(required Role) bool {
	switch r {
	case RoleAdmin:
		return required.Valid()
	case RoleUser:
		return required == RoleUser
	default:
		return false
	}
}

// User is the stored credential record. Email is unique; PasswordHash is a
// bcrypt hash and the plaintext password is never stored.
type User struct {
	ID               string
	Email            string
	Name             string
	Phone            string
	DateOfBirth      string
	Gender           string
	SubscriptionPlan string
	PasswordHash     []byte
	Role             Role
	CreatedAt        time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
