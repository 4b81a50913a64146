package model

import "time"

// Roles recognised by the application.  Every registered account is a
// student unless it was explicitly created as an admin.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a row in the `users` table.  The password hash is never
// serialised into API responses.
type User struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserRef is the read-only projection of a user embedded in item and claim
// responses (the "populated" owner/claimant).  Only safe fields are exposed.
type UserRef struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ValidRole reports whether the given string is a recognised role name.
func ValidRole(r string) bool {
	return r == RoleStudent || r == RoleAdmin
}
