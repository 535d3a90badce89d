package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Can approve leave and view reports
	RoleEmployee Role = "employee" // Regular employee
)

type User struct {
	ID              string
	Name            string
	Email           string
	PasswordHash    *string
	Role            Role
	Department      string
	JoinDate        time.Time
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanApprove checks if the user can decide leave requests.
func (u *User) CanApprove() bool {
	return u.IsAdmin()
}

// ValidRole reports whether s is a known role value.
func ValidRole(s string) bool {
	return Role(s) == RoleAdmin || Role(s) == RoleEmployee
}
