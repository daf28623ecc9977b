package user

import "time"

type Role string

const (
	RoleEmployee   Role = "employee"   // Shared kiosk login, punches only
	RoleSupervisor Role = "supervisor" // Reviews and corrects punches at one location
	RoleAdmin      Role = "admin"      // All locations, payroll and user management
)

func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleSupervisor, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         Role
	Active       bool
	LocationID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin checks if user is an admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor checks if user is a supervisor or admin
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor || u.Role == RoleAdmin
}

// CanAccessLocation reports whether the user may see data of locationID.
// Admins see every location, everyone else only their own.
func (u *User) CanAccessLocation(locationID string) bool {
	if u.IsAdmin() {
		return true
	}
	return u.LocationID != nil && *u.LocationID == locationID
}
