package user

// Caller is the authenticated user behind a request.
type Caller struct {
	UserID     string
	Role       Role
	LocationID *string
}

func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanAccessLocation reports whether the caller may see data of locationID.
func (c Caller) CanAccessLocation(locationID string) bool {
	if c.IsAdmin() {
		return true
	}
	return c.LocationID != nil && *c.LocationID == locationID
}

// ScopeLocation returns the location the caller is limited to, or nil for
// admins.
func (c Caller) ScopeLocation() *string {
	if c.IsAdmin() {
		return nil
	}
	return c.LocationID
}
