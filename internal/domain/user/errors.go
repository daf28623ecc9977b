package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUsernameExists           = errors.New("username already taken")
	ErrAdminPrivilegeRequired   = errors.New("admin privilege required")
	ErrSupervisorAccessRequired = errors.New("supervisor access required")
	ErrInsufficientPermissions  = errors.New("insufficient permissions")
	ErrLocationAccessDenied     = errors.New("you do not have access to this location")
)
