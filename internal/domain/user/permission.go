package user

type Permission string

const (
	// Kiosk
	PermissionPunchCreate Permission = "punch.create"
	PermissionFeedView    Permission = "feed.view"

	// Supervision
	PermissionPunchViewAll Permission = "punch.view_all"
	PermissionPunchCorrect Permission = "punch.correct"
	PermissionReportsView  Permission = "reports.view"

	// Administration
	PermissionPayrollExport  Permission = "payroll.export"
	PermissionEmployeeManage Permission = "employee.manage"
	PermissionUserManage     Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionPunchCreate,
		PermissionFeedView,
		PermissionPunchViewAll,
		PermissionPunchCorrect,
		PermissionReportsView,
		PermissionPayrollExport,
		PermissionEmployeeManage,
		PermissionUserManage,
	},
	RoleSupervisor: {
		PermissionPunchCreate,
		PermissionFeedView,
		PermissionPunchViewAll,
		PermissionPunchCorrect,
		PermissionReportsView,
	},
	RoleEmployee: {
		PermissionPunchCreate,
		PermissionFeedView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
