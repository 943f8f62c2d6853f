// Package rbac maps profile roles to named permissions. Admin access is a
// role attribute on the profile record, never an email allow-list.
package rbac

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

const (
	PermAdminStatsRead    = "admin.stats.read"
	PermAdminProfilesRead = "admin.profiles.read"
	PermAdminDormsRead    = "admin.dorms.read"
	PermAdminConsentsRead = "admin.consents.read"
)

var rolePermissions = map[string]map[string]bool{
	RoleAdmin: {
		PermAdminStatsRead:    true,
		PermAdminProfilesRead: true,
		PermAdminDormsRead:    true,
		PermAdminConsentsRead: true,
	},
	RoleModerator: {
		PermAdminDormsRead: true,
	},
}

// Can reports whether the given role grants the permission.
func Can(role, permission string) bool {
	return rolePermissions[role][permission]
}
