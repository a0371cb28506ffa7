package users_enums

type WorkspaceRole string

const (
	WorkspaceRoleAdmin  WorkspaceRole = "admin"
	WorkspaceRoleMember WorkspaceRole = "member"
)

// IsValid validates the WorkspaceRole
func (r WorkspaceRole) IsValid() bool {
	switch r {
	case WorkspaceRoleAdmin, WorkspaceRoleMember:
		return true
	default:
		return false
	}
}

// CanManageWorkspace reports whether the role may perform admin-only
// operations. Unknown roles get no permissions.
func (r WorkspaceRole) CanManageWorkspace() bool {
	switch r {
	case WorkspaceRoleAdmin:
		return true
	case WorkspaceRoleMember:
		return false
	default:
		return false
	}
}

func (r WorkspaceRole) DisplayName() string {
	switch r {
	case WorkspaceRoleAdmin:
		return "Admin"
	case WorkspaceRoleMember:
		return "Member"
	default:
		return string(r)
	}
}
