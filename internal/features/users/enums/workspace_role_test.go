package users_enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_WorkspaceRole_Permissions(t *testing.T) {
	tests := []struct {
		role        WorkspaceRole
		isValid     bool
		canManage   bool
		displayName string
	}{
		{WorkspaceRoleAdmin, true, true, "Admin"},
		{WorkspaceRoleMember, true, false, "Member"},
		{WorkspaceRole("owner"), false, false, "owner"},
		{WorkspaceRole(""), false, false, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.role.IsValid())
			assert.Equal(t, tt.canManage, tt.role.CanManageWorkspace())
			assert.Equal(t, tt.displayName, tt.role.DisplayName())
		})
	}
}
