package workspace_context

import (
	"testing"

	"picktask-backend/internal/features/sessions"
	tasks_testing "picktask-backend/internal/features/tasks/testing"
	users_testing "picktask-backend/internal/features/users/testing"
	workspaces_testing "picktask-backend/internal/features/workspaces/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Resolve_WithoutMemberships_ClearsStaleSession(t *testing.T) {
	user := users_testing.CreateTestUser()
	staleWorkspace, staleProject := uuid.New(), uuid.New()

	resolved, err := GetContextResolver().Resolve(
		users_testing.GetTestUser(user.UserID),
		&ResolveInput{SessionWorkspaceID: &staleWorkspace, SessionProjectID: &staleProject},
	)
	require.NoError(t, err)

	assert.Nil(t, resolved.Workspace)
	assert.Nil(t, resolved.Project)
	assert.Empty(t, resolved.Workspaces)
	assert.Empty(t, resolved.SessionChanges.Set)
	assert.ElementsMatch(
		t,
		[]string{sessions.KeyCurrentWorkspaceID, sessions.KeyCurrentProjectID},
		resolved.SessionChanges.Delete,
	)
}

func Test_Resolve_PicksWorkspaceByPathThenSessionThenNewestMembership(t *testing.T) {
	owner := users_testing.CreateTestUser()
	user := users_testing.GetTestUser(owner.UserID)
	first := workspaces_testing.CreateTestWorkspace("First", owner)
	second := workspaces_testing.CreateTestWorkspace("Second", owner)
	foreign := workspaces_testing.CreateTestWorkspace("Foreign", users_testing.CreateTestUser())

	t.Run("path", func(t *testing.T) {
		resolved, err := GetContextResolver().Resolve(user, &ResolveInput{
			PathWorkspaceID:    &first.ID,
			SessionWorkspaceID: &second.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, resolved.Workspace.ID)
		assert.Equal(t, first.ID, resolved.SessionChanges.Set[sessions.KeyCurrentWorkspaceID])
	})

	t.Run("session when path is not a membership", func(t *testing.T) {
		resolved, err := GetContextResolver().Resolve(user, &ResolveInput{
			PathWorkspaceID:    &foreign.ID,
			SessionWorkspaceID: &first.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, first.ID, resolved.Workspace.ID)
		assert.True(t, resolved.SessionChanges.IsEmpty())
	})

	t.Run("newest membership when session is stale", func(t *testing.T) {
		resolved, err := GetContextResolver().Resolve(user, &ResolveInput{
			SessionWorkspaceID: &foreign.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, second.ID, resolved.Workspace.ID)
		assert.Equal(t, second.ID, resolved.SessionChanges.Set[sessions.KeyCurrentWorkspaceID])
		require.Len(t, resolved.Workspaces, 2)
		assert.Equal(t, second.ID, resolved.Workspaces[0].ID)
	})
}

func Test_Resolve_ProjectFollowsWorkspace(t *testing.T) {
	tasks_testing.SetupDependencies()
	owner := users_testing.CreateTestUser()
	user := users_testing.GetTestUser(owner.UserID)
	acme := workspaces_testing.CreateTestWorkspace("Acme", owner)
	globex := workspaces_testing.CreateTestWorkspace("Globex", owner)

	older := tasks_testing.CreateTestProject(acme.ID, owner, "Website")
	newer := tasks_testing.CreateTestProject(acme.ID, owner, "Mobile")
	globexProject := tasks_testing.CreateTestProject(globex.ID, owner, "Billing")

	t.Run("path project", func(t *testing.T) {
		resolved, err := GetContextResolver().Resolve(user, &ResolveInput{
			PathWorkspaceID: &acme.ID,
			PathProjectID:   &older.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, older.ID, resolved.Project.ID)
	})

	t.Run("session project of another workspace is replaced by newest project", func(t *testing.T) {
		resolved, err := GetContextResolver().Resolve(user, &ResolveInput{
			PathWorkspaceID:    &acme.ID,
			SessionWorkspaceID: &globex.ID,
			SessionProjectID:   &globexProject.ID,
		})
		require.NoError(t, err)

		assert.Equal(t, newer.ID, resolved.Project.ID)
		assert.Equal(t, newer.ID, resolved.SessionChanges.Set[sessions.KeyCurrentProjectID])
		assert.NotContains(t, resolved.SessionChanges.Delete, sessions.KeyCurrentProjectID)
	})

	t.Run("invalid session project is removed when workspace has no projects", func(t *testing.T) {
		empty := workspaces_testing.CreateTestWorkspace("Empty", owner)

		resolved, err := GetContextResolver().Resolve(user, &ResolveInput{
			PathWorkspaceID:  &empty.ID,
			SessionProjectID: &older.ID,
		})
		require.NoError(t, err)

		assert.Nil(t, resolved.Project)
		assert.Equal(t, []string{sessions.KeyCurrentProjectID}, resolved.SessionChanges.Delete)
	})
}

func Test_Resolve_IsIdempotentOnceChangesAreApplied(t *testing.T) {
	tasks_testing.SetupDependencies()
	owner := users_testing.CreateTestUser()
	user := users_testing.GetTestUser(owner.UserID)
	acme := workspaces_testing.CreateTestWorkspace("Acme", owner)
	workspaces_testing.CreateTestWorkspace("Globex", owner)
	tasks_testing.CreateTestProject(acme.ID, owner, "Website")
	stale := uuid.New()

	inputs := []*ResolveInput{
		{},
		{PathWorkspaceID: &acme.ID},
		{SessionWorkspaceID: &stale, SessionProjectID: &stale},
	}

	for _, input := range inputs {
		first, err := GetContextResolver().Resolve(user, input)
		require.NoError(t, err)

		next := applyToInput(input, &first.SessionChanges)
		second, err := GetContextResolver().Resolve(user, next)
		require.NoError(t, err)

		assert.True(t, second.SessionChanges.IsEmpty())
		assert.Equal(t, first.Workspace.ID, second.Workspace.ID)
		assert.Equal(t, projectID(first), projectID(second))
	}
}

func applyToInput(input *ResolveInput, changes *SessionChanges) *ResolveInput {
	next := *input

	for _, key := range changes.Delete {
		switch key {
		case sessions.KeyCurrentWorkspaceID:
			next.SessionWorkspaceID = nil
		case sessions.KeyCurrentProjectID:
			next.SessionProjectID = nil
		}
	}

	for key, value := range changes.Set {
		id := value
		switch key {
		case sessions.KeyCurrentWorkspaceID:
			next.SessionWorkspaceID = &id
		case sessions.KeyCurrentProjectID:
			next.SessionProjectID = &id
		}
	}

	return &next
}

func projectID(resolved *ResolvedContext) *uuid.UUID {
	if resolved.Project == nil {
		return nil
	}

	return &resolved.Project.ID
}
