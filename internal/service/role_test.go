package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rbac-service/internal/domain"
)

func TestRoleCreateAndFind(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created := env.mustCreateRole(t, "admin")
	assert.True(t, created.IsActive)

	got, err := env.roles.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Name)

	// 显式 isActive=false 覆盖默认值
	inactive := false
	r, err := env.roles.Create(ctx, CreateRoleInput{Name: "viewer", IsActive: &inactive}, nil)
	require.NoError(t, err)
	assert.False(t, r.IsActive)
}

func TestRoleCreateDuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateRole(t, "admin")

	_, err := env.roles.Create(ctx, CreateRoleInput{Name: "admin"}, nil)
	assert.ErrorIs(t, err, ErrConflict)

	var n int64
	require.NoError(t, env.db.Model(&domain.Role{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestRoleUpdateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.mustCreateRole(t, "admin")
	env.mustCreateRole(t, "editor")

	taken := "editor"
	_, err := env.roles.Update(ctx, admin.ID, UpdateRoleInput{Name: &taken}, nil)
	assert.ErrorIs(t, err, ErrConflict)

	// 改回自己的名字不算冲突
	same := "admin"
	got, err := env.roles.Update(ctx, admin.ID, UpdateRoleInput{Name: &same}, nil)
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Name)

	fresh := "superadmin"
	got, err = env.roles.Update(ctx, admin.ID, UpdateRoleInput{Name: &fresh}, nil)
	require.NoError(t, err)
	assert.Equal(t, "superadmin", got.Name)
}

func TestRoleLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	r := env.mustCreateRole(t, "admin")

	require.NoError(t, env.roles.SoftDelete(ctx, r.ID, nil))
	_, err := env.roles.FindByID(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// 软删后 name 释放，可再建同名角色
	env.mustCreateRole(t, "admin")

	restored, err := env.roles.Restore(ctx, r.ID, nil)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)
}

func TestRoleListSearch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateRole(t, "admin")
	env.mustCreateRole(t, "editor")
	env.mustCreateRole(t, "viewer")

	page, err := env.roles.List(ctx, domain.ListQuery{Search: "edit"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "editor", page.Items[0].Name)

	page, err = env.roles.List(ctx, domain.ListQuery{SortBy: "name", SortOrder: "ASC"})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "admin", page.Items[0].Name)
	assert.Equal(t, "viewer", page.Items[2].Name)
}

func TestRoleBulkSetActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.mustCreateRole(t, "admin")
	b := env.mustCreateRole(t, "editor")

	res, err := env.roles.BulkSetActive(ctx, []string{a.ID, b.ID}, false, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.UpdatedCount)

	activeList, err := env.roles.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, activeList)
}
