package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-rbac-service/internal/domain"
	"go-rbac-service/pkg/utils"
)

func TestUserCreateAndFind(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	dob := "1990-04-15"
	created, err := env.users.Create(ctx, CreateUserInput{
		Username:    "jdoe",
		FirstName:   "John",
		LastName:    "Doe",
		Email:       "jdoe@example.com",
		Password:    "secret123",
		DateOfBirth: dob,
	}, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive) // 默认激活
	require.NotNil(t, created.DateOfBirth)
	assert.Equal(t, "1990-04-15", created.DateOfBirth.Format("2006-01-02"))

	got, err := env.users.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", got.Username)
	assert.Equal(t, "jdoe@example.com", got.Email)

	// 散列入库，明文不落地
	u, err := env.users.FindByEmail(ctx, "jdoe@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, utils.CheckPassword("secret123", u.Password))
}

func TestUserCreateBadDate(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.users.Create(context.Background(), CreateUserInput{
		Username: "jdoe", FirstName: "John", Email: "jdoe@example.com",
		Password: "secret123", DateOfBirth: "15/04/1990",
	}, nil)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestUserCreateDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "jdoe", "jdoe@example.com")

	_, err := env.users.Create(ctx, CreateUserInput{
		Username: "jdoe", FirstName: "Jane", Email: "jane@example.com", Password: "secret123",
	}, nil)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = env.users.Create(ctx, CreateUserInput{
		Username: "jane", FirstName: "Jane", Email: "jdoe@example.com", Password: "secret123",
	}, nil)
	assert.ErrorIs(t, err, ErrConflict)

	// 冲突的 create 不落行
	var n int64
	require.NoError(t, env.db.Model(&domain.User{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestUserSoftDeleteRestore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustCreateUser(t, "jdoe", "jdoe@example.com")

	require.NoError(t, env.users.SoftDelete(ctx, u.ID, nil))

	// 软删后常规读不可见
	_, err := env.users.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// 再删同一行 → NotFound
	assert.ErrorIs(t, env.users.SoftDelete(ctx, u.ID, nil), ErrNotFound)

	deleted, err := env.users.ListDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, u.ID, deleted[0].ID)

	restored, err := env.users.Restore(ctx, u.ID, nil)
	require.NoError(t, err)
	assert.False(t, restored.IsDeleted)

	// 恢复后可见，restore 不可重复
	_, err = env.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	_, err = env.users.Restore(ctx, u.ID, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserSoftDeleteFreesUniqueKeys(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustCreateUser(t, "jdoe", "jdoe@example.com")
	require.NoError(t, env.users.SoftDelete(ctx, u.ID, nil))

	// 软删行不占用 username/email
	env.mustCreateUser(t, "jdoe", "jdoe@example.com")
}

func TestUserUpdate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := env.mustCreateUser(t, "alice", "alice@example.com")
	b := env.mustCreateUser(t, "bob", "bob@example.com")

	// 改到他人在用的 username → 409
	taken := "bob"
	_, err := env.users.Update(ctx, a.ID, UpdateUserInput{Username: &taken}, nil)
	assert.ErrorIs(t, err, ErrConflict)

	// 软删 bob 后同名可用：唯一性只看未删除行
	require.NoError(t, env.users.SoftDelete(ctx, b.ID, nil))
	got, err := env.users.Update(ctx, a.ID, UpdateUserInput{Username: &taken}, nil)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)

	// 部分更新：未给的字段不动
	first := "Alicia"
	got, err = env.users.Update(ctx, a.ID, UpdateUserInput{FirstName: &first}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", got.FirstName)
	assert.Equal(t, "bob", got.Username)

	_, err = env.users.Update(ctx, "no-such-id", UpdateUserInput{FirstName: &first}, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserListSearchAndPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.seedUsers(t, 15)

	// 搜索命中任一可搜列
	page, err := env.users.List(ctx, domain.ListQuery{Search: "user03"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "user03", page.Items[0].Username)

	// email 列同样可命中
	page, err = env.users.List(ctx, domain.ListQuery{Search: "user07@example"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	// 分页元数据
	page, err = env.users.List(ctx, domain.ListQuery{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.EqualValues(t, 15, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.TotalPages)

	// 超界页码返回空集，不报错
	page, err = env.users.List(ctx, domain.ListQuery{Page: 9, Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.EqualValues(t, 15, page.Total)
}

func TestUserListFilterAndSort(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := env.seedUsers(t, 3)
	_, err := env.users.Deactivate(ctx, users[1].ID, nil)
	require.NoError(t, err)

	active := true
	page, err := env.users.List(ctx, domain.ListQuery{IsActive: &active})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)

	inactive := false
	page, err = env.users.List(ctx, domain.ListQuery{IsActive: &inactive})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, users[1].ID, page.Items[0].ID)

	// 白名单内排序字段生效
	page, err = env.users.List(ctx, domain.ListQuery{SortBy: "username", SortOrder: "ASC"})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "user00", page.Items[0].Username)

	// 白名单外字段回退 created_at，不报错
	_, err = env.users.List(ctx, domain.ListQuery{SortBy: "password; DROP TABLE users"})
	require.NoError(t, err)
}

func TestUserActivateDeactivate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustCreateUser(t, "jdoe", "jdoe@example.com")

	got, err := env.users.Deactivate(ctx, u.ID, nil)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	activeList, err := env.users.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, activeList)

	got, err = env.users.Activate(ctx, u.ID, nil)
	require.NoError(t, err)
	assert.True(t, got.IsActive)

	_, err = env.users.Activate(ctx, "no-such-id", nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserBulkSetActive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	users := env.seedUsers(t, 3)

	_, err := env.users.BulkSetActive(ctx, nil, false, nil)
	assert.ErrorIs(t, err, ErrBadRequest)

	// 未命中 id 静默跳过
	res, err := env.users.BulkSetActive(ctx, []string{users[0].ID, users[1].ID, "no-such-id"}, false, nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.EqualValues(t, 2, res.UpdatedCount)

	res, err = env.users.BulkSetActive(ctx, []string{"no-such-id"}, true, nil)
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.UpdatedCount)
}

func TestUserHardDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustCreateUser(t, "jdoe", "jdoe@example.com")

	require.NoError(t, env.users.HardDelete(ctx, u.ID))

	var n int64
	require.NoError(t, env.db.Model(&domain.User{}).Count(&n).Error)
	assert.EqualValues(t, 0, n)

	// 行已不存在
	assert.ErrorIs(t, env.users.HardDelete(ctx, u.ID), ErrNotFound)

	// 软删行同样可物理删除
	u2 := env.mustCreateUser(t, "jane", "jane@example.com")
	require.NoError(t, env.users.SoftDelete(ctx, u2.ID, nil))
	require.NoError(t, env.users.HardDelete(ctx, u2.ID))
}

func TestUserAuditStamps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	actor := "admin-id"

	created, err := env.users.Create(ctx, CreateUserInput{
		Username: "jdoe", FirstName: "John", Email: "jdoe@example.com", Password: "secret123",
	}, &actor)
	require.NoError(t, err)
	require.NotNil(t, created.CreatedBy)
	assert.Equal(t, actor, *created.CreatedBy)

	other := "other-admin"
	first := "Johnny"
	got, err := env.users.Update(ctx, created.ID, UpdateUserInput{FirstName: &first}, &other)
	require.NoError(t, err)
	require.NotNil(t, got.UpdatedBy)
	assert.Equal(t, other, *got.UpdatedBy)
	require.NotNil(t, got.CreatedBy)
	assert.Equal(t, actor, *got.CreatedBy)
}
