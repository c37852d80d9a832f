package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.auth.Register(ctx, CreateUserInput{
		Username: "jdoe", FirstName: "John", Email: "jdoe@example.com", Password: "secret123",
	})
	require.NoError(t, err)

	res, err := env.auth.Login(ctx, LoginInput{Email: "jdoe@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, created.ID, res.User.ID)

	profile, err := env.auth.Profile(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jdoe", profile.Username)
}

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u := env.mustCreateUser(t, "jdoe", "jdoe@example.com")

	// 密码错 / 用户不存在 → 同一个 Unauthorized，不泄露哪边错了
	_, err := env.auth.Login(ctx, LoginInput{Email: "jdoe@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.auth.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	// 软删用户不能登录
	require.NoError(t, env.users.SoftDelete(ctx, u.ID, nil))
	_, err = env.auth.Login(ctx, LoginInput{Email: "jdoe@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRegisterDuplicate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.mustCreateUser(t, "jdoe", "jdoe@example.com")

	_, err := env.auth.Register(ctx, CreateUserInput{
		Username: "jdoe", FirstName: "John", Email: "other@example.com", Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrConflict)
}
