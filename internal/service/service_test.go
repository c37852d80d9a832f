package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-rbac-service/internal/core/auth"
	"go-rbac-service/internal/core/database"
	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/repo"
)

// 内存 sqlite；单连接避免 :memory: 在连接池下各见各的库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

type testEnv struct {
	db      *gorm.DB
	users   *UserService
	roles   *RoleService
	assigns *AssignmentService
	auth    *AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	userRepo := repo.NewDirectory[domain.User](db)
	roleRepo := repo.NewDirectory[domain.Role](db)
	mappings := repo.NewAssignmentRepo(db)

	userSvc := NewUserService(userRepo, mappings)
	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
	return &testEnv{
		db:      db,
		users:   userSvc,
		roles:   NewRoleService(roleRepo, mappings),
		assigns: NewAssignmentService(mappings, userRepo, roleRepo),
		auth:    NewAuthService(userSvc, jwter),
	}
}

func (e *testEnv) mustCreateUser(t *testing.T, username, email string) *domain.UserView {
	t.Helper()
	v, err := e.users.Create(context.Background(), CreateUserInput{
		Username:  username,
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
		Password:  "secret123",
	}, nil)
	require.NoError(t, err)
	return v
}

func (e *testEnv) mustCreateRole(t *testing.T, name string) *domain.RoleView {
	t.Helper()
	v, err := e.roles.Create(context.Background(), CreateRoleInput{Name: name}, nil)
	require.NoError(t, err)
	return v
}

func (e *testEnv) seedUsers(t *testing.T, n int) []*domain.UserView {
	t.Helper()
	out := make([]*domain.UserView, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, e.mustCreateUser(t,
			fmt.Sprintf("user%02d", i),
			fmt.Sprintf("user%02d@example.com", i)))
	}
	return out
}
