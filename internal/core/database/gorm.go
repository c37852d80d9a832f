package database

import (
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"go-rbac-service/internal/domain"
)

type Opts struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

var ErrUnsupportedDriver = gorm.ErrInvalidDB

func New(o Opts) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch o.Driver {
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dial = mysql.Open(ensureMySQLParams(o.DSN))
	default:
		return nil, ErrUnsupportedDriver
	}

	lvl := logger.Warn
	switch o.LogLevel {
	case "silent":
		lvl = logger.Silent
	case "error":
		lvl = logger.Error
	case "info":
		lvl = logger.Info
	}
	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.Default.LogMode(lvl),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	db = db.Session(&gorm.Session{
		PrepareStmt:            true, // 预编译缓存，提高 QPS
		CreateBatchSize:        200,  // 批量写（bulkAssign 用到）
		SkipDefaultTransaction: true, // 只在需要时手动开 Tx
	})
	return db, nil
}

// ensureMySQLParams 补齐 go-sql-driver 必需的默认参数
func ensureMySQLParams(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	if !strings.Contains(dsn, "parseTime=") {
		dsn += sep + "parseTime=true"
		sep = "&"
	}
	if !strings.Contains(dsn, "charset=") {
		dsn += sep + "charset=utf8mb4"
	}
	return dsn
}

// Migrate 建表 + 约束。
// 唯一性只约束未删除行：postgres/sqlite 用部分唯一索引落地；
// mysql 没有部分索引，唯一性完全依赖服务层同操作内的存在性预检。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Role{},
		&domain.UserRoleMapping{},
	); err != nil {
		return err
	}

	driver := db.Dialector.Name()
	if driver == "postgres" || driver == "sqlite" {
		stmts := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS uniq_users_username_live ON users (username) WHERE is_deleted = false`,
			`CREATE UNIQUE INDEX IF NOT EXISTS uniq_users_email_live ON users (email) WHERE is_deleted = false`,
			`CREATE UNIQUE INDEX IF NOT EXISTS uniq_master_role_name_live ON master_role (name) WHERE is_deleted = false`,
			`CREATE UNIQUE INDEX IF NOT EXISTS uniq_user_role_mapping_live ON user_role_mapping (user_id, role_id) WHERE is_deleted = false`,
		}
		for _, s := range stmts {
			if err := db.Exec(s).Error; err != nil {
				return err
			}
		}
	}
	if driver == "postgres" {
		// 硬删级联：代码里有显式事务级联，外键是双保险
		stmts := []string{
			`DO $$ BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_user_role_mapping_user') THEN
					ALTER TABLE user_role_mapping ADD CONSTRAINT fk_user_role_mapping_user
						FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE;
				END IF;
			END $$`,
			`DO $$ BEGIN
				IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'fk_user_role_mapping_role') THEN
					ALTER TABLE user_role_mapping ADD CONSTRAINT fk_user_role_mapping_role
						FOREIGN KEY (role_id) REFERENCES master_role (id) ON DELETE CASCADE;
				END IF;
			END $$`,
		}
		for _, s := range stmts {
			if err := db.Exec(s).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
