package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-rbac-service/internal/core/auth"
	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/repo"
	"go-rbac-service/internal/service"
	mdw "go-rbac-service/internal/transport/http/middleware"
)

// NewEngine 组装全部路由；rdb 可为 nil（仅影响登录限流）
func NewEngine(l *zap.Logger, db *gorm.DB, jwter *auth.JWTer, rdb *redis.Client) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 依赖装配
	users := repo.NewDirectory[domain.User](db)
	roles := repo.NewDirectory[domain.Role](db)
	mappings := repo.NewAssignmentRepo(db)

	userSvc := service.NewUserService(users, mappings)
	roleSvc := service.NewRoleService(roles, mappings)
	assignSvc := service.NewAssignmentService(mappings, users, roles)
	authSvc := service.NewAuthService(userSvc, jwter)

	api := r.Group("/api/v1")

	// 鉴权分组；目录/关联接口全部要求登录
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter))

	var loginGuard gin.HandlerFunc
	if rdb != nil {
		loginGuard = mdw.LoginRateLimit(rdb, 10, time.Minute)
	}
	MountAuthRoutes(api, authed, authSvc, loginGuard)

	MountUserRoutes(authed.Group("/users"), userSvc)
	MountRoleRoutes(authed.Group("/roles"), roleSvc)
	MountAssignmentRoutes(authed, assignSvc)

	return r
}
