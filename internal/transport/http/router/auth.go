package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/service"
)

// MountAuthRoutes 认证接口；register/login 挂公开分组，profile 挂鉴权分组。
// loginGuard 为登录口的防爆破限流（无 Redis 时传 nil）
func MountAuthRoutes(pub, authed *gin.RouterGroup, svc *service.AuthService, loginGuard gin.HandlerFunc) {
	ez := New(pub)

	RegisterAction(ez, Action[service.CreateUserInput, *domain.UserView]{
		Method: http.MethodPost, Path: "/auth/register", Binder: BindJSON, Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CreateUserInput) (*domain.UserView, error) {
			return svc.Register(c.Request.Context(), *in)
		},
	})

	loginGroup := pub
	if loginGuard != nil {
		loginGroup = pub.Group("", loginGuard)
	}
	RegisterAction(New(loginGroup), Action[service.LoginInput, *service.LoginResult]{
		Method: http.MethodPost, Path: "/auth/login", Binder: BindJSON,
		Handler: func(c *gin.Context, in *service.LoginInput) (*service.LoginResult, error) {
			return svc.Login(c.Request.Context(), *in)
		},
	})

	RegisterAction(New(authed), Action[struct{}, *domain.UserView]{
		Method: http.MethodGet, Path: "/auth/profile", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.UserView, error) {
			return svc.Profile(c.Request.Context(), c.GetString("userId"))
		},
	})
}
