package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/service"
)

// BulkStatusInput bulk/status 请求体；isActive 必填（指针区分 false 与缺省）
type BulkStatusInput struct {
	IDs      []string `json:"ids"`
	IsActive *bool    `json:"isActive" binding:"required"`
}

// MountUserRoutes 用户目录接口（挂在已鉴权分组）
func MountUserRoutes(g *gin.RouterGroup, svc *service.UserService) {
	ez := New(g)

	RegisterAction(ez, Action[service.CreateUserInput, *domain.UserView]{
		Method: http.MethodPost, Path: "", Binder: BindJSON, Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CreateUserInput) (*domain.UserView, error) {
			return svc.Create(c.Request.Context(), *in, actor(c))
		},
	})

	RegisterAction(ez, Action[domain.ListQuery, *domain.Page[domain.UserView]]{
		Method: http.MethodGet, Path: "", Binder: BindQuery,
		Handler: func(c *gin.Context, in *domain.ListQuery) (*domain.Page[domain.UserView], error) {
			return svc.List(c.Request.Context(), *in)
		},
	})

	RegisterAction(ez, Action[struct{}, []domain.UserView]{
		Method: http.MethodGet, Path: "/active", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.UserView, error) {
			return svc.ListActive(c.Request.Context())
		},
	})

	RegisterAction(ez, Action[struct{}, []domain.UserView]{
		Method: http.MethodGet, Path: "/deleted", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.UserView, error) {
			return svc.ListDeleted(c.Request.Context())
		},
	})

	RegisterAction(ez, Action[struct{}, *domain.UserView]{
		Method: http.MethodGet, Path: "/:id", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.UserView, error) {
			return svc.FindByID(c.Request.Context(), c.Param("id"))
		},
	})

	RegisterAction(ez, Action[service.UpdateUserInput, *domain.UserView]{
		Method: http.MethodPatch, Path: "/:id", Binder: BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateUserInput) (*domain.UserView, error) {
			return svc.Update(c.Request.Context(), c.Param("id"), *in, actor(c))
		},
	})

	RegisterAction(ez, Action[struct{}, struct{}]{
		Method: http.MethodDelete, Path: "/:id", Binder: BindNone, Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			return struct{}{}, svc.SoftDelete(c.Request.Context(), c.Param("id"), actor(c))
		},
	})

	RegisterAction(ez, Action[struct{}, struct{}]{
		Method: http.MethodDelete, Path: "/:id/hard", Binder: BindNone, Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			return struct{}{}, svc.HardDelete(c.Request.Context(), c.Param("id"))
		},
	})

	RegisterAction(ez, Action[struct{}, *domain.UserView]{
		Method: http.MethodPatch, Path: "/:id/activate", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.UserView, error) {
			return svc.Activate(c.Request.Context(), c.Param("id"), actor(c))
		},
	})

	RegisterAction(ez, Action[struct{}, *domain.UserView]{
		Method: http.MethodPatch, Path: "/:id/deactivate", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.UserView, error) {
			return svc.Deactivate(c.Request.Context(), c.Param("id"), actor(c))
		},
	})

	RegisterAction(ez, Action[struct{}, *domain.UserView]{
		Method: http.MethodPatch, Path: "/:id/restore", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.UserView, error) {
			return svc.Restore(c.Request.Context(), c.Param("id"), actor(c))
		},
	})

	RegisterAction(ez, Action[BulkStatusInput, *service.BulkStatusResult]{
		Method: http.MethodPatch, Path: "/bulk/status", Binder: BindJSON,
		Handler: func(c *gin.Context, in *BulkStatusInput) (*service.BulkStatusResult, error) {
			return svc.BulkSetActive(c.Request.Context(), in.IDs, *in.IsActive, actor(c))
		},
	})
}
