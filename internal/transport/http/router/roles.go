package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/service"
)

// MountRoleRoutes 角色目录接口；与用户目录同构
func MountRoleRoutes(g *gin.RouterGroup, svc *service.RoleService) {
	ez := New(g)

	RegisterAction(ez, Action[service.CreateRoleInput, *domain.RoleView]{
		Method: http.MethodPost, Path: "", Binder: BindJSON, Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.CreateRoleInput) (*domain.RoleView, error) {
			return svc.Create(c.Request.Context(), *in, actor(c))
		},
	})

	RegisterAction(ez, Action[domain.ListQuery, *domain.Page[domain.RoleView]]{
		Method: http.MethodGet, Path: "", Binder: BindQuery,
		Handler: func(c *gin.Context, in *domain.ListQuery) (*domain.Page[domain.RoleView], error) {
			return svc.List(c.Request.Context(), *in)
		},
	})

	RegisterAction(ez, Action[struct{}, []domain.RoleView]{
		Method: http.MethodGet, Path: "/active", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.RoleView, error) {
			return svc.ListActive(c.Request.Context())
		},
	})

	RegisterAction(ez, Action[struct{}, []domain.RoleView]{
		Method: http.MethodGet, Path: "/deleted", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.RoleView, error) {
			return svc.ListDeleted(c.Request.Context())
		},
	})

	RegisterAction(ez, Action[struct{}, *domain.RoleView]{
		Method: http.MethodGet, Path: "/:id", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.RoleView, error) {
			return svc.FindByID(c.Request.Context(), c.Param("id"))
		},
	})

	RegisterAction(ez, Action[service.UpdateRoleInput, *domain.RoleView]{
		Method: http.MethodPatch, Path: "/:id", Binder: BindJSON,
		Handler: func(c *gin.Context, in *service.UpdateRoleInput) (*domain.RoleView, error) {
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

	RegisterAction(ez, Action[struct{}, *domain.RoleView]{
		Method: http.MethodPatch, Path: "/:id/activate", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.RoleView, error) {
			return svc.Activate(c.Request.Context(), c.Param("id"), actor(c))
		},
	})

	RegisterAction(ez, Action[struct{}, *domain.RoleView]{
		Method: http.MethodPatch, Path: "/:id/deactivate", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.RoleView, error) {
			return svc.Deactivate(c.Request.Context(), c.Param("id"), actor(c))
		},
	})

	RegisterAction(ez, Action[struct{}, *domain.RoleView]{
		Method: http.MethodPatch, Path: "/:id/restore", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.RoleView, error) {
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
