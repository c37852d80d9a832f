package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/service"
)

type assignmentStatusInput struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// MountAssignmentRoutes 用户-角色关联接口（挂在已鉴权分组，
// 与 /users、/roles 共用 :id 参数名避免路由树冲突）
func MountAssignmentRoutes(g *gin.RouterGroup, svc *service.AssignmentService) {
	ez := New(g)

	RegisterAction(ez, Action[service.AssignRoleInput, *domain.AssignmentView]{
		Method: http.MethodPost, Path: "/users/:id/roles", Binder: BindJSON, Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.AssignRoleInput) (*domain.AssignmentView, error) {
			return svc.Assign(c.Request.Context(), c.Param("id"), *in, actor(c))
		},
	})

	RegisterAction(ez, Action[struct{}, []domain.AssignmentView]{
		Method: http.MethodGet, Path: "/users/:id/roles", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.AssignmentView, error) {
			return svc.ListForUser(c.Request.Context(), c.Param("id"))
		},
	})

	RegisterAction(ez, Action[struct{}, []domain.AssignmentView]{
		Method: http.MethodGet, Path: "/roles/:id/users", Binder: BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.AssignmentView, error) {
			return svc.ListForRole(c.Request.Context(), c.Param("id"))
		},
	})

	RegisterAction(ez, Action[struct{}, struct{}]{
		Method: http.MethodDelete, Path: "/users/:id/roles/:roleId", Binder: BindNone, Status: http.StatusNoContent,
		Handler: func(c *gin.Context, _ *struct{}) (struct{}, error) {
			return struct{}{}, svc.Unassign(c.Request.Context(), c.Param("id"), c.Param("roleId"), actor(c))
		},
	})

	RegisterAction(ez, Action[assignmentStatusInput, *domain.AssignmentView]{
		Method: http.MethodPatch, Path: "/users/:id/roles/:roleId/status", Binder: BindJSON,
		Handler: func(c *gin.Context, in *assignmentStatusInput) (*domain.AssignmentView, error) {
			return svc.SetStatus(c.Request.Context(), c.Param("id"), c.Param("roleId"), *in.IsActive, actor(c))
		},
	})

	RegisterAction(ez, Action[service.BulkRoleIDsInput, *service.BulkAssignResult]{
		Method: http.MethodPost, Path: "/users/:id/roles/bulk", Binder: BindJSON, Status: http.StatusCreated,
		Handler: func(c *gin.Context, in *service.BulkRoleIDsInput) (*service.BulkAssignResult, error) {
			return svc.BulkAssign(c.Request.Context(), c.Param("id"), in.RoleIDs, actor(c))
		},
	})

	// 集合式解除按 204 返回；removedCount 只在服务层留痕（访问日志可见）
	RegisterAction(ez, Action[service.BulkRoleIDsInput, struct{}]{
		Method: http.MethodDelete, Path: "/users/:id/roles/bulk", Binder: BindJSON, Status: http.StatusNoContent,
		Handler: func(c *gin.Context, in *service.BulkRoleIDsInput) (struct{}, error) {
			_, err := svc.BulkUnassign(c.Request.Context(), c.Param("id"), in.RoleIDs, actor(c))
			return struct{}{}, err
		},
	})
}
