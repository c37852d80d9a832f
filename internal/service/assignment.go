package service

import (
	"context"

	"github.com/jinzhu/copier"

	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/repo"
	"go-rbac-service/pkg/utils"
)

type AssignRoleInput struct {
	RoleID   string `json:"roleId" binding:"required,uuid"`
	IsActive *bool  `json:"isActive"`
}

type BulkRoleIDsInput struct {
	RoleIDs []string `json:"roleIds" binding:"omitempty,dive,uuid"`
}

type BulkAssignResult struct {
	Success       bool  `json:"success"`
	AssignedCount int64 `json:"assignedCount"`
}

type BulkUnassignResult struct {
	Success      bool  `json:"success"`
	RemovedCount int64 `json:"removedCount"`
}

// AssignmentService 用户-角色关联管理。
// 锚定实体（用户/角色）必须存在且未删除；(userId, roleId) 对
// 在未删除行内至多一条，软删的旧关联不阻塞重新分配。
type AssignmentService struct {
	mappings *repo.AssignmentRepo
	users    *repo.Directory[domain.User]
	roles    *repo.Directory[domain.Role]
}

func NewAssignmentService(mappings *repo.AssignmentRepo, users *repo.Directory[domain.User], roles *repo.Directory[domain.Role]) *AssignmentService {
	return &AssignmentService{mappings: mappings, users: users, roles: roles}
}

func (s *AssignmentService) Assign(ctx context.Context, userID string, in AssignRoleInput, actor *string) (*domain.AssignmentView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	role, err := s.roles.FindLiveByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, notFoundf("role with ID %s", in.RoleID)
	}

	existing, err := s.mappings.FindLive(ctx, userID, in.RoleID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, conflictf("user already has this role assigned")
	}

	m := domain.UserRoleMapping{
		ID:        utils.NewID(),
		UserID:    userID,
		RoleID:    in.RoleID,
		IsActive:  true,
		CreatedBy: actor,
		UpdatedBy: actor,
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	if err := s.mappings.Create(ctx, &m); err != nil {
		if repo.IsDuplicateKey(err) {
			return nil, conflictf("user already has this role assigned")
		}
		return nil, err
	}
	return s.view(&m, role.Name, "")
}

// ListForUser 某用户的关联，附角色名；用户不存在/已删则 404
func (s *AssignmentService) ListForUser(ctx context.Context, userID string) ([]domain.AssignmentView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.mappings.ListByUser(ctx, userID)
}

// ListForRole 某角色的关联，附角色名与用户名
func (s *AssignmentService) ListForRole(ctx context.Context, roleID string) ([]domain.AssignmentView, error) {
	role, err := s.roles.FindLiveByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, notFoundf("role with ID %s", roleID)
	}
	return s.mappings.ListByRole(ctx, roleID)
}

func (s *AssignmentService) Unassign(ctx context.Context, userID, roleID string, actor *string) error {
	ok, err := s.mappings.SoftDelete(ctx, userID, roleID, actor)
	if err != nil {
		return err
	}
	if !ok {
		return notFoundf("user-role assignment")
	}
	return nil
}

func (s *AssignmentService) SetStatus(ctx context.Context, userID, roleID string, active bool, actor *string) (*domain.AssignmentView, error) {
	ok, err := s.mappings.SetActive(ctx, userID, roleID, active, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundf("user-role assignment")
	}
	return s.mappings.FindViewLive(ctx, userID, roleID)
}

// BulkAssign 角色存在性为全有或全无校验；已有关联静默跳过，
// 只统计净新增条数（0 合法）
func (s *AssignmentService) BulkAssign(ctx context.Context, userID string, roleIDs []string, actor *string) (*BulkAssignResult, error) {
	if len(roleIDs) == 0 {
		return nil, badRequestf("no role IDs provided")
	}
	roleIDs = dedupe(roleIDs)

	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	found, err := s.roles.CountLive(ctx, "id IN ?", roleIDs)
	if err != nil {
		return nil, err
	}
	if found != int64(len(roleIDs)) {
		return nil, notFoundf("one or more roles")
	}

	existing, err := s.mappings.LiveRoleIDs(ctx, userID, roleIDs)
	if err != nil {
		return nil, err
	}
	assigned := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		assigned[id] = struct{}{}
	}

	var batch []domain.UserRoleMapping
	for _, roleID := range roleIDs {
		if _, ok := assigned[roleID]; ok {
			continue
		}
		batch = append(batch, domain.UserRoleMapping{
			ID:        utils.NewID(),
			UserID:    userID,
			RoleID:    roleID,
			IsActive:  true,
			CreatedBy: actor,
			UpdatedBy: actor,
		})
	}
	if err := s.mappings.CreateBatch(ctx, batch); err != nil {
		// 预检后被并发请求抢先写入同一关联时由唯一索引兜底
		if repo.IsDuplicateKey(err) {
			return nil, conflictf("user already has one of these roles assigned")
		}
		return nil, err
	}
	return &BulkAssignResult{Success: true, AssignedCount: int64(len(batch))}, nil
}

// BulkUnassign 集合式软删；未命中对不报错，只计数
func (s *AssignmentService) BulkUnassign(ctx context.Context, userID string, roleIDs []string, actor *string) (*BulkUnassignResult, error) {
	if len(roleIDs) == 0 {
		return nil, badRequestf("no role IDs provided")
	}
	n, err := s.mappings.BulkSoftDelete(ctx, userID, dedupe(roleIDs), actor)
	if err != nil {
		return nil, err
	}
	return &BulkUnassignResult{Success: true, RemovedCount: n}, nil
}

func (s *AssignmentService) requireUser(ctx context.Context, userID string) error {
	u, err := s.users.FindLiveByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return notFoundf("user with ID %s", userID)
	}
	return nil
}

func (s *AssignmentService) view(m *domain.UserRoleMapping, roleName, username string) (*domain.AssignmentView, error) {
	var v domain.AssignmentView
	if err := copier.Copy(&v, m); err != nil {
		return nil, err
	}
	v.RoleName = roleName
	v.Username = username
	return &v, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
