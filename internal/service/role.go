package service

import (
	"context"
	"time"

	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/repo"
	"go-rbac-service/pkg/utils"
)

type CreateRoleInput struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	IsActive *bool  `json:"isActive"`
}

type UpdateRoleInput struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=50"`
	IsActive *bool   `json:"isActive"`
}

// RoleService 角色目录；唯一键为 name（未删除行内）
type RoleService struct {
	*Directory[domain.Role, domain.RoleView]
	roles *repo.Directory[domain.Role]
}

func NewRoleService(roles *repo.Directory[domain.Role], mappings *repo.AssignmentRepo) *RoleService {
	meta := EntityMeta{
		Name:       "role",
		SearchCols: []string{"name"},
		SortCols: map[string]string{
			"name": "name", "isActive": "is_active",
			"createdAt": "created_at", "updatedAt": "updated_at",
		},
	}
	d := newDirectory[domain.Role, domain.RoleView](roles, meta, mappings.HardDeleteByRole)
	return &RoleService{Directory: d, roles: roles}
}

func (s *RoleService) Create(ctx context.Context, in CreateRoleInput, actor *string) (*domain.RoleView, error) {
	if taken, err := s.roles.ExistsLive(ctx, "name = ?", in.Name); err != nil {
		return nil, err
	} else if taken {
		return nil, conflictf("role with this name already exists")
	}

	r := domain.Role{
		ID:        utils.NewID(),
		Name:      in.Name,
		IsActive:  true,
		CreatedBy: actor,
		UpdatedBy: actor,
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	if err := s.roles.Create(ctx, &r); err != nil {
		if repo.IsDuplicateKey(err) {
			return nil, conflictf("role with this name already exists")
		}
		return nil, err
	}
	return s.project(&r)
}

func (s *RoleService) Update(ctx context.Context, id string, in UpdateRoleInput, actor *string) (*domain.RoleView, error) {
	r, err := s.roles.FindLiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, notFoundf("role with ID %s", id)
	}

	if in.Name != nil && *in.Name != r.Name {
		if taken, err := s.roles.ExistsLive(ctx, "name = ? AND id <> ?", *in.Name, id); err != nil {
			return nil, err
		} else if taken {
			return nil, conflictf("role with this name already exists")
		}
		r.Name = *in.Name
	}
	if in.IsActive != nil {
		r.IsActive = *in.IsActive
	}
	r.UpdatedAt = time.Now()
	r.UpdatedBy = actor

	if err := s.roles.Save(ctx, r); err != nil {
		if repo.IsDuplicateKey(err) {
			return nil, conflictf("role with this name already exists")
		}
		return nil, err
	}
	return s.project(r)
}
