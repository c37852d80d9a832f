package service

import (
	"context"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/repo"
)

// EntityMeta 目录服务的按实体配置：
// 错误文案名、可搜索列、sortBy 白名单（json 字段名 → 列名）
type EntityMeta struct {
	Name       string
	SearchCols []string
	SortCols   map[string]string
}

// BulkStatusResult bulkSetActive 聚合结果；未命中 id 静默跳过
type BulkStatusResult struct {
	Success      bool  `json:"success"`
	UpdatedCount int64 `json:"updatedCount"`
}

// Directory User / Role 共用的目录服务骨架。
// T 为存储实体，V 为对外投影；create/update 的唯一键语义留给外层实现。
type Directory[T any, V any] struct {
	repo    *repo.Directory[T]
	meta    EntityMeta
	cascade func(tx *gorm.DB, id string) error
}

func newDirectory[T any, V any](r *repo.Directory[T], meta EntityMeta, cascade func(tx *gorm.DB, id string) error) *Directory[T, V] {
	return &Directory[T, V]{repo: r, meta: meta, cascade: cascade}
}

func (s *Directory[T, V]) project(m *T) (*V, error) {
	var v V
	if err := copier.Copy(&v, m); err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *Directory[T, V]) projectAll(ms []T) ([]V, error) {
	views := make([]V, 0, len(ms))
	for i := range ms {
		v, err := s.project(&ms[i])
		if err != nil {
			return nil, err
		}
		views = append(views, *v)
	}
	return views, nil
}

// FindByID 仅命中未删除行
func (s *Directory[T, V]) FindByID(ctx context.Context, id string) (*V, error) {
	m, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, notFoundf("%s with ID %s", s.meta.Name, id)
	}
	return s.project(m)
}

// List 搜索 + 过滤 + 分页；total 为分页前命中总数
func (s *Directory[T, V]) List(ctx context.Context, q domain.ListQuery) (*domain.Page[V], error) {
	q.Normalize()
	sortCol, ok := s.meta.SortCols[q.SortBy]
	if !ok {
		sortCol = "created_at"
	}
	items, total, err := s.repo.List(ctx, q, s.meta.SearchCols, sortCol)
	if err != nil {
		return nil, err
	}
	views, err := s.projectAll(items)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return &domain.Page[V]{
		Items: views, Total: total,
		Page: q.Page, Limit: q.Limit, TotalPages: totalPages,
	}, nil
}

func (s *Directory[T, V]) ListActive(ctx context.Context) ([]V, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.projectAll(items)
}

func (s *Directory[T, V]) ListDeleted(ctx context.Context) ([]V, error) {
	items, err := s.repo.ListDeleted(ctx)
	if err != nil {
		return nil, err
	}
	return s.projectAll(items)
}

// SoftDelete 翻转 is_deleted；行保留，可 Restore
func (s *Directory[T, V]) SoftDelete(ctx context.Context, id string, actor *string) error {
	ok, err := s.repo.SoftDelete(ctx, id, actor)
	if err != nil {
		return err
	}
	if !ok {
		return notFoundf("%s with ID %s", s.meta.Name, id)
	}
	return nil
}

// HardDelete 物理删除，软删与否均可命中；级联清理从属关联
func (s *Directory[T, V]) HardDelete(ctx context.Context, id string) error {
	var cascade func(tx *gorm.DB) error
	if s.cascade != nil {
		cascade = func(tx *gorm.DB) error { return s.cascade(tx, id) }
	}
	affected, err := s.repo.HardDelete(ctx, id, cascade)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notFoundf("%s with ID %s", s.meta.Name, id)
	}
	return nil
}

func (s *Directory[T, V]) Activate(ctx context.Context, id string, actor *string) (*V, error) {
	return s.setActive(ctx, id, true, actor)
}

func (s *Directory[T, V]) Deactivate(ctx context.Context, id string, actor *string) (*V, error) {
	return s.setActive(ctx, id, false, actor)
}

func (s *Directory[T, V]) setActive(ctx context.Context, id string, active bool, actor *string) (*V, error) {
	ok, err := s.repo.SetActive(ctx, id, active, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundf("%s with ID %s", s.meta.Name, id)
	}
	return s.FindByID(ctx, id)
}

// Restore 仅对已软删行生效
func (s *Directory[T, V]) Restore(ctx context.Context, id string, actor *string) (*V, error) {
	ok, err := s.repo.Restore(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundf("deleted %s with ID %s", s.meta.Name, id)
	}
	return s.FindByID(ctx, id)
}

// BulkSetActive 空 id 集合视为坏请求；0 命中不是错误
func (s *Directory[T, V]) BulkSetActive(ctx context.Context, ids []string, active bool, actor *string) (*BulkStatusResult, error) {
	if len(ids) == 0 {
		return nil, badRequestf("no %s IDs provided", s.meta.Name)
	}
	n, err := s.repo.BulkSetActive(ctx, ids, active, actor)
	if err != nil {
		return nil, err
	}
	return &BulkStatusResult{Success: true, UpdatedCount: n}, nil
}
