package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"go-rbac-service/internal/domain"
)

// Directory 通用目录仓储：User / Role 共用同一套
// 查询 / 生命周期操作，均只命中未删除行（软删行走 *Deleted* 系列）
type Directory[T any] struct{ db *gorm.DB }

func NewDirectory[T any](db *gorm.DB) *Directory[T] { return &Directory[T]{db: db} }

func (r *Directory[T]) model(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(new(T))
}

func (r *Directory[T]) Create(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindLiveByID 未删除行按主键查；查不到返回 (nil, nil)
func (r *Directory[T]) FindLiveByID(ctx context.Context, id string) (*T, error) {
	return r.findOne(ctx, "id = ? AND is_deleted = ?", id, false)
}

// FindDeletedByID 仅命中已软删行（restore 用）
func (r *Directory[T]) FindDeletedByID(ctx context.Context, id string) (*T, error) {
	return r.findOne(ctx, "id = ? AND is_deleted = ?", id, true)
}

// FindOneLive 按任意条件查未删除行
func (r *Directory[T]) FindOneLive(ctx context.Context, cond string, args ...any) (*T, error) {
	return r.findOne(ctx, "is_deleted = ? AND "+cond, append([]any{false}, args...)...)
}

func (r *Directory[T]) findOne(ctx context.Context, cond string, args ...any) (*T, error) {
	var m T
	err := r.db.WithContext(ctx).Where(cond, args...).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ExistsLive 唯一键预检：未删除行内是否存在满足条件的记录
func (r *Directory[T]) ExistsLive(ctx context.Context, cond string, args ...any) (bool, error) {
	n, err := r.CountLive(ctx, cond, args...)
	return n > 0, err
}

// CountLive 未删除行内条件计数
func (r *Directory[T]) CountLive(ctx context.Context, cond string, args ...any) (int64, error) {
	var n int64
	err := r.model(ctx).Where("is_deleted = ?", false).Where(cond, args...).Count(&n).Error
	return n, err
}

// List 未删除行的搜索 + 过滤 + 排序 + 分页；
// searchCols 任一列 LIKE 命中即可，sortCol 由上层按白名单换算
func (r *Directory[T]) List(ctx context.Context, q domain.ListQuery, searchCols []string, sortCol string) ([]T, int64, error) {
	tx := r.model(ctx).Where("is_deleted = ?", false)

	if s := strings.TrimSpace(q.Search); s != "" && len(searchCols) > 0 {
		like := "%" + s + "%"
		or := r.db.Where(searchCols[0]+" LIKE ?", like)
		for _, col := range searchCols[1:] {
			or = or.Or(col+" LIKE ?", like)
		}
		tx = tx.Where(or)
	}
	if q.IsActive != nil {
		tx = tx.Where("is_active = ?", *q.IsActive)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	dir := "DESC"
	if strings.EqualFold(q.SortOrder, "ASC") {
		dir = "ASC"
	}
	var items []T
	err := tx.Order(sortCol + " " + dir).
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListActive 活跃且未删除，按创建时间倒序
func (r *Directory[T]) ListActive(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).
		Where("is_active = ? AND is_deleted = ?", true, false).
		Order("created_at DESC").Find(&items).Error
	return items, err
}

// ListDeleted 已软删，按更新时间倒序（即删除时间近似序）
func (r *Directory[T]) ListDeleted(ctx context.Context) ([]T, error) {
	var items []T
	err := r.db.WithContext(ctx).
		Where("is_deleted = ?", true).
		Order("updated_at DESC").Find(&items).Error
	return items, err
}

func (r *Directory[T]) Save(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// SoftDelete 单条 UPDATE 翻转 is_deleted；false 表示没有可删的行
func (r *Directory[T]) SoftDelete(ctx context.Context, id string, actor *string) (bool, error) {
	res := r.model(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": time.Now(), "updated_by": actor})
	return res.RowsAffected > 0, res.Error
}

// Restore 只对已软删行生效
func (r *Directory[T]) Restore(ctx context.Context, id string, actor *string) (bool, error) {
	res := r.model(ctx).
		Where("id = ? AND is_deleted = ?", id, true).
		Updates(map[string]any{"is_deleted": false, "updated_at": time.Now(), "updated_by": actor})
	return res.RowsAffected > 0, res.Error
}

// SetActive 未删除行翻转 is_active
func (r *Directory[T]) SetActive(ctx context.Context, id string, active bool, actor *string) (bool, error) {
	res := r.model(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now(), "updated_by": actor})
	return res.RowsAffected > 0, res.Error
}

// BulkSetActive 集合式 UPDATE；未命中的 id 静默跳过，返回实际修改行数
func (r *Directory[T]) BulkSetActive(ctx context.Context, ids []string, active bool, actor *string) (int64, error) {
	res := r.model(ctx).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now(), "updated_by": actor})
	return res.RowsAffected, res.Error
}

// HardDelete 物理删除；cascade 在同一事务内先清理从属行
func (r *Directory[T]) HardDelete(ctx context.Context, id string, cascade func(tx *gorm.DB) error) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cascade != nil {
			if err := cascade(tx); err != nil {
				return err
			}
		}
		res := tx.Where("id = ?", id).Delete(new(T))
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

// IsDuplicateKey 唯一约束冲突识别；不依赖 gorm.ErrDuplicatedKey，避免驱动差异
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
