package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-rbac-service/internal/domain"
)

// AssignmentRepo 用户-角色关联仓储；
// 视图查询 JOIN 出冗余的 role_name / username
type AssignmentRepo struct{ db *gorm.DB }

func NewAssignmentRepo(db *gorm.DB) *AssignmentRepo { return &AssignmentRepo{db: db} }

func (r *AssignmentRepo) Create(ctx context.Context, m *domain.UserRoleMapping) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// CreateBatch 批量插入（bulkAssign 的净新增部分）
func (r *AssignmentRepo) CreateBatch(ctx context.Context, ms []domain.UserRoleMapping) error {
	if len(ms) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&ms).Error
}

// FindLive 精确 (userId, roleId) 未删除关联；查不到返回 (nil, nil)
func (r *AssignmentRepo) FindLive(ctx context.Context, userID, roleID string) (*domain.UserRoleMapping, error) {
	var m domain.UserRoleMapping
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND role_id = ? AND is_deleted = ?", userID, roleID, false).
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindViewLive 单条关联视图（setStatus 返回体用）
func (r *AssignmentRepo) FindViewLive(ctx context.Context, userID, roleID string) (*domain.AssignmentView, error) {
	var v domain.AssignmentView
	err := r.viewByUser(ctx).
		Where("user_role_mapping.user_id = ? AND user_role_mapping.role_id = ?", userID, roleID).
		Scan(&v).Error
	if err != nil {
		return nil, err
	}
	if v.ID == "" {
		return nil, nil
	}
	return &v, nil
}

// ListByUser 某用户的未删除关联，附角色名，按创建时间倒序
func (r *AssignmentRepo) ListByUser(ctx context.Context, userID string) ([]domain.AssignmentView, error) {
	var views []domain.AssignmentView
	err := r.viewByUser(ctx).
		Where("user_role_mapping.user_id = ?", userID).
		Order("user_role_mapping.created_at DESC").
		Scan(&views).Error
	return views, err
}

// ListByRole 某角色的未删除关联，附角色名与用户名，按创建时间倒序
func (r *AssignmentRepo) ListByRole(ctx context.Context, roleID string) ([]domain.AssignmentView, error) {
	var views []domain.AssignmentView
	err := r.db.WithContext(ctx).Model(&domain.UserRoleMapping{}).
		Select("user_role_mapping.*, master_role.name AS role_name, users.username AS username").
		Joins("JOIN master_role ON master_role.id = user_role_mapping.role_id").
		Joins("JOIN users ON users.id = user_role_mapping.user_id").
		Where("user_role_mapping.role_id = ? AND user_role_mapping.is_deleted = ?", roleID, false).
		Order("user_role_mapping.created_at DESC").
		Scan(&views).Error
	return views, err
}

func (r *AssignmentRepo) viewByUser(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&domain.UserRoleMapping{}).
		Select("user_role_mapping.*, master_role.name AS role_name").
		Joins("JOIN master_role ON master_role.id = user_role_mapping.role_id").
		Where("user_role_mapping.is_deleted = ?", false)
}

// LiveRoleIDs 该用户已有未删除关联的角色 id 子集
func (r *AssignmentRepo) LiveRoleIDs(ctx context.Context, userID string, roleIDs []string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&domain.UserRoleMapping{}).
		Where("user_id = ? AND role_id IN ? AND is_deleted = ?", userID, roleIDs, false).
		Pluck("role_id", &ids).Error
	return ids, err
}

// SoftDelete 解除单个关联；false 表示该对没有未删除关联
func (r *AssignmentRepo) SoftDelete(ctx context.Context, userID, roleID string, actor *string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.UserRoleMapping{}).
		Where("user_id = ? AND role_id = ? AND is_deleted = ?", userID, roleID, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": time.Now(), "updated_by": actor})
	return res.RowsAffected > 0, res.Error
}

// BulkSoftDelete 集合式解除；返回实际解除条数
func (r *AssignmentRepo) BulkSoftDelete(ctx context.Context, userID string, roleIDs []string, actor *string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.UserRoleMapping{}).
		Where("user_id = ? AND role_id IN ? AND is_deleted = ?", userID, roleIDs, false).
		Updates(map[string]any{"is_deleted": true, "updated_at": time.Now(), "updated_by": actor})
	return res.RowsAffected, res.Error
}

// SetActive 翻转关联状态
func (r *AssignmentRepo) SetActive(ctx context.Context, userID, roleID string, active bool, actor *string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&domain.UserRoleMapping{}).
		Where("user_id = ? AND role_id = ? AND is_deleted = ?", userID, roleID, false).
		Updates(map[string]any{"is_active": active, "updated_at": time.Now(), "updated_by": actor})
	return res.RowsAffected > 0, res.Error
}

// HardDeleteByUser / HardDeleteByRole 父实体物理删除时的级联清理（事务内调用）
func (r *AssignmentRepo) HardDeleteByUser(tx *gorm.DB, userID string) error {
	return tx.Where("user_id = ?", userID).Delete(&domain.UserRoleMapping{}).Error
}

func (r *AssignmentRepo) HardDeleteByRole(tx *gorm.DB, roleID string) error {
	return tx.Where("role_id = ?", roleID).Delete(&domain.UserRoleMapping{}).Error
}
