package domain

import "time"

// Role 角色表（沿用 master_role 表名）；name 在未删除行内唯一
type Role struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name      string    `gorm:"size:50;not null;index" json:"name"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	IsDeleted bool      `gorm:"not null;index" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy *string   `gorm:"type:varchar(36)" json:"createdBy"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy *string   `gorm:"type:varchar(36)" json:"updatedBy"`
}

func (Role) TableName() string { return "master_role" }

type RoleView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy *string   `json:"createdBy"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy *string   `json:"updatedBy"`
}
