package domain

import "time"

// UserRoleMapping 用户-角色多对多关联；(user_id, role_id) 在未删除行内唯一
type UserRoleMapping struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string    `gorm:"column:user_id;type:varchar(36);not null;index" json:"userId"`
	RoleID    string    `gorm:"column:role_id;type:varchar(36);not null;index" json:"roleId"`
	IsActive  bool      `gorm:"not null" json:"isActive"`
	IsDeleted bool      `gorm:"not null;index" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy *string   `gorm:"type:varchar(36)" json:"createdBy"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy *string   `gorm:"type:varchar(36)" json:"updatedBy"`
}

func (UserRoleMapping) TableName() string { return "user_role_mapping" }

// AssignmentView 关联投影；RoleName 冗余角色名，按角色侧查询时附带 Username
type AssignmentView struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	RoleID    string    `json:"roleId"`
	RoleName  string    `json:"roleName"`
	Username  string    `json:"username,omitempty"`
	IsActive  bool      `json:"isActive"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy *string   `json:"createdBy"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy *string   `json:"updatedBy"`
}
