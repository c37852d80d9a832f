package domain

import "time"

// User 用户表；username/email 仅在未删除行内唯一（部分唯一索引见 database.Migrate）
type User struct {
	ID          string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username    string     `gorm:"size:50;not null;index" json:"username"`
	FirstName   string     `gorm:"size:50;not null" json:"firstName"`
	LastName    string     `gorm:"size:50" json:"lastName"`
	Email       string     `gorm:"size:100;not null;index" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	DateOfBirth *time.Time `gorm:"type:date" json:"dateOfBirth"`
	IsActive    bool       `gorm:"not null" json:"isActive"`
	IsDeleted   bool       `gorm:"not null;index" json:"isDeleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	CreatedBy   *string    `gorm:"type:varchar(36)" json:"createdBy"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	UpdatedBy   *string    `gorm:"type:varchar(36)" json:"updatedBy"`
}

func (User) TableName() string { return "users" }

// UserView 对外投影（永不携带密码散列）
type UserView struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	DateOfBirth *time.Time `json:"dateOfBirth"`
	IsActive    bool       `json:"isActive"`
	IsDeleted   bool       `json:"isDeleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	CreatedBy   *string    `json:"createdBy"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	UpdatedBy   *string    `json:"updatedBy"`
}
