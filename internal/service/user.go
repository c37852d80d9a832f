package service

import (
	"context"
	"time"

	"go-rbac-service/internal/domain"
	"go-rbac-service/internal/repo"
	"go-rbac-service/pkg/utils"
)

type CreateUserInput struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	FirstName   string `json:"firstName" binding:"required,min=2,max=50"`
	LastName    string `json:"lastName" binding:"omitempty,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	DateOfBirth string `json:"dateOfBirth" binding:"omitempty"`
	IsActive    *bool  `json:"isActive"`
}

type UpdateUserInput struct {
	Username    *string `json:"username" binding:"omitempty,min=3,max=50"`
	FirstName   *string `json:"firstName" binding:"omitempty,min=2,max=50"`
	LastName    *string `json:"lastName" binding:"omitempty,max=50"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Password    *string `json:"password" binding:"omitempty,min=6"`
	DateOfBirth *string `json:"dateOfBirth"`
	IsActive    *bool   `json:"isActive"`
}

// UserService 用户目录：通用生命周期走内嵌 Directory，
// create/update 在此补唯一键（username/email，未删除行内）语义
type UserService struct {
	*Directory[domain.User, domain.UserView]
	users *repo.Directory[domain.User]
}

func NewUserService(users *repo.Directory[domain.User], mappings *repo.AssignmentRepo) *UserService {
	meta := EntityMeta{
		Name:       "user",
		SearchCols: []string{"username", "first_name", "last_name", "email"},
		SortCols: map[string]string{
			"username": "username", "firstName": "first_name", "lastName": "last_name",
			"email": "email", "isActive": "is_active",
			"createdAt": "created_at", "updatedAt": "updated_at",
		},
	}
	d := newDirectory[domain.User, domain.UserView](users, meta, mappings.HardDeleteByUser)
	return &UserService{Directory: d, users: users}
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput, actor *string) (*domain.UserView, error) {
	if taken, err := s.users.ExistsLive(ctx, "username = ?", in.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, conflictf("username already exists")
	}
	if taken, err := s.users.ExistsLive(ctx, "email = ?", in.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, conflictf("email already exists")
	}

	dob, err := parseDate(in.DateOfBirth)
	if err != nil {
		return nil, err
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := domain.User{
		ID:          utils.NewID(),
		Username:    in.Username,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Password:    hash,
		DateOfBirth: dob,
		IsActive:    true,
		CreatedBy:   actor,
		UpdatedBy:   actor,
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := s.users.Create(ctx, &u); err != nil {
		// 预检之外的并发窗口由唯一索引兜底
		if repo.IsDuplicateKey(err) {
			return nil, conflictf("username or email already exists")
		}
		return nil, err
	}
	return s.project(&u)
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput, actor *string) (*domain.UserView, error) {
	u, err := s.users.FindLiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFoundf("user with ID %s", id)
	}

	if in.Username != nil && *in.Username != u.Username {
		if taken, err := s.users.ExistsLive(ctx, "username = ? AND id <> ?", *in.Username, id); err != nil {
			return nil, err
		} else if taken {
			return nil, conflictf("username already exists")
		}
		u.Username = *in.Username
	}
	if in.Email != nil && *in.Email != u.Email {
		if taken, err := s.users.ExistsLive(ctx, "email = ? AND id <> ?", *in.Email, id); err != nil {
			return nil, err
		} else if taken {
			return nil, conflictf("email already exists")
		}
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Password != nil {
		hash, err := utils.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		u.Password = hash
	}
	if in.DateOfBirth != nil {
		dob, err := parseDate(*in.DateOfBirth)
		if err != nil {
			return nil, err
		}
		u.DateOfBirth = dob
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	u.UpdatedAt = time.Now()
	u.UpdatedBy = actor

	if err := s.users.Save(ctx, u); err != nil {
		if repo.IsDuplicateKey(err) {
			return nil, conflictf("username or email already exists")
		}
		return nil, err
	}
	return s.project(u)
}

// FindByEmail 认证流程专用，返回含密码散列的实体
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.FindOneLive(ctx, "email = ?", email)
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, badRequestf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return &t, nil
}
