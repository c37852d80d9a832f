package service

import (
	"context"

	"go-rbac-service/internal/core/auth"
	"go-rbac-service/internal/domain"
	"go-rbac-service/pkg/utils"
)

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResult struct {
	AccessToken string          `json:"access_token"`
	User        domain.UserView `json:"user"`
}

// AuthService 注册/登录/档案；目录语义全部复用 UserService
type AuthService struct {
	userSvc *UserService
	jwter   *auth.JWTer
}

func NewAuthService(userSvc *UserService, jwter *auth.JWTer) *AuthService {
	return &AuthService{userSvc: userSvc, jwter: jwter}
}

// Register 等同于目录 create（Conflict 语义一致），actor 为空（自注册）
func (s *AuthService) Register(ctx context.Context, in CreateUserInput) (*domain.UserView, error) {
	return s.userSvc.Create(ctx, in, nil)
}

// Login 校验密码并签发 JWT；凭证错误一律 Unauthorized，不区分用户不存在
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	u, err := s.userSvc.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(in.Password, u.Password) {
		return nil, ErrUnauthorized
	}

	token, err := s.jwter.Issue(u.ID, u.Username)
	if err != nil {
		return nil, err
	}
	view, err := s.userSvc.project(u)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: token, User: *view}, nil
}

// Profile 取当前登录用户的投影
func (s *AuthService) Profile(ctx context.Context, uid string) (*domain.UserView, error) {
	return s.userSvc.FindByID(ctx, uid)
}
