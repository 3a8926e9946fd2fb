package service

import (
	"context"
	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	UserRepo UserRepo
	Seed     *SeedService
	Cfg      *config.Config
}

func NewAuthService(userRepo UserRepo, seed *SeedService, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Seed:     seed,
		Cfg:      cfg,
	}
}

// Register 创建用户并同步写入角色默认数据（画像/默认报名/游戏初始记录）。
// 种子写入失败时用户记录已存在，错误原样上抛。
func (s *AuthService) Register(ctx context.Context, user *model.User) error {
	existing, err := s.UserRepo.FindByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return util.ErrEmailRegistered
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	user.IsActive = true
	user.CreatedAt = time.Now().UTC()

	if err := s.UserRepo.Create(ctx, user); err != nil {
		return err
	}

	return s.Seed.SeedUserData(ctx, user.ID, user.Role)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.UserRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
