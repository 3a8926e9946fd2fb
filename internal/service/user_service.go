package service

import (
	"context"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

type UserService struct {
	UserRepo       UserRepo
	ProfileRepo    ProfileRepo
	EnrollmentRepo EnrollmentRepo
	AttemptRepo    AttemptRepo
	GameRepo       GameRepo
}

func NewUserService(userRepo UserRepo, profileRepo ProfileRepo, enrollmentRepo EnrollmentRepo, attemptRepo AttemptRepo, gameRepo GameRepo) *UserService {
	return &UserService{
		UserRepo:       userRepo,
		ProfileRepo:    profileRepo,
		EnrollmentRepo: enrollmentRepo,
		AttemptRepo:    attemptRepo,
		GameRepo:       gameRepo,
	}
}

// UserUpdate 全量更新（PUT）
type UserUpdate struct {
	Email     string
	FirstName string
	LastName  string
	Role      model.UserRole
	IsActive  bool
}

// UserPatch 局部更新（PATCH），nil 字段不写
type UserPatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *model.UserRole
	IsActive  *bool
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]model.User, error) {
	return s.UserRepo.FindAll(ctx)
}

// GetUser 返回用户与画像；画像可能不存在（老数据），不视为错误
func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, *model.Profile, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.UserRepo.FindByID(ctx, oid)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, util.ErrUserNotFound
	}

	profile, err := s.ProfileRepo.FindByUser(ctx, oid)
	if err != nil {
		return nil, nil, err
	}
	return user, profile, nil
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, update UserUpdate) (*model.User, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	matched, err := s.UserRepo.UpdateFields(ctx, oid, bson.M{
		"email":      update.Email,
		"first_name": update.FirstName,
		"last_name":  update.LastName,
		"role":       update.Role,
		"is_active":  update.IsActive,
	})
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, util.ErrUserNotFound
	}

	return s.UserRepo.FindByID(ctx, oid)
}

func (s *UserService) PatchUser(ctx context.Context, userID string, patch UserPatch) (*model.User, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		fields["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		fields["last_name"] = *patch.LastName
	}
	if patch.Role != nil {
		fields["role"] = *patch.Role
	}
	if patch.IsActive != nil {
		fields["is_active"] = *patch.IsActive
	}

	if len(fields) == 0 {
		return nil, util.ErrNoUpdateFields
	}

	matched, err := s.UserRepo.UpdateFields(ctx, oid, fields)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, util.ErrUserNotFound
	}

	return s.UserRepo.FindByID(ctx, oid)
}

// DeleteUser 删除用户并逐个清理其画像、报名、答题与游戏记录。
// 各步独立提交，中途失败会留下孤儿数据（无事务，见 course_service.go 的并发说明）。
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	oid, err := parseUserID(userID)
	if err != nil {
		return err
	}

	deleted, err := s.UserRepo.Delete(ctx, oid)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return util.ErrUserNotFound
	}

	if err := s.ProfileRepo.DeleteByUser(ctx, oid); err != nil {
		return err
	}
	removed, err := s.EnrollmentRepo.DeleteByUser(ctx, oid)
	if err != nil {
		return err
	}
	if err := s.AttemptRepo.DeleteByUser(ctx, oid); err != nil {
		return err
	}
	if err := s.GameRepo.DeleteByUser(ctx, oid); err != nil {
		return err
	}

	logger.Log.Info("user deleted",
		zap.String("userId", userID),
		zap.Int64("enrollmentsRemoved", removed))
	return nil
}
