package service

import (
	"context"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// service 层只依赖这组接口，internal/repository 提供 Mongo 实现，
// 测试用内存假实现（见 *_test.go）。

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id bson.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindAll(ctx context.Context) ([]model.User, error)
	UpdateFields(ctx context.Context, id bson.ObjectID, fields bson.M) (int64, error)
	Delete(ctx context.Context, id bson.ObjectID) (int64, error)
}

type ProfileRepo interface {
	Insert(ctx context.Context, profile *model.Profile) error
	FindByUser(ctx context.Context, userID bson.ObjectID) (*model.Profile, error)
	AddCourse(ctx context.Context, userID bson.ObjectID, slug string) error
	RemoveCourseFromAll(ctx context.Context, slug string) error
	DeleteByUser(ctx context.Context, userID bson.ObjectID) error
}

type EnrollmentRepo interface {
	Insert(ctx context.Context, enrollment *model.Enrollment) error
	FindByUserAndSlug(ctx context.Context, userID bson.ObjectID, slug string) (*model.Enrollment, error)
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.Enrollment, error)
	UpdateProgress(ctx context.Context, id bson.ObjectID, progress int, completed *bool, lastAccessed time.Time) error
	DeleteBySlug(ctx context.Context, slug string) (int64, error)
	DeleteByUser(ctx context.Context, userID bson.ObjectID) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	CountBySlug(ctx context.Context, slug string) (int64, error)
	CountDistinctUsers(ctx context.Context) (int, error)
	PopularCourses(ctx context.Context, limit int) ([]model.SlugCount, error)
	RecentBySlug(ctx context.Context, slug string, limit int) ([]model.EnrollmentWithUser, error)
}

type CatalogRepo interface {
	Insert(ctx context.Context, course *model.CatalogCourse) error
	FindBySlug(ctx context.Context, slug string) (*model.CatalogCourse, error)
	Find(ctx context.Context, category, difficulty, search string) ([]model.CatalogCourse, error)
	UpdateBySlug(ctx context.Context, slug string, fields bson.M) error
	DeleteBySlug(ctx context.Context, slug string) (int64, error)
	CountAll(ctx context.Context) (int64, error)
	GroupByField(ctx context.Context, field string) ([]model.ValueCount, error)
}

type QuestionRepo interface {
	Insert(ctx context.Context, question *model.QuizQuestion) error
	FindByQuiz(ctx context.Context, quizID string) ([]model.QuizQuestion, error)
	FindAll(ctx context.Context) ([]model.QuizQuestion, error)
}

type AttemptRepo interface {
	Insert(ctx context.Context, attempt *model.QuizAttempt) error
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.QuizAttempt, error)
	DeleteByUser(ctx context.Context, userID bson.ObjectID) error
}

type GameRepo interface {
	Insert(ctx context.Context, progress *model.GameProgress) error
	FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.GameProgress, error)
	FindByUserAndGame(ctx context.Context, userID bson.ObjectID, gameID string) (*model.GameProgress, error)
	Update(ctx context.Context, id bson.ObjectID, level, xp int, lastPlayed time.Time) error
	DeleteByUser(ctx context.Context, userID bson.ObjectID) error
}

// parseUserID 校验路径里的用户ID是否为合法的 ObjectID 十六进制串。
// 格式错误返回 ErrInvalidUserID（400），不会落到存储层变成一次查不到。
func parseUserID(userID string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return bson.ObjectID{}, util.ErrInvalidUserID
	}
	return oid, nil
}
