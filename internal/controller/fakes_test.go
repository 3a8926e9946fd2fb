package controller

import (
	"context"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/service"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// 控制器测试只打桩各自路径会触达的方法，
// 其余方法由内嵌接口兜底，误调用即 panic。

type stubUserRepo struct {
	service.UserRepo
	users map[string]*model.User // key: email
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (r *stubUserRepo) Create(ctx context.Context, user *model.User) error {
	user.ID = bson.NewObjectID()
	r.users[user.Email] = user
	return nil
}

func (r *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.users[email], nil
}

type stubProfileRepo struct {
	service.ProfileRepo
	items []*model.Profile
}

func (r *stubProfileRepo) Insert(ctx context.Context, profile *model.Profile) error {
	profile.ID = bson.NewObjectID()
	r.items = append(r.items, profile)
	return nil
}

type stubEnrollmentRepo struct {
	service.EnrollmentRepo
	items []*model.Enrollment
}

func (r *stubEnrollmentRepo) Insert(ctx context.Context, enrollment *model.Enrollment) error {
	enrollment.ID = bson.NewObjectID()
	r.items = append(r.items, enrollment)
	return nil
}

func (r *stubEnrollmentRepo) FindByUserAndSlug(ctx context.Context, userID bson.ObjectID, slug string) (*model.Enrollment, error) {
	for _, e := range r.items {
		if e.UserID == userID && e.CourseSlug == slug {
			return e, nil
		}
	}
	return nil, nil
}

type stubGameRepo struct {
	service.GameRepo
	items []*model.GameProgress
}

func (r *stubGameRepo) Insert(ctx context.Context, progress *model.GameProgress) error {
	progress.ID = bson.NewObjectID()
	r.items = append(r.items, progress)
	return nil
}

func (r *stubGameRepo) FindByUserAndGame(ctx context.Context, userID bson.ObjectID, gameID string) (*model.GameProgress, error) {
	for _, p := range r.items {
		if p.UserID == userID && p.GameID == gameID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubGameRepo) Update(ctx context.Context, id bson.ObjectID, level, xp int, lastPlayed time.Time) error {
	for _, p := range r.items {
		if p.ID == id {
			p.Level = level
			p.XP = xp
			p.LastPlayed = &lastPlayed
		}
	}
	return nil
}

type stubAttemptRepo struct {
	service.AttemptRepo
	items []*model.QuizAttempt
}

func (r *stubAttemptRepo) Insert(ctx context.Context, attempt *model.QuizAttempt) error {
	attempt.ID = bson.NewObjectID()
	r.items = append(r.items, attempt)
	return nil
}
