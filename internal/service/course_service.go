package service

import (
	"context"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/logger"
	"learning_platform_backend/pkg/monitoring"
	"time"

	"go.uber.org/zap"
)

// CourseService 报名台账：user_courses 为权威记录，
// user_profiles.registered_courses 是按用户的冗余镜像，二者在每个写路径上同步维护。
type CourseService struct {
	EnrollmentRepo EnrollmentRepo
	ProfileRepo    ProfileRepo
	CatalogRepo    CatalogRepo
}

func NewCourseService(enrollmentRepo EnrollmentRepo, profileRepo ProfileRepo, catalogRepo CatalogRepo) *CourseService {
	return &CourseService{
		EnrollmentRepo: enrollmentRepo,
		ProfileRepo:    profileRepo,
		CatalogRepo:    catalogRepo,
	}
}

// Enroll 手动报名：课程必须在目录中，(user, slug) 不允许重复。
// 先查后插没有唯一索引兜底，两个并发请求可能都通过重复检查后各插一条；
// 报名插入与画像 $addToSet 也是两次独立写。窗口保持现状，不在此处加锁。
func (s *CourseService) Enroll(ctx context.Context, userID, courseSlug, category, difficulty string) (*model.Enrollment, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	catalogCourse, err := s.CatalogRepo.FindBySlug(ctx, courseSlug)
	if err != nil {
		return nil, err
	}
	if catalogCourse == nil {
		return nil, util.ErrCourseNotFound
	}

	existing, err := s.EnrollmentRepo.FindByUserAndSlug(ctx, oid, courseSlug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.ErrAlreadyEnrolled
	}

	// 类别/难度取目录快照，目录条目缺失该字段时才用调用方给的值
	if catalogCourse.Category != "" {
		category = catalogCourse.Category
	}
	if catalogCourse.Difficulty != "" {
		difficulty = catalogCourse.Difficulty
	}

	now := time.Now().UTC()
	enrollment := &model.Enrollment{
		UserID:       oid,
		CourseSlug:   courseSlug,
		Category:     category,
		Difficulty:   difficulty,
		Progress:     0,
		Completed:    false,
		LastAccessed: &now,
		EnrolledAt:   now,
	}
	if err := s.EnrollmentRepo.Insert(ctx, enrollment); err != nil {
		return nil, err
	}

	if err := s.ProfileRepo.AddCourse(ctx, oid, courseSlug); err != nil {
		return nil, err
	}

	monitoring.EnrollmentCounter.WithLabelValues("manual").Inc()
	return enrollment, nil
}

func (s *CourseService) GetUserCourses(ctx context.Context, userID string) ([]model.Enrollment, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.EnrollmentRepo.FindByUser(ctx, oid)
}

// GetUserCourseProgress 返回报名记录和目录条目；课程已被下架时目录条目为 nil，不算错误
func (s *CourseService) GetUserCourseProgress(ctx context.Context, userID, courseSlug string) (*model.Enrollment, *model.CatalogCourse, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, nil, err
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndSlug(ctx, oid, courseSlug)
	if err != nil {
		return nil, nil, err
	}
	if enrollment == nil {
		return nil, nil, util.ErrEnrollmentNotFound
	}

	catalogCourse, err := s.CatalogRepo.FindBySlug(ctx, courseSlug)
	if err != nil {
		return nil, nil, err
	}
	return enrollment, catalogCourse, nil
}

// UpdateProgress 覆写进度。completed 传 nil 时不改动原值；显式传入时以调用方为准，
// 与 progress>=100 矛盾的组合放行但告警（接口契约如此，见 DESIGN.md）。
func (s *CourseService) UpdateProgress(ctx context.Context, userID, courseSlug string, progress int, completed *bool) (*model.Enrollment, error) {
	if progress < 0 || progress > 100 {
		return nil, util.ErrProgressRange
	}

	oid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	enrollment, err := s.EnrollmentRepo.FindByUserAndSlug(ctx, oid, courseSlug)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, util.ErrEnrollmentNotFound
	}

	if completed != nil && *completed != (progress >= 100) {
		logger.Log.Warn("completed flag contradicts progress",
			zap.String("userId", userID),
			zap.String("courseSlug", courseSlug),
			zap.Int("progress", progress),
			zap.Bool("completed", *completed))
	}

	now := time.Now().UTC()
	if err := s.EnrollmentRepo.UpdateProgress(ctx, enrollment.ID, progress, completed, now); err != nil {
		return nil, err
	}

	enrollment.Progress = progress
	if completed != nil {
		enrollment.Completed = *completed
	}
	enrollment.LastAccessed = &now
	return enrollment, nil
}
