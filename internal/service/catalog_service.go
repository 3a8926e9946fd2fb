package service

import (
	"context"
	"encoding/json"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/util"
	"learning_platform_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

const (
	catalogCacheKey = "catalog:all"
	catalogCacheTTL = 24 * time.Hour
)

// CatalogService 课程目录管理。无筛选条件的全量列表走 Redis 缓存，
// 任何写操作直接删 key，不做增量维护。
type CatalogService struct {
	CatalogRepo    CatalogRepo
	EnrollmentRepo EnrollmentRepo
	ProfileRepo    ProfileRepo
	Redis          *redis.Client
}

func NewCatalogService(catalogRepo CatalogRepo, enrollmentRepo EnrollmentRepo, profileRepo ProfileRepo, rdb *redis.Client) *CatalogService {
	return &CatalogService{
		CatalogRepo:    catalogRepo,
		EnrollmentRepo: enrollmentRepo,
		ProfileRepo:    profileRepo,
		Redis:          rdb,
	}
}

func (s *CatalogService) ListCourses(ctx context.Context, category, difficulty, search string) ([]model.CatalogCourse, error) {
	cacheable := category == "" && difficulty == "" && search == ""

	if cacheable && s.Redis != nil {
		cached, err := s.Redis.Get(ctx, catalogCacheKey).Result()
		if err == nil {
			var courses []model.CatalogCourse
			if jsonErr := json.Unmarshal([]byte(cached), &courses); jsonErr == nil {
				return courses, nil
			}
			logger.Log.Warn("discarding corrupt catalog cache entry", zap.String("key", catalogCacheKey))
		} else if err != redis.Nil {
			logger.Log.Warn("catalog cache read failed", zap.Error(err))
		}
	}

	courses, err := s.CatalogRepo.Find(ctx, category, difficulty, search)
	if err != nil {
		return nil, err
	}

	if cacheable && s.Redis != nil {
		if payload, jsonErr := json.Marshal(courses); jsonErr == nil {
			if err := s.Redis.Set(ctx, catalogCacheKey, payload, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}
	return courses, nil
}

func (s *CatalogService) GetCourse(ctx context.Context, slug string) (*model.CatalogCourse, error) {
	course, err := s.CatalogRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, course *model.CatalogCourse) error {
	existing, err := s.CatalogRepo.FindBySlug(ctx, course.Slug)
	if err != nil {
		return err
	}
	if existing != nil {
		return util.ErrSlugExists
	}

	course.CreatedAt = time.Now().UTC()
	if err := s.CatalogRepo.Insert(ctx, course); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// UpdateCourse 部分更新。slug 是稳定标识，出现在更新字段里直接拒绝。
func (s *CatalogService) UpdateCourse(ctx context.Context, slug string, fields bson.M) (*model.CatalogCourse, error) {
	// slug 不可变更，但全量 PUT 会原样回传当前 slug，只拦截改名
	if v, ok := fields["slug"]; ok {
		if s, isStr := v.(string); !isStr || s != slug {
			return nil, util.ErrSlugImmutable
		}
		delete(fields, "slug")
	}
	if len(fields) == 0 {
		return nil, util.ErrNoUpdateFields
	}

	existing, err := s.CatalogRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, util.ErrCourseNotFound
	}

	fields["updated_at"] = time.Now().UTC()
	if err := s.CatalogRepo.UpdateBySlug(ctx, slug, fields); err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)

	return s.GetCourse(ctx, slug)
}

// DeleteCourse 级联删除：目录条目、全部报名记录、所有档案里的课程引用。
// 三步非原子，中途失败可能留下半清理状态，由调用方重试兜底。
func (s *CatalogService) DeleteCourse(ctx context.Context, slug string) error {
	deleted, err := s.CatalogRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return util.ErrCourseNotFound
	}

	enrollments, err := s.EnrollmentRepo.DeleteBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.ProfileRepo.RemoveCourseFromAll(ctx, slug); err != nil {
		return err
	}
	s.invalidateCache(ctx)

	logger.Log.Info("Course deleted with cascade",
		zap.String("slug", slug),
		zap.Int64("enrollmentsRemoved", enrollments))
	return nil
}

func (s *CatalogService) Stats(ctx context.Context) (*model.CatalogStats, error) {
	totalCourses, err := s.CatalogRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalEnrollments, err := s.EnrollmentRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	uniqueUsers, err := s.EnrollmentRepo.CountDistinctUsers(ctx)
	if err != nil {
		return nil, err
	}
	popular, err := s.EnrollmentRepo.PopularCourses(ctx, 5)
	if err != nil {
		return nil, err
	}
	categories, err := s.CatalogRepo.GroupByField(ctx, "category")
	if err != nil {
		return nil, err
	}
	difficulties, err := s.CatalogRepo.GroupByField(ctx, "difficulty")
	if err != nil {
		return nil, err
	}

	return &model.CatalogStats{
		TotalCourses:        totalCourses,
		TotalEnrollments:    totalEnrollments,
		UniqueEnrolledUsers: uniqueUsers,
		PopularCourses:      popular,
		Categories:          categories,
		Difficulties:        difficulties,
	}, nil
}

// CourseEnrollments 单门课的报名总数加最近报名明细（带用户信息）。
type CourseEnrollments struct {
	Total  int64                      `json:"total"`
	Recent []model.EnrollmentWithUser `json:"recent"`
}

func (s *CatalogService) GetCourseEnrollments(ctx context.Context, slug string, limit int) (*CourseEnrollments, error) {
	course, err := s.CatalogRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, util.ErrCourseNotFound
	}

	total, err := s.EnrollmentRepo.CountBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	recent, err := s.EnrollmentRepo.RecentBySlug(ctx, slug, limit)
	if err != nil {
		return nil, err
	}
	return &CourseEnrollments{Total: total, Recent: recent}, nil
}

// SetThumbnail 存储上传完成后回写 URL。
func (s *CatalogService) SetThumbnail(ctx context.Context, slug, url string) error {
	existing, err := s.CatalogRepo.FindBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing == nil {
		return util.ErrCourseNotFound
	}
	if err := s.CatalogRepo.UpdateBySlug(ctx, slug, bson.M{"thumbnail": url, "updated_at": time.Now().UTC()}); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, catalogCacheKey).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
