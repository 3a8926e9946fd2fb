package service

import (
	"context"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/pkg/logger"
	"learning_platform_backend/pkg/monitoring"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/zap"
)

// CourseDefault 单门默认课程（类别/难度为策划值，种子路径不查目录）
type CourseDefault struct {
	Slug       string
	Category   string
	Difficulty string
}

// RoleDefaults 角色默认数据：自动报名的课程与初始化的游戏
type RoleDefaults struct {
	Courses []CourseDefault
	Games   []string
}

// roleDefaults 注册时按角色写入的默认数据表，未知角色回落到 RoleUser。
var roleDefaults = map[model.UserRole]RoleDefaults{
	model.RoleUser: {
		Courses: []CourseDefault{
			{Slug: "intro_python", Category: "Programming", Difficulty: model.DifficultyBeginner},
			{Slug: "basic_math", Category: "Mathematics", Difficulty: model.DifficultyBeginner},
		},
		Games: []string{"math_blaster"},
	},
	model.RoleStudent: {
		Courses: []CourseDefault{
			{Slug: "intro_python", Category: "Programming", Difficulty: model.DifficultyBeginner},
			{Slug: "basic_math", Category: "Mathematics", Difficulty: model.DifficultyBeginner},
			{Slug: "web_dev_basics", Category: "Web Development", Difficulty: model.DifficultyIntermediate},
		},
		Games: []string{"math_blaster", "code_quest"},
	},
	model.RoleInstructor: {
		Courses: []CourseDefault{
			{Slug: "advanced_python", Category: "Programming", Difficulty: model.DifficultyAdvanced},
			{Slug: "machine_learning", Category: "Data Science", Difficulty: model.DifficultyAdvanced},
		},
		Games: []string{},
	},
}

// DefaultsForRole 查默认表，未登记的角色用 RoleUser 的条目
func DefaultsForRole(role model.UserRole) RoleDefaults {
	if defaults, ok := roleDefaults[role]; ok {
		return defaults
	}
	return roleDefaults[model.RoleUser]
}

type SeedService struct {
	ProfileRepo    ProfileRepo
	EnrollmentRepo EnrollmentRepo
	GameRepo       GameRepo
	CatalogRepo    CatalogRepo
}

func NewSeedService(profileRepo ProfileRepo, enrollmentRepo EnrollmentRepo, gameRepo GameRepo, catalogRepo CatalogRepo) *SeedService {
	return &SeedService{
		ProfileRepo:    profileRepo,
		EnrollmentRepo: enrollmentRepo,
		GameRepo:       gameRepo,
		CatalogRepo:    catalogRepo,
	}
}

// SeedUserData 注册时写入用户画像、默认报名和游戏初始记录。
// 三段写入顺序固定且无事务包裹：中途失败会留下部分数据，由调用方把错误
// 原样上抛（注册请求报 500），不做补偿回滚。
// 默认课程是策划数据，这里不再查目录确认存在（与手动报名路径不同），
// 目录漂移靠启动时的 ValidateDefaults 暴露。
func (s *SeedService) SeedUserData(ctx context.Context, userID bson.ObjectID, role model.UserRole) error {
	defaults := DefaultsForRole(role)

	slugs := make([]string, 0, len(defaults.Courses))
	for _, course := range defaults.Courses {
		slugs = append(slugs, course.Slug)
	}

	profile := &model.Profile{
		UserID:            userID,
		Role:              role,
		RegisteredCourses: slugs,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.ProfileRepo.Insert(ctx, profile); err != nil {
		return err
	}

	for _, course := range defaults.Courses {
		enrollment := &model.Enrollment{
			UserID:       userID,
			CourseSlug:   course.Slug,
			Category:     course.Category,
			Difficulty:   course.Difficulty,
			Progress:     0,
			Completed:    false,
			LastAccessed: nil,
			EnrolledAt:   time.Now().UTC(),
		}
		if err := s.EnrollmentRepo.Insert(ctx, enrollment); err != nil {
			return err
		}
		monitoring.EnrollmentCounter.WithLabelValues("seed").Inc()
	}

	for _, gameID := range defaults.Games {
		progress := &model.GameProgress{
			UserID:     userID,
			GameID:     gameID,
			Level:      1,
			XP:         0,
			LastPlayed: nil,
		}
		if err := s.GameRepo.Insert(ctx, progress); err != nil {
			return err
		}
	}

	return nil
}

// ValidateDefaults 启动时核对默认表里的课程是否还在目录中，缺失只告警不阻断。
func (s *SeedService) ValidateDefaults(ctx context.Context) {
	seen := make(map[string]bool)
	for role, defaults := range roleDefaults {
		for _, course := range defaults.Courses {
			if seen[course.Slug] {
				continue
			}
			seen[course.Slug] = true

			entry, err := s.CatalogRepo.FindBySlug(ctx, course.Slug)
			if err != nil {
				logger.Log.Warn("seed defaults check failed",
					zap.String("slug", course.Slug), zap.Error(err))
				continue
			}
			if entry == nil {
				logger.Log.Warn("seed default course missing from catalog",
					zap.String("slug", course.Slug), zap.String("role", string(role)))
			}
		}
	}
}
