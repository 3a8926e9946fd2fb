// 课程目录初始化脚本
//
// 把角色预置数据引用到的课程写入 course_catalog，已存在的 slug 跳过。
// 首次部署或清库后执行一次即可。
//
// 用法: go run scripts/seed_catalog.go

package main

import (
	"context"
	"learning_platform_backend/internal/config"
	"learning_platform_backend/internal/model"
	"learning_platform_backend/internal/repository"
	"learning_platform_backend/pkg/database"
	"learning_platform_backend/pkg/logger"
	"log"
	"time"
)

var defaultCourses = []model.CatalogCourse{
	{
		Slug:        "intro_python",
		Title:       "Introduction to Python",
		Description: "Learn Python basics: variables, control flow and functions.",
		Category:    "Programming",
		Difficulty:  model.DifficultyBeginner,
		Duration:    20,
		Tags:        []string{"python", "basics"},
	},
	{
		Slug:        "basic_math",
		Title:       "Basic Mathematics",
		Description: "Arithmetic, fractions and introductory algebra.",
		Category:    "Math",
		Difficulty:  model.DifficultyBeginner,
		Duration:    15,
		Tags:        []string{"math"},
	},
	{
		Slug:        "web_dev_basics",
		Title:       "Web Development Basics",
		Description: "HTML, CSS and a first taste of JavaScript.",
		Category:    "Programming",
		Difficulty:  model.DifficultyBeginner,
		Duration:    25,
		Tags:        []string{"web", "html", "css"},
	},
	{
		Slug:          "advanced_python",
		Title:         "Advanced Python",
		Description:   "Decorators, generators, async and packaging.",
		Category:      "Programming",
		Difficulty:    model.DifficultyAdvanced,
		Duration:      30,
		Prerequisites: []string{"intro_python"},
		Tags:          []string{"python", "advanced"},
	},
	{
		Slug:          "machine_learning",
		Title:         "Machine Learning Fundamentals",
		Description:   "Supervised learning, model evaluation and pipelines.",
		Category:      "Data Science",
		Difficulty:    model.DifficultyAdvanced,
		Duration:      40,
		Prerequisites: []string{"advanced_python", "basic_math"},
		Tags:          []string{"ml", "python"},
	},
}

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg.Server.Mode)

	client, db, err := database.InitMongo(&cfg.Mongo)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	repo := repository.NewCatalogRepository(db)

	created := 0
	for i := range defaultCourses {
		course := defaultCourses[i]
		existing, err := repo.FindBySlug(ctx, course.Slug)
		if err != nil {
			log.Fatalf("查询课程失败 %s: %v", course.Slug, err)
		}
		if existing != nil {
			log.Printf("课程已存在，跳过: %s", course.Slug)
			continue
		}
		course.CreatedAt = time.Now().UTC()
		if err := repo.Insert(ctx, &course); err != nil {
			log.Fatalf("写入课程失败 %s: %v", course.Slug, err)
		}
		created++
		log.Printf("已创建课程: %s", course.Slug)
	}

	log.Printf("完成，新建 %d 门课程", created)
}
