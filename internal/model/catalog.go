package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const CourseCatalogCollection = "course_catalog"

// 课程难度，约定值，不做存储层强校验
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// CatalogCourse 课程目录条目，slug 全局唯一且创建后不可修改。
// swagger:model CatalogCourse
type CatalogCourse struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Slug          string        `bson:"slug" json:"slug"`
	Title         string        `bson:"title" json:"title"`
	Description   string        `bson:"description" json:"description"`
	Category      string        `bson:"category" json:"category"`
	Difficulty    string        `bson:"difficulty" json:"difficulty"`
	Duration      int           `bson:"duration" json:"duration"`
	TotalQuizzes  int           `bson:"total_quizzes" json:"totalQuizzes"`
	TotalLessons  int           `bson:"total_lessons" json:"totalLessons"`
	Instructor    string        `bson:"instructor" json:"instructor"`
	Prerequisites []string      `bson:"prerequisites" json:"prerequisites"`
	Tags          []string      `bson:"tags" json:"tags"`
	Thumbnail     string        `bson:"thumbnail" json:"thumbnail"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt     *time.Time    `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// SlugCount 按课程分组的报名计数（聚合结果项）。
type SlugCount struct {
	Slug  string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// ValueCount 按字段值分组的计数（类别/难度分布）。
type ValueCount struct {
	Value string `bson:"_id" json:"_id"`
	Count int64  `bson:"count" json:"count"`
}

// CatalogStats 课程目录统计快照。
// swagger:model CatalogStats
type CatalogStats struct {
	TotalCourses        int64        `json:"total_courses"`
	TotalEnrollments    int64        `json:"total_enrollments"`
	UniqueEnrolledUsers int          `json:"unique_enrolled_users"`
	PopularCourses      []SlugCount  `json:"popular_courses"`
	Categories          []ValueCount `json:"categories"`
	Difficulties        []ValueCount `json:"difficulties"`
}
