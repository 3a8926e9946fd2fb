package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const UserCoursesCollection = "user_courses"

// Enrollment 课程报名记录，(user_id, course_slug) 应用层唯一。
// Category/Difficulty 为报名时从课程目录拷贝的快照。
// swagger:model Enrollment
type Enrollment struct {
	ID           bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       bson.ObjectID `bson:"user_id" json:"userId"`
	CourseSlug   string        `bson:"course_slug" json:"courseSlug"`
	Category     string        `bson:"category" json:"category"`
	Difficulty   string        `bson:"difficulty" json:"difficulty"`
	Progress     int           `bson:"progress" json:"progress"`
	Completed    bool          `bson:"completed" json:"completed"`
	LastAccessed *time.Time    `bson:"last_accessed" json:"lastAccessed"`
	EnrolledAt   time.Time     `bson:"enrolled_at" json:"enrolledAt"`
}

// EnrollmentWithUser 课程最近报名列表项（带用户信息的 $lookup 结果）。
type EnrollmentWithUser struct {
	ID           bson.ObjectID `bson:"_id" json:"id"`
	User         User          `bson:"user" json:"user"`
	Progress     int           `bson:"progress" json:"progress"`
	Completed    bool          `bson:"completed" json:"completed"`
	EnrolledAt   time.Time     `bson:"enrolled_at" json:"enrolledAt"`
	LastAccessed *time.Time    `bson:"last_accessed" json:"lastAccessed"`
}
