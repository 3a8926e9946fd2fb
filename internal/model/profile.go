package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const UserProfilesCollection = "user_profiles"

// Profile 用户画像，注册时由 SeedService 创建，每个用户一条。
// Role 为创建时的快照，后续修改用户角色不会回写到这里。
// RegisteredCourses 是 user_courses 的按用户冗余镜像，所有报名/删除操作必须同步维护。
// swagger:model Profile
type Profile struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            bson.ObjectID `bson:"user_id" json:"userId"`
	Role              UserRole      `bson:"role" json:"role"`
	RegisteredCourses []string      `bson:"registered_courses" json:"registeredCourses"`
	CreatedAt         time.Time     `bson:"created_at" json:"createdAt"`
}
