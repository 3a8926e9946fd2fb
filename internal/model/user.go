package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type UserRole string

const (
	RoleUser       UserRole = "User"
	RoleStudent    UserRole = "Student"
	RoleInstructor UserRole = "Instructor"
)

const UsersCollection = "users"

// swagger:model User
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string        `bson:"email" json:"email"`
	Password  string        `bson:"password" json:"-"`
	FirstName string        `bson:"first_name" json:"firstName"`
	LastName  string        `bson:"last_name" json:"lastName"`
	Role      UserRole      `bson:"role" json:"role"`
	IsActive  bool          `bson:"is_active" json:"isActive"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
}
