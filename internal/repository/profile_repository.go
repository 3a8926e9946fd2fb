package repository

import (
	"context"
	"errors"
	"learning_platform_backend/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type ProfileRepository struct {
	Coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{Coll: db.Collection(model.UserProfilesCollection)}
}

func (r *ProfileRepository) Insert(ctx context.Context, profile *model.Profile) error {
	res, err := r.Coll.InsertOne(ctx, profile)
	if err != nil {
		return err
	}
	profile.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *ProfileRepository) FindByUser(ctx context.Context, userID bson.ObjectID) (*model.Profile, error) {
	var profile model.Profile
	err := r.Coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// AddCourse 幂等地把课程 slug 加入用户的 registered_courses 集合
func (r *ProfileRepository) AddCourse(ctx context.Context, userID bson.ObjectID, slug string) error {
	_, err := r.Coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$addToSet": bson.M{"registered_courses": slug}},
	)
	return err
}

// RemoveCourseFromAll 把课程 slug 从所有用户的 registered_courses 中移除（目录级联删除用）
func (r *ProfileRepository) RemoveCourseFromAll(ctx context.Context, slug string) error {
	_, err := r.Coll.UpdateMany(ctx,
		bson.M{"registered_courses": slug},
		bson.M{"$pull": bson.M{"registered_courses": slug}},
	)
	return err
}

func (r *ProfileRepository) DeleteByUser(ctx context.Context, userID bson.ObjectID) error {
	_, err := r.Coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
