package repository

import (
	"context"
	"errors"
	"learning_platform_backend/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type EnrollmentRepository struct {
	Coll *mongo.Collection
}

func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{Coll: db.Collection(model.UserCoursesCollection)}
}

func (r *EnrollmentRepository) Insert(ctx context.Context, enrollment *model.Enrollment) error {
	res, err := r.Coll.InsertOne(ctx, enrollment)
	if err != nil {
		return err
	}
	enrollment.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *EnrollmentRepository) FindByUserAndSlug(ctx context.Context, userID bson.ObjectID, slug string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.Coll.FindOne(ctx, bson.M{"user_id": userID, "course_slug": slug}).Decode(&enrollment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.Enrollment, error) {
	cursor, err := r.Coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var enrollments []model.Enrollment
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// UpdateProgress 覆写进度并刷新 last_accessed；completed 传 nil 表示保持原值
func (r *EnrollmentRepository) UpdateProgress(ctx context.Context, id bson.ObjectID, progress int, completed *bool, lastAccessed time.Time) error {
	set := bson.M{
		"progress":      progress,
		"last_accessed": lastAccessed,
	}
	if completed != nil {
		set["completed"] = *completed
	}
	_, err := r.Coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

func (r *EnrollmentRepository) DeleteBySlug(ctx context.Context, slug string) (int64, error) {
	res, err := r.Coll.DeleteMany(ctx, bson.M{"course_slug": slug})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *EnrollmentRepository) DeleteByUser(ctx context.Context, userID bson.ObjectID) (int64, error) {
	res, err := r.Coll.DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *EnrollmentRepository) CountAll(ctx context.Context) (int64, error) {
	return r.Coll.CountDocuments(ctx, bson.M{})
}

func (r *EnrollmentRepository) CountBySlug(ctx context.Context, slug string) (int64, error) {
	return r.Coll.CountDocuments(ctx, bson.M{"course_slug": slug})
}

func (r *EnrollmentRepository) CountDistinctUsers(ctx context.Context) (int, error) {
	var ids []bson.ObjectID
	if err := r.Coll.Distinct(ctx, "user_id", bson.M{}).Decode(&ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// PopularCourses 按报名数取前 N 门课程
func (r *EnrollmentRepository) PopularCourses(ctx context.Context, limit int) ([]model.SlugCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$course_slug"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}
	cursor, err := r.Coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var counts []model.SlugCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// RecentBySlug 指定课程的最近报名，关联 users 带出用户信息
func (r *EnrollmentRepository) RecentBySlug(ctx context.Context, slug string, limit int) ([]model.EnrollmentWithUser, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "course_slug", Value: slug}}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "enrolled_at", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: model.UsersCollection},
			{Key: "localField", Value: "user_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		bson.D{{Key: "$unwind", Value: "$user"}},
	}
	cursor, err := r.Coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var enrollments []model.EnrollmentWithUser
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}
