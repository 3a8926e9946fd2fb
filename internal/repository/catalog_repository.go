package repository

import (
	"context"
	"errors"
	"learning_platform_backend/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type CatalogRepository struct {
	Coll *mongo.Collection
}

func NewCatalogRepository(db *mongo.Database) *CatalogRepository {
	return &CatalogRepository{Coll: db.Collection(model.CourseCatalogCollection)}
}

func (r *CatalogRepository) Insert(ctx context.Context, course *model.CatalogCourse) error {
	res, err := r.Coll.InsertOne(ctx, course)
	if err != nil {
		return err
	}
	course.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *CatalogRepository) FindBySlug(ctx context.Context, slug string) (*model.CatalogCourse, error) {
	var course model.CatalogCourse
	err := r.Coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// Find 按类别/难度过滤，search 为大小写不敏感的标题/描述/标签子串匹配
func (r *CatalogRepository) Find(ctx context.Context, category, difficulty, search string) ([]model.CatalogCourse, error) {
	query := bson.M{}
	if category != "" {
		query["category"] = category
	}
	if difficulty != "" {
		query["difficulty"] = difficulty
	}
	if search != "" {
		regex := bson.M{"$regex": search, "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"title": regex},
			bson.M{"description": regex},
			bson.M{"tags": regex},
		}
	}

	cursor, err := r.Coll.Find(ctx, query)
	if err != nil {
		return nil, err
	}
	var courses []model.CatalogCourse
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *CatalogRepository) UpdateBySlug(ctx context.Context, slug string, fields bson.M) error {
	_, err := r.Coll.UpdateOne(ctx, bson.M{"slug": slug}, bson.M{"$set": fields})
	return err
}

func (r *CatalogRepository) DeleteBySlug(ctx context.Context, slug string) (int64, error) {
	res, err := r.Coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *CatalogRepository) CountAll(ctx context.Context) (int64, error) {
	return r.Coll.CountDocuments(ctx, bson.M{})
}

// GroupByField 按字段值统计数量，降序（类别/难度分布用）
func (r *CatalogRepository) GroupByField(ctx context.Context, field string) ([]model.ValueCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	cursor, err := r.Coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var counts []model.ValueCount
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
