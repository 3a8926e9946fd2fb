package repository

import (
	"context"
	"learning_platform_backend/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type QuizAttemptRepository struct {
	Coll *mongo.Collection
}

func NewQuizAttemptRepository(db *mongo.Database) *QuizAttemptRepository {
	return &QuizAttemptRepository{Coll: db.Collection(model.QuizProgressCollection)}
}

func (r *QuizAttemptRepository) Insert(ctx context.Context, attempt *model.QuizAttempt) error {
	res, err := r.Coll.InsertOne(ctx, attempt)
	if err != nil {
		return err
	}
	attempt.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *QuizAttemptRepository) FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.QuizAttempt, error) {
	cursor, err := r.Coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var attempts []model.QuizAttempt
	if err := cursor.All(ctx, &attempts); err != nil {
		return nil, err
	}
	return attempts, nil
}

func (r *QuizAttemptRepository) DeleteByUser(ctx context.Context, userID bson.ObjectID) error {
	_, err := r.Coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
