package repository

import (
	"context"
	"learning_platform_backend/internal/model"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type QuizQuestionRepository struct {
	Coll *mongo.Collection
}

func NewQuizQuestionRepository(db *mongo.Database) *QuizQuestionRepository {
	return &QuizQuestionRepository{Coll: db.Collection(model.QuizQuestionsCollection)}
}

func (r *QuizQuestionRepository) Insert(ctx context.Context, question *model.QuizQuestion) error {
	res, err := r.Coll.InsertOne(ctx, question)
	if err != nil {
		return err
	}
	question.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *QuizQuestionRepository) FindByQuiz(ctx context.Context, quizID string) ([]model.QuizQuestion, error) {
	cursor, err := r.Coll.Find(ctx, bson.M{"quiz_id": quizID})
	if err != nil {
		return nil, err
	}
	var questions []model.QuizQuestion
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuizQuestionRepository) FindAll(ctx context.Context) ([]model.QuizQuestion, error) {
	cursor, err := r.Coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var questions []model.QuizQuestion
	if err := cursor.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}
