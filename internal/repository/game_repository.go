package repository

import (
	"context"
	"errors"
	"learning_platform_backend/internal/model"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type GameProgressRepository struct {
	Coll *mongo.Collection
}

func NewGameProgressRepository(db *mongo.Database) *GameProgressRepository {
	return &GameProgressRepository{Coll: db.Collection(model.GameProgressCollection)}
}

func (r *GameProgressRepository) Insert(ctx context.Context, progress *model.GameProgress) error {
	res, err := r.Coll.InsertOne(ctx, progress)
	if err != nil {
		return err
	}
	progress.ID = res.InsertedID.(bson.ObjectID)
	return nil
}

func (r *GameProgressRepository) FindByUser(ctx context.Context, userID bson.ObjectID) ([]model.GameProgress, error) {
	cursor, err := r.Coll.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var progresses []model.GameProgress
	if err := cursor.All(ctx, &progresses); err != nil {
		return nil, err
	}
	return progresses, nil
}

func (r *GameProgressRepository) FindByUserAndGame(ctx context.Context, userID bson.ObjectID, gameID string) (*model.GameProgress, error) {
	var progress model.GameProgress
	err := r.Coll.FindOne(ctx, bson.M{"user_id": userID, "game_id": gameID}).Decode(&progress)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *GameProgressRepository) Update(ctx context.Context, id bson.ObjectID, level, xp int, lastPlayed time.Time) error {
	_, err := r.Coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"level":       level,
		"xp":          xp,
		"last_played": lastPlayed,
	}})
	return err
}

func (r *GameProgressRepository) DeleteByUser(ctx context.Context, userID bson.ObjectID) error {
	_, err := r.Coll.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
