package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const GameProgressCollection = "game_progress"

// GameProgress 每个 (user_id, game_id) 一条，首次上报时创建。
// swagger:model GameProgress
type GameProgress struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     bson.ObjectID `bson:"user_id" json:"userId"`
	GameID     string        `bson:"game_id" json:"gameId"`
	Level      int           `bson:"level" json:"level"`
	XP         int           `bson:"xp" json:"xp"`
	LastPlayed *time.Time    `bson:"last_played" json:"lastPlayed"`
}
