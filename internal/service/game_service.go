package service

import (
	"context"
	"learning_platform_backend/internal/model"
	"time"
)

type GameService struct {
	GameRepo GameRepo
}

func NewGameService(gameRepo GameRepo) *GameService {
	return &GameService{GameRepo: gameRepo}
}

func (s *GameService) GetUserGames(ctx context.Context, userID string) ([]model.GameProgress, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	return s.GameRepo.FindByUser(ctx, oid)
}

// UpdateProgress 按 (user_id, game_id) 覆盖写：没有记录就新建，
// 有记录就整体替换 level/xp，不做只增不减的保护。
func (s *GameService) UpdateProgress(ctx context.Context, userID, gameID string, level, xp int) (*model.GameProgress, error) {
	oid, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing, err := s.GameRepo.FindByUserAndGame(ctx, oid, gameID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		progress := &model.GameProgress{
			UserID:     oid,
			GameID:     gameID,
			Level:      level,
			XP:         xp,
			LastPlayed: &now,
		}
		if err := s.GameRepo.Insert(ctx, progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	if err := s.GameRepo.Update(ctx, existing.ID, level, xp, now); err != nil {
		return nil, err
	}
	existing.Level = level
	existing.XP = xp
	existing.LastPlayed = &now
	return existing, nil
}
