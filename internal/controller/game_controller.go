package controller

import (
	"errors"
	"learning_platform_backend/internal/service"
	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GameController struct {
	GameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{GameService: gameService}
}

// GetUserGames godoc
// @Summary 用户游戏进度列表
// @Tags 游戏
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Success 200 {object} util.Response{data=[]model.GameProgress} "成功"
// @Router /api/users/{userId}/games [get]
func (c *GameController) GetUserGames(ctx *gin.Context) {
	games, err := c.GameService.GetUserGames(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		if errors.Is(err, util.ErrInvalidUserID) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Games retrieved successfully", games)
}

// GameProgressRequest 游戏进度上报参数，整体覆盖写
type GameProgressRequest struct {
	Level *int `form:"level" binding:"required,gte=1"`
	XP    *int `form:"xp" binding:"required,gte=0"`
}

// UpdateGameProgress godoc
// @Summary 上报游戏进度
// @Description 覆盖写用户某个游戏的 level/xp，无记录时新建
// @Tags 游戏
// @Produce  json
// @Security ApiKeyAuth
// @Param   userId path string true "用户ID"
// @Param   gameId path string true "游戏ID"
// @Param   level query int true "等级，>=1"
// @Param   xp query int true "经验值，>=0"
// @Success 200 {object} util.Response{data=model.GameProgress} "成功"
// @Router /api/users/{userId}/games/{gameId}/progress [post]
func (c *GameController) UpdateGameProgress(ctx *gin.Context) {
	var req GameProgressRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.GameService.UpdateProgress(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("gameId"), *req.Level, *req.XP)
	if err != nil {
		if errors.Is(err, util.ErrInvalidUserID) {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, "Game progress updated successfully", progress)
}
