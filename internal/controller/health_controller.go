package controller

import (
	"learning_platform_backend/internal/util"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type HealthController struct {
	Mongo *mongo.Client
	Redis *redis.Client
}

func NewHealthController(mongoClient *mongo.Client, redisClient *redis.Client) *HealthController {
	return &HealthController{Mongo: mongoClient, Redis: redisClient}
}

// @Summary 健康检查
// @Description 检查服务及依赖组件状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	components := gin.H{"database": "up", "cache": "up"}
	status := "ok"

	if err := c.Mongo.Ping(ctx.Request.Context(), readpref.Primary()); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	// 缓存挂掉只降级，不拒绝服务
	if c.Redis != nil {
		if err := c.Redis.Ping(ctx.Request.Context()).Err(); err != nil {
			components["cache"] = "down"
			status = "degraded"
		}
	}

	util.Success(ctx, "Service health", gin.H{
		"status":     status,
		"components": components,
	})
}
