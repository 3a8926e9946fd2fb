// @title Learning Platform 后端 API
// @version 1.0
// @description 学习平台后端服务：用户、课程目录、报名进度、测验与学习游戏。

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"learning_platform_backend/internal/app"
	"learning_platform_backend/internal/config"
	"log"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg, "configs/config.yaml")
	application.Run()
}
