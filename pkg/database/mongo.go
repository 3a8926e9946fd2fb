package database

import (
	"context"
	"fmt"
	"learning_platform_backend/internal/config"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// InitMongo 建立 MongoDB 连接并返回业务库句柄。
// 集合句柄由调用方通过 db.Collection(...) 注入到各 Repository，不暴露包级全局变量。
//
// 注意：(user_id, course_slug) 的报名唯一性由应用层先查后插保证，这里刻意
// 不创建唯一索引，并发窗口见 course_service.go 的说明。
func InitMongo(cfg *config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("MongoDB connection established")
	return client, client.Database(cfg.Database), nil
}
