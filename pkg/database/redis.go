package database

import (
	"context"

	"github.com/go-redis/redis/v8"

	"ai-assistant-go/pkg/log"
)

// InitRedis 建立 Redis 客户端连接并做一次连通性检查。
// 返回客户端句柄，由调用方注入，不保留包级单例。
func InitRedis(addr, password string, db int) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatal("failed to connect to redis", err)
	}

	log.Info("Redis client connected successfully")
	return rdb
}
