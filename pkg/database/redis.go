package database

import (
	"context"
	"fmt"

	"savings-core/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis 连接到 Redis 并 Ping 一次
func ConnectRedis(addr string, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("无法连接到 Redis: %w", err)
	}

	logger.Info("Redis 连接成功")
	return rdb, nil
}
