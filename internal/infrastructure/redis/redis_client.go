package redis

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient は環境変数の接続先でRedisクライアントを生成します。
// REDIS_HOST が未設定の場合は localhost:6379 を使います。接続確認に失敗した
// 場合はエラーを返し、呼び出し側はキャッシュなしで動作を継続します。
func NewRedisClient() (*redis.Client, error) {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}
	password := os.Getenv("REDIS_PASSWORD")

	rdb := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", host+":"+port, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", host+":"+port)
	return rdb, nil
}
