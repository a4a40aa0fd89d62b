package balance

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Source источник снимков баланса (репозиторий БД)
type Source interface {
	GetLatestByMemberIDs(ctx context.Context, memberIDs []int64) (map[int64]int64, error)
	GetLatestByMemberID(ctx context.Context, memberID int64) (int64, error)
}

// RedisClient подмножество команд Redis, которые использует кэш
// Реализуется *redis.Client
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	MGet(ctx context.Context, keys ...string) *redis.SliceCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
