package balance

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "timetable:balance:"

// Repository кэширующая обёртка над источником снимков баланса
// Снимок баланса и так "последний известный", поэтому устаревание на TTL допустимо.
// Ошибки Redis не роняют запрос: чтение уходит в источник
type Repository struct {
	next   Source
	client RedisClient
	ttl    time.Duration
	logger Logger
}

// NewRepository создает кэширующий репозиторий балансов
func NewRepository(next Source, client RedisClient, ttl time.Duration, logger Logger) *Repository {
	return &Repository{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(memberID int64) string {
	return keyPrefix + strconv.FormatInt(memberID, 10)
}

// GetLatestByMemberIDs возвращает снимки из кэша, недостающие добирает из источника
func (r *Repository) GetLatestByMemberIDs(ctx context.Context, memberIDs []int64) (map[int64]int64, error) {
	balances := make(map[int64]int64, len(memberIDs))
	if len(memberIDs) == 0 {
		return balances, nil
	}

	keys := make([]string, len(memberIDs))
	for i, id := range memberIDs {
		keys[i] = cacheKey(id)
	}

	missing := memberIDs
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("BalanceCache: MGet failed, falling back to database: %v", err)
	} else {
		missing = make([]int64, 0, len(memberIDs))
		for i, v := range values {
			balance, ok := decodeValue(v)
			if !ok {
				missing = append(missing, memberIDs[i])
				continue
			}
			balances[memberIDs[i]] = balance
		}
	}

	if len(missing) == 0 {
		return balances, nil
	}

	fetched, err := r.next.GetLatestByMemberIDs(ctx, missing)
	if err != nil {
		return nil, err
	}

	for id, balance := range fetched {
		balances[id] = balance
		r.store(ctx, id, balance)
	}

	return balances, nil
}

// GetLatestByMemberID возвращает снимок одного участника
func (r *Repository) GetLatestByMemberID(ctx context.Context, memberID int64) (int64, error) {
	raw, err := r.client.Get(ctx, cacheKey(memberID)).Result()
	switch {
	case err == nil:
		if balance, perr := strconv.ParseInt(raw, 10, 64); perr == nil {
			return balance, nil
		}
		r.logger.Warn("BalanceCache: corrupted value for member=%d: %q", memberID, raw)
	case errors.Is(err, redis.Nil):
	default:
		r.logger.Error("BalanceCache: Get failed for member=%d, falling back to database: %v", memberID, err)
	}

	balance, err := r.next.GetLatestByMemberID(ctx, memberID)
	if err != nil {
		return 0, err
	}

	r.store(ctx, memberID, balance)
	return balance, nil
}

func (r *Repository) store(ctx context.Context, memberID int64, balance int64) {
	if err := r.client.Set(ctx, cacheKey(memberID), strconv.FormatInt(balance, 10), r.ttl).Err(); err != nil {
		r.logger.Warn("BalanceCache: failed to store balance for member=%d: %v", memberID, err)
	}
}

// decodeValue разбирает значение из MGet (nil для отсутствующего ключа)
func decodeValue(v interface{}) (int64, bool) {
	var s string
	switch val := v.(type) {
	case string:
		s = val
	case []byte:
		s = string(val)
	case nil:
		return 0, false
	default:
		s = fmt.Sprint(val)
	}

	balance, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return balance, true
}
