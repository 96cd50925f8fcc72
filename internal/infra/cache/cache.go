package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Dauletnazarr/donation-project/database"
	"github.com/Dauletnazarr/donation-project/internal/infra/logging"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// CollectsPageKey names the cached listing page. Only the first page with the
// default limit is invalidated on writes; other pages expire by TTL.
func CollectsPageKey(page, limit int) string {
	return fmt.Sprintf("collects_page_%d_limit_%d", page, limit)
}

var FirstCollectsPageKey = CollectsPageKey(DefaultPage, DefaultLimit)

// GetRaw returns the cached bytes for key. A miss, a disabled cache and a
// redis failure all report ok=false; failures are logged, never returned, so
// reads fall through to the database.
func GetRaw(ctx context.Context, key string) ([]byte, bool) {
	if database.Rdb == nil {
		return nil, false
	}
	b, err := database.Rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logging.Log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		}
		return nil, false
	}
	return b, true
}

// Get decodes the cached JSON value for key into dst.
func Get(ctx context.Context, key string, dst interface{}) bool {
	b, ok := GetRaw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		logging.Log.Warn().Err(err).Str("key", key).Msg("cache entry is not valid json")
		return false
	}
	return true
}

// Set stores v as JSON under key for ttl and returns the encoded bytes.
func Set(ctx context.Context, key string, v interface{}, ttl time.Duration) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode cache entry %s: %w", key, err)
	}
	if database.Rdb == nil {
		return b, nil
	}
	if err := database.Rdb.Set(ctx, key, b, ttl).Err(); err != nil {
		logging.Log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	return b, nil
}

// Delete drops keys. Errors are logged only.
func Delete(ctx context.Context, keys ...string) {
	if database.Rdb == nil || len(keys) == 0 {
		return
	}
	if err := database.Rdb.Del(ctx, keys...).Err(); err != nil {
		logging.Log.Warn().Err(err).Strs("keys", keys).Msg("cache delete failed")
	}
}

// InvalidateCollects drops the first listing page after any collect or payment write.
func InvalidateCollects(ctx context.Context) {
	Delete(ctx, FirstCollectsPageKey)
}
