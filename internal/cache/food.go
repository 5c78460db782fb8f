package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nadespensa/internal/model"

	"github.com/redis/go-redis/v9"
)

const (
	foodKeyPrefix = "food:"
	// 版本鍵需比任何一次讀取存活更久
	versionTTL = 24 * time.Hour
)

// fillScript 只在版本未變時寫入。
// KEYS[1] 紀錄, KEYS[2] 版本; ARGV[1] 讀取前的版本, ARGV[2] JSON, ARGV[3] ttl (ms)
const fillScript = `
local v = redis.call('GET', KEYS[2]) or '0'
if v ~= ARGV[1] then
	return 0
end
if tonumber(ARGV[3]) > 0 then
	redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
else
	redis.call('SET', KEYS[1], ARGV[2])
end
return 1
`

// invalidateScript 先遞增版本再刪除紀錄。
// KEYS[1] 紀錄, KEYS[2] 版本; ARGV[1] 版本 ttl (ms)
const invalidateScript = `
redis.call('INCR', KEYS[2])
redis.call('PEXPIRE', KEYS[2], ARGV[1])
redis.call('DEL', KEYS[1])
return 1
`

// FoodCache is a read-through cache of food records keyed by id.
//
// A reader takes Version before it queries the store and hands it back to
// Fill. Every write goes through Invalidate, which bumps the version, so a
// reader that raced with a write never stores the row it read.
type FoodCache struct {
	c   Cache
	ttl time.Duration
}

func NewFoodCache(c Cache, ttl time.Duration) *FoodCache {
	return &FoodCache{c: c, ttl: ttl}
}

func foodKey(id string) string    { return foodKeyPrefix + id }
func versionKey(id string) string { return foodKeyPrefix + id + ":ver" }

// Get returns the cached record; ok is false on a miss.
func (fc *FoodCache) Get(ctx context.Context, id string) (*model.Food, bool, error) {
	raw, err := fc.c.Get(ctx, foodKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("FoodCache.Get: %w", err)
	}
	var f model.Food
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, false, fmt.Errorf("FoodCache.Get: %w", err)
	}
	return &f, true, nil
}

// Version 回傳目前的寫入版本；尚未寫過為 "0"
func (fc *FoodCache) Version(ctx context.Context, id string) (string, error) {
	v, err := fc.c.Get(ctx, versionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "0", nil
	}
	if err != nil {
		return "", fmt.Errorf("FoodCache.Version: %w", err)
	}
	return v, nil
}

// Fill stores f only if no write happened since version was read.
func (fc *FoodCache) Fill(ctx context.Context, f *model.Food, version string) (bool, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return false, fmt.Errorf("FoodCache.Fill: %w", err)
	}
	n, err := fc.c.Eval(ctx, fillScript,
		[]string{foodKey(f.ID), versionKey(f.ID)},
		version, string(raw), fc.ttl.Milliseconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("FoodCache.Fill: %w", err)
	}
	return n == 1, nil
}

// Invalidate 必須在資料庫寫入成功後呼叫
func (fc *FoodCache) Invalidate(ctx context.Context, id string) error {
	err := fc.c.Eval(ctx, invalidateScript,
		[]string{foodKey(id), versionKey(id)},
		versionTTL.Milliseconds(),
	).Err()
	if err != nil {
		return fmt.Errorf("FoodCache.Invalidate: %w", err)
	}
	return nil
}
