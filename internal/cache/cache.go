package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache 定義快取操作介面
// 用於封裝 Redis，測試時以 FakeCache 取代
// ttl <= 0 表示不設過期
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
	Close() error
}

type FakeCache struct {
	GetFn   func(ctx context.Context, key string) *redis.StringCmd
	SetFn   func(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	EvalFn  func(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd
	CloseFn func() error
}

// Get 執行 Fake 設定或 panic
func (f *FakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if f.GetFn != nil {
		return f.GetFn(ctx, key)
	}
	panic("unexpected Get")
}

// Set 執行 Fake 設定或 panic
func (f *FakeCache) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	if f.SetFn != nil {
		return f.SetFn(ctx, key, value, expiration)
	}
	panic("unexpected Set")
}

// Eval 執行 Fake 設定或 panic
func (f *FakeCache) Eval(ctx context.Context, script string, keys []string, args ...any) *redis.Cmd {
	if f.EvalFn != nil {
		return f.EvalFn(ctx, script, keys, args...)
	}
	panic("unexpected Eval")
}

// Close 執行 Fake 設定或 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}

// MemCache 以 map 模擬 Redis，Eval 只認得 FoodCache 的腳本。TTL 不生效。
type MemCache struct {
	mu   sync.Mutex
	Data map[string]string
}

func NewMemCache() *MemCache {
	return &MemCache{Data: map[string]string{}}
}

func (m *MemCache) Get(_ context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.Data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *MemCache) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch v := value.(type) {
	case []byte:
		m.Data[key] = string(v)
	default:
		m.Data[key] = fmt.Sprint(v)
	}
	return redis.NewStatusResult("OK", nil)
}

func (m *MemCache) Eval(_ context.Context, script string, keys []string, args ...any) *redis.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch script {
	case fillScript:
		v, ok := m.Data[keys[1]]
		if !ok {
			v = "0"
		}
		if v != fmt.Sprint(args[0]) {
			return redis.NewCmdResult(int64(0), nil)
		}
		m.Data[keys[0]] = fmt.Sprint(args[1])
		return redis.NewCmdResult(int64(1), nil)
	case invalidateScript:
		n, _ := strconv.Atoi(m.Data[keys[1]])
		m.Data[keys[1]] = strconv.Itoa(n + 1)
		delete(m.Data, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(nil, errors.New("MemCache: unknown script"))
}

func (m *MemCache) Close() error { return nil }
