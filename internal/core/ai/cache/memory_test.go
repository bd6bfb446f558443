package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"hairhq-api/internal/infrastructure/config"
	"hairhq-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

func testConfig(maxSize int, ttl time.Duration) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         maxSize,
			TTL:             ttl,
			CleanupInterval: time.Minute,
		},
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore(testConfig(10, time.Minute))
	defer store.Close()

	ctx := context.Background()
	key := Key("instructions", "input")

	_, err := store.Get(ctx, key)
	assert.ErrorIs(t, err, common.ErrCacheDisabled)

	require.NoError(t, store.Set(ctx, key, "cached value"))

	val, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "cached value", val)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore(testConfig(10, 10*time.Millisecond))
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", "v"))

	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, common.ErrCacheDisabled)
}

func TestMemoryStoreLRUEviction(t *testing.T) {
	store := NewMemoryStore(testConfig(2, time.Minute))
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))

	// 提高 a 的訪問次數，b 成為淘汰對象
	_, err := store.Get(ctx, "a")
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "c", "3"))

	_, err = store.Get(ctx, "a")
	assert.NoError(t, err)
	_, err = store.Get(ctx, "b")
	assert.ErrorIs(t, err, common.ErrCacheDisabled)
	_, err = store.Get(ctx, "c")
	assert.NoError(t, err)
}

func TestMemoryStoreStats(t *testing.T) {
	store := NewMemoryStore(testConfig(10, time.Minute))
	defer store.Close()

	ctx := context.Background()
	_, _ = store.Get(ctx, "missing")
	require.NoError(t, store.Set(ctx, "k", "v"))
	_, _ = store.Get(ctx, "k")

	stats := store.GetStats()
	assert.Equal(t, 1, stats["size"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
}

func TestKeyDeterministic(t *testing.T) {
	k1 := Key("inst", "input")
	k2 := Key("inst", "input")
	assert.Equal(t, k1, k2)
	assert.Contains(t, k1, "ai:response:")
}

func TestKeySeparatesInstructionsFromInput(t *testing.T) {
	// 邊界不同但串接後相同的輸入必須產生不同的鍵
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
	assert.NotEqual(t, Key("inst", "x"), Key("inst", "y"))
}

func TestNewDisabledReturnsNil(t *testing.T) {
	cfg := &config.Config{Cache: config.CacheConfig{Enabled: false}}
	store, err := New(cfg)
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestNewMemoryBackend(t *testing.T) {
	store, err := New(testConfig(10, time.Minute))
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	_, ok := store.(*MemoryStore)
	assert.True(t, ok)
}
