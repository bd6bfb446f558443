package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"hairhq-api/internal/infrastructure/config"
	"hairhq-api/internal/pkg/common"
)

// Store 生成結果快取介面，memory 與 redis 兩種後端共用
type Store interface {
	// Get 獲取快取值，未命中回傳 common.ErrCacheDisabled
	Get(ctx context.Context, key string) (string, error)

	// Set 設置快取值
	Set(ctx context.Context, key, value string) error

	// Close 關閉快取
	Close() error
}

// Key 由指令與輸入內容生成快取鍵
func Key(instructions, input string) string {
	hash := sha256.Sum256([]byte(instructions + "\x00" + input))
	return fmt.Sprintf("ai:response:%s", hex.EncodeToString(hash[:]))
}

// New 依設定建立快取後端，停用時回傳 nil
func New(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	switch cfg.Cache.Backend {
	case "redis":
		return NewRedisStore(cfg)
	default:
		return NewMemoryStore(cfg), nil
	}
}
