package service

import (
	"context"
	"strings"
	"time"

	"hairhq-api/internal/core/ai/cache"
	"hairhq-api/internal/core/ai/provider"
	"hairhq-api/internal/infrastructure/config"
	"hairhq-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Service AI 服務，統一快取查找與後端調用
type Service struct {
	config   *config.Config
	provider provider.Provider
	store    cache.Store
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, prov provider.Provider, store cache.Store) *Service {
	return &Service{
		config:   cfg,
		provider: prov,
		store:    store,
	}
}

// IsConfigured 是否已設定 API 憑證
func (s *Service) IsConfigured() bool {
	return s.provider.IsConfigured()
}

// Generate 統一對外方法
// 帶接續 token 或標記 NoCache 的請求不走快取
func (s *Service) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	cacheable := s.config.Cache.Enabled && s.store != nil &&
		!req.NoCache && req.PreviousResponseID == ""

	// 統一輸入格式，確保快取 key 一致
	req.Input = strings.TrimSpace(req.Input)

	key := cache.Key(req.Instructions, req.Input)
	if cacheable {
		if val, err := s.store.Get(ctx, key); err == nil && val != "" {
			common.LogInfo("快取命中", zap.String("鍵", key))
			return &provider.Response{Content: val}, nil
		}
	}

	start := time.Now()
	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	common.LogDebug("生成完成",
		zap.Duration("耗時", time.Since(start)),
		zap.Int("content_length", len(resp.Content)),
	)

	if cacheable {
		_ = s.store.Set(ctx, key, resp.Content)
	}

	return resp, nil
}

// Close 關閉服務
func (s *Service) Close() error {
	return s.provider.Close()
}
