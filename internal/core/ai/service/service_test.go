package service

import (
	"context"
	"os"
	"testing"
	"time"

	"hairhq-api/internal/core/ai/cache"
	"hairhq-api/internal/core/ai/provider"
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

// fakeProvider 固定回應並計算調用次數
type fakeProvider struct {
	configured bool
	calls      int
	response   *provider.Response
	lastReq    *provider.Request
}

func (f *fakeProvider) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	f.calls++
	f.lastReq = req
	return f.response, nil
}

func (f *fakeProvider) IsConfigured() bool { return f.configured }
func (f *fakeProvider) GetModel() string   { return "test-model" }
func (f *fakeProvider) Close() error       { return nil }

func testConfig(cacheEnabled bool) *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         cacheEnabled,
			Backend:         "memory",
			MaxSize:         100,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
}

func TestGenerateCachesRepeatedRequests(t *testing.T) {
	cfg := testConfig(true)
	store := cache.NewMemoryStore(cfg)
	defer store.Close()

	prov := &fakeProvider{configured: true, response: &provider.Response{ID: "r1", Content: "answer"}}
	svc := NewService(cfg, prov, store)

	ctx := context.Background()
	req := func() *provider.Request {
		return &provider.Request{Instructions: "inst", Input: "input"}
	}

	resp, err := svc.Generate(ctx, req())
	require.NoError(t, err)
	assert.Equal(t, "answer", resp.Content)
	assert.Equal(t, 1, prov.calls)

	resp, err = svc.Generate(ctx, req())
	require.NoError(t, err)
	assert.Equal(t, "answer", resp.Content)
	assert.Equal(t, 1, prov.calls, "第二次應命中快取")
	// 快取回應不帶 response id
	assert.Empty(t, resp.ID)
}

func TestGenerateTrimsInputForCacheKey(t *testing.T) {
	cfg := testConfig(true)
	store := cache.NewMemoryStore(cfg)
	defer store.Close()

	prov := &fakeProvider{configured: true, response: &provider.Response{Content: "answer"}}
	svc := NewService(cfg, prov, store)

	ctx := context.Background()
	_, err := svc.Generate(ctx, &provider.Request{Instructions: "inst", Input: "  input  "})
	require.NoError(t, err)

	_, err = svc.Generate(ctx, &provider.Request{Instructions: "inst", Input: "input"})
	require.NoError(t, err)
	assert.Equal(t, 1, prov.calls)
}

func TestGenerateNoCacheBypassesStore(t *testing.T) {
	cfg := testConfig(true)
	store := cache.NewMemoryStore(cfg)
	defer store.Close()

	prov := &fakeProvider{configured: true, response: &provider.Response{ID: "r1", Content: "answer"}}
	svc := NewService(cfg, prov, store)

	ctx := context.Background()
	req := func() *provider.Request {
		return &provider.Request{Instructions: "inst", Input: "input", NoCache: true}
	}

	resp, err := svc.Generate(ctx, req())
	require.NoError(t, err)
	assert.Equal(t, "r1", resp.ID)

	_, err = svc.Generate(ctx, req())
	require.NoError(t, err)
	assert.Equal(t, 2, prov.calls, "NoCache 請求每次都應打到後端")
}

func TestGenerateContinuationBypassesStore(t *testing.T) {
	cfg := testConfig(true)
	store := cache.NewMemoryStore(cfg)
	defer store.Close()

	prov := &fakeProvider{configured: true, response: &provider.Response{ID: "r2", Content: "answer"}}
	svc := NewService(cfg, prov, store)

	ctx := context.Background()
	req := func() *provider.Request {
		return &provider.Request{Instructions: "inst", Input: "input", PreviousResponseID: "r1"}
	}

	_, err := svc.Generate(ctx, req())
	require.NoError(t, err)
	_, err = svc.Generate(ctx, req())
	require.NoError(t, err)
	assert.Equal(t, 2, prov.calls, "接續請求不可走快取")
}

func TestGenerateNilStore(t *testing.T) {
	cfg := testConfig(true)
	prov := &fakeProvider{configured: true, response: &provider.Response{Content: "answer"}}
	svc := NewService(cfg, prov, nil)

	ctx := context.Background()
	resp, err := svc.Generate(ctx, &provider.Request{Instructions: "inst", Input: "input"})
	require.NoError(t, err)
	assert.Equal(t, "answer", resp.Content)

	_, err = svc.Generate(ctx, &provider.Request{Instructions: "inst", Input: "input"})
	require.NoError(t, err)
	assert.Equal(t, 2, prov.calls)
}

func TestIsConfiguredDelegates(t *testing.T) {
	svc := NewService(testConfig(false), &fakeProvider{configured: false}, nil)
	assert.False(t, svc.IsConfigured())

	svc = NewService(testConfig(false), &fakeProvider{configured: true}, nil)
	assert.True(t, svc.IsConfigured())
}
