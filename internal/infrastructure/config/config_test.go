package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Cache: CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         100,
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
		},
		Prompt: PromptConfig{
			HistoryLimit:        8,
			PlanContextMaxChars: 2000,
			MinRoutineSteps:     4,
			StrictRoutineSteps:  6,
		},
	}
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, validateConfig(validTestConfig()))
}

func TestValidateConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"缺少 port", func(c *Config) { c.Server.Port = 0 }},
		{"未知快取後端", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"快取容量為零", func(c *Config) { c.Cache.MaxSize = 0 }},
		{"TTL 為零", func(c *Config) { c.Cache.TTL = 0 }},
		{"歷史輪數為負", func(c *Config) { c.Prompt.HistoryLimit = -1 }},
		{"上下文長度為零", func(c *Config) { c.Prompt.PlanContextMaxChars = 0 }},
		{"嚴格步數低於門檻", func(c *Config) { c.Prompt.StrictRoutineSteps = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			assert.Error(t, validateConfig(cfg))
		})
	}
}

func TestValidateConfigCacheDisabledSkipsCacheChecks(t *testing.T) {
	cfg := validTestConfig()
	cfg.Cache = CacheConfig{Enabled: false}
	assert.NoError(t, validateConfig(cfg))
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", maskAPIKey(""))
	assert.Equal(t, "****", maskAPIKey("short"))
	assert.Equal(t, "sk-a...wxyz", maskAPIKey("sk-abcdefghijklmnopqrstuvwxyz"))
}
