package provider

import (
	"context"
	"time"
)

// Request 表示發送到生成後端的請求
// PreviousResponseID 讓後端自行接續先前的對話，服務本身不保存歷史
type Request struct {
	Instructions       string  `json:"instructions"`
	Input              string  `json:"input"`
	Temperature        float64 `json:"temperature,omitempty"`
	PreviousResponseID string  `json:"previous_response_id,omitempty"`

	// NoCache 跳過回應快取；接續對話的請求不可快取，否則會遺失新的 response id
	NoCache bool `json:"-"`
}

// Response 表示從生成後端收到的響應
type Response struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Usage   struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

// Provider 定義生成後端介面
// 未設定憑證時 Generate 必須在發出任何網路請求前回傳 common.ErrAINotConfigured
type Provider interface {
	// Generate 生成回應
	Generate(ctx context.Context, req *Request) (*Response, error)

	// IsConfigured 是否已設定 API 憑證
	IsConfigured() bool

	// GetModel 獲取當前使用的模型名稱
	GetModel() string

	// Close 關閉提供者連接
	Close() error
}

// Config 定義生成後端配置
type Config struct {
	APIKey      string
	Model       string
	Temperature float64
	Timeout     time.Duration
	BaseURL     string
}
