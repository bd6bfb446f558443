package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"hairhq-api/internal/core/ai/provider"
	"hairhq-api/internal/infrastructure/config"
	"hairhq-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://api.openai.com/v1"

// Client OpenAI Responses API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建 OpenAI 客戶端
// APIKey 為空仍回傳可用的客戶端，Generate 會在撥號前短路
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.OpenAI.APIKey)).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.OpenAI.Timeout)

	return &Client{
		config: cfg,
		client: client,
	}
}

// IsConfigured 是否已設定 API 憑證
func (c *Client) IsConfigured() bool {
	return strings.TrimSpace(c.config.OpenAI.APIKey) != ""
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.config.OpenAI.Model
}

// responsesRequest Responses API 請求體
type responsesRequest struct {
	Model              string  `json:"model"`
	Instructions       string  `json:"instructions,omitempty"`
	Input              string  `json:"input"`
	Temperature        float64 `json:"temperature,omitempty"`
	PreviousResponseID string  `json:"previous_response_id,omitempty"`
}

// responsesResponse Responses API 響應體
// output 內容項中 type 為 output_text 的 text 即為生成文字
type responsesResponse struct {
	ID     string `json:"id"`
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Generate 生成回應
func (c *Client) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	// 未設定憑證時不發出任何網路請求
	if !c.IsConfigured() {
		return nil, common.ErrAINotConfigured
	}

	body := responsesRequest{
		Model:              c.config.OpenAI.Model,
		Instructions:       req.Instructions,
		Input:              req.Input,
		Temperature:        req.Temperature,
		PreviousResponseID: req.PreviousResponseID,
	}
	if body.Temperature == 0 {
		body.Temperature = c.config.OpenAI.Temperature
	}

	common.LogDebug("Sending request to OpenAI",
		zap.String("model", body.Model),
		zap.Int("input_length", len(req.Input)),
		zap.Bool("has_previous_response", req.PreviousResponseID != ""),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/responses")

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrAICallFailed, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: OpenAI API returned status %d: %s", common.ErrAICallFailed, resp.StatusCode(), resp.String())
	}

	var result responsesResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to parse OpenAI response: %v", common.ErrAICallFailed, err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("%w: %s", common.ErrAICallFailed, result.Error.Message)
	}

	// 聚合所有 output_text 片段
	var sb strings.Builder
	for _, item := range result.Output {
		for _, content := range item.Content {
			if content.Type == "output_text" {
				sb.WriteString(content.Text)
			}
		}
	}

	if sb.Len() == 0 {
		return nil, fmt.Errorf("%w: empty output in OpenAI response", common.ErrAICallFailed)
	}

	out := &provider.Response{
		ID:      result.ID,
		Content: sb.String(),
	}
	out.Usage.InputTokens = result.Usage.InputTokens
	out.Usage.OutputTokens = result.Usage.OutputTokens
	out.Usage.TotalTokens = result.Usage.TotalTokens

	common.LogInfo("Successfully generated response from OpenAI",
		zap.String("model", body.Model),
		zap.Int("content_length", len(out.Content)),
		zap.Int("total_tokens", out.Usage.TotalTokens),
	)

	return out, nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
