package hair

import (
	"context"
	"strings"
	"time"

	"hairhq-api/internal/core/ai/provider"
	"hairhq-api/internal/pkg/common"

	"go.uber.org/zap"
)

// ChatService 髮型建議聊天服務
type ChatService struct {
	gen  Generator
	opts PromptOptions
}

// NewChatService 創建髮型建議聊天服務
func NewChatService(gen Generator, opts PromptOptions) *ChatService {
	return &ChatService{
		gen:  gen,
		opts: opts,
	}
}

// Chat 生成髮型建議
// style_details 只保留 title 與 style_ideas 對得上的條目，style_ideas 本身不過濾
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if !s.gen.IsConfigured() {
		return nil, common.ErrAINotConfigured
	}

	message := ResolveChatMessage(req.Message)
	input := ChatUserInput(req.Profile, req.History, req.PlanContext, message, s.opts)

	start := time.Now()
	resp, err := s.gen.Generate(ctx, &provider.Request{
		Instructions:       ChatInstructions(),
		Input:              input,
		PreviousResponseID: req.PreviousResponseID,
		NoCache:            true, // 每次對話都要取得新的 response id
	})
	common.LogAICall("chat", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	parsed := ExtractJSON(resp.Content)

	reply, _ := parsed["reply"].(string)
	ideas := coerceStringList(parsed["style_ideas"])
	details, detailsIsList := coerceStyleDetails(parsed["style_details"])

	// 軟性驗證：避免建議清單與詳細條目彼此對不上
	if detailsIsList && len(ideas) > 0 {
		details = FilterStyleDetails(ideas, details)
	}

	common.LogDebug("聊天生成完成",
		zap.Int("style_ideas", len(ideas)),
		zap.Int("style_details", len(details)),
	)

	return &ChatResult{
		Reply:        reply,
		StyleIdeas:   ideas,
		StyleDetails: details,
		ResponseID:   resp.ID,
	}, nil
}

// FilterStyleDetails 只保留 title 去除空白後能對上某個 idea 的條目
func FilterStyleDetails(ideas []string, details []StyleDetail) []StyleDetail {
	allowed := make(map[string]bool, len(ideas))
	for _, idea := range ideas {
		if s := strings.TrimSpace(idea); s != "" {
			allowed[s] = true
		}
	}

	filtered := make([]StyleDetail, 0, len(details))
	for _, d := range details {
		if allowed[strings.TrimSpace(d.Title)] {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

// coerceStringList 非列表型別一律降級為空列表，列表中僅保留字串元素
func coerceStringList(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// coerceStyleDetails 將解析結果整形為詳細條目列表，並回報原值是否為列表
func coerceStyleDetails(v interface{}) ([]StyleDetail, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return []StyleDetail{}, false
	}
	out := make([]StyleDetail, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		d := StyleDetail{}
		d.Title, _ = entry["title"].(string)
		d.Why, _ = entry["why"].(string)
		d.ImageSearch, _ = entry["image_search"].(string)
		d.YouTubeSearch, _ = entry["youtube_search"].(string)
		out = append(out, d)
	}
	return out, true
}
