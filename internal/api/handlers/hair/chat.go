package hair

import (
	"errors"
	"net/http"

	hairService "hairhq-api/internal/core/hair"
	"hairhq-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatRequest 髮型建議聊天請求
type ChatRequest struct {
	Message            string                 `json:"message" binding:"required"`
	History            []hairService.ChatTurn `json:"history,omitempty"`
	Profile            map[string]interface{} `json:"profile,omitempty"`
	PlanContext        map[string]interface{} `json:"plan_context,omitempty"`
	PreviousResponseID string                 `json:"previous_response_id,omitempty"`
}

// ChatResponse 髮型建議聊天響應
// response_id 只在成功時帶回，降級回應省略
type ChatResponse struct {
	Reply        string                    `json:"reply"`
	StyleIdeas   []string                  `json:"style_ideas"`
	StyleDetails []hairService.StyleDetail `json:"style_details"`
	ResponseID   string                    `json:"response_id,omitempty"`
}

// HandleChat 生成髮型建議
func (h *Handler) HandleChat(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理髮型聊天請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteErrorResponse(c.Writer, common.ErrInvalidRequest)
		return
	}

	result, err := h.chatService.Chat(c.Request.Context(), hairService.ChatRequest{
		Message:            req.Message,
		History:            req.History,
		Profile:            req.Profile,
		PlanContext:        req.PlanContext,
		PreviousResponseID: req.PreviousResponseID,
	})
	if err != nil {
		if errors.Is(err, common.ErrAINotConfigured) {
			common.LogWarn("生成後端未設定，回傳 not configured 回應",
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusOK, ChatResponse{
				Reply:        "OpenAI not configured",
				StyleIdeas:   []string{},
				StyleDetails: []hairService.StyleDetail{},
			})
			return
		}

		common.LogError("髮型聊天生成失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusOK, ChatResponse{
			Reply:        "Something went wrong generating a response. Try again.",
			StyleIdeas:   []string{},
			StyleDetails: []hairService.StyleDetail{},
		})
		return
	}

	common.LogInfo("髮型聊天生成成功",
		zap.String("request_id", requestID),
		zap.Int("style_ideas", len(result.StyleIdeas)),
	)

	c.JSON(http.StatusOK, ChatResponse{
		Reply:        result.Reply,
		StyleIdeas:   result.StyleIdeas,
		StyleDetails: result.StyleDetails,
		ResponseID:   result.ResponseID,
	})
}
