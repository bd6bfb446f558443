package hair

import (
	"errors"
	"net/http"

	hairService "hairhq-api/internal/core/hair"
	"hairhq-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PlanResponse 護髮計畫響應
// 不論成功或降級都帶回標準化後的檔案，供前端除錯比對
type PlanResponse struct {
	Summary         string              `json:"summary"`
	Routine         []string            `json:"routine"`
	Products        []string            `json:"products"`
	Ingredients     []string            `json:"ingredients"`
	Avoid           []string            `json:"avoid"`
	ProfileReceived hairService.Profile `json:"profile_received"`
}

// Handler 髮質檔案處理程序
type Handler struct {
	planService *hairService.PlanService
	chatService *hairService.ChatService
	infoService *hairService.InfoService
}

// NewHandler 創建新的處理程序
func NewHandler(planService *hairService.PlanService, chatService *hairService.ChatService, infoService *hairService.InfoService) *Handler {
	return &Handler{
		planService: planService,
		chatService: chatService,
		infoService: infoService,
	}
}

// HandlePlan 生成護髮計畫
// 上游失敗不回傳錯誤狀態碼，一律回傳結構完整的（可能降級的）payload
func (h *Handler) HandlePlan(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = common.GenerateUUID()
		c.Header("X-Request-ID", requestID)
	}

	common.LogInfo("開始處理護髮計畫請求",
		zap.String("request_id", requestID),
		zap.String("client_ip", c.ClientIP()),
	)

	// 檔案欄位允許多種命名與格式，先收進 map 再做標準化，不做欄位層級驗證
	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		common.LogError("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteErrorResponse(c.Writer, common.ErrInvalidRequest)
		return
	}

	canonical := hairService.CanonicalizeProfile(raw)

	plan, err := h.planService.GeneratePlan(c.Request.Context(), canonical)
	if err != nil {
		if errors.Is(err, common.ErrAINotConfigured) {
			common.LogWarn("生成後端未設定，回傳 not configured 回應",
				zap.String("request_id", requestID),
			)
			c.JSON(http.StatusOK, fallbackPlanResponse("OpenAI not configured.", canonical))
			return
		}

		common.LogError("護髮計畫生成失敗",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		c.JSON(http.StatusOK, fallbackPlanResponse("Could not generate plan right now.", canonical))
		return
	}

	common.LogInfo("護髮計畫生成成功",
		zap.String("request_id", requestID),
		zap.String("mode", canonical.Mode),
		zap.Int("routine_steps", len(plan.Routine)),
	)

	c.JSON(http.StatusOK, PlanResponse{
		Summary:         plan.Summary,
		Routine:         plan.Routine,
		Products:        plan.Products,
		Ingredients:     plan.Ingredients,
		Avoid:           plan.Avoid,
		ProfileReceived: canonical,
	})
}

// fallbackPlanResponse 降級回應：空列表 + 說明文字 + 原樣帶回檔案
func fallbackPlanResponse(summary string, profile hairService.Profile) PlanResponse {
	plan := hairService.EmptyPlan(summary)
	return PlanResponse{
		Summary:         plan.Summary,
		Routine:         plan.Routine,
		Products:        plan.Products,
		Ingredients:     plan.Ingredients,
		Avoid:           plan.Avoid,
		ProfileReceived: profile,
	}
}
