package hair

import (
	"context"
	"time"

	"hairhq-api/internal/core/ai/provider"
	"hairhq-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Generator 對外生成後端的抽象，由 ai service 實作
type Generator interface {
	Generate(ctx context.Context, req *provider.Request) (*provider.Response, error)
	IsConfigured() bool
}

// PlanService 護髮計畫生成服務
type PlanService struct {
	gen  Generator
	opts PromptOptions
}

// NewPlanService 創建護髮計畫生成服務
func NewPlanService(gen Generator, opts PromptOptions) *PlanService {
	return &PlanService{
		gen:  gen,
		opts: opts,
	}
}

// GeneratePlan 依標準化檔案生成護髮計畫
// 第一次輸出的 routine 步驟不足時，用加嚴指令重試一次並直接採用其結果
// 未設定憑證回傳 common.ErrAINotConfigured，上游失敗回傳包裝後的錯誤，由呼叫端決定降級回應
func (s *PlanService) GeneratePlan(ctx context.Context, profile Profile) (CarePlan, error) {
	if !s.gen.IsConfigured() {
		return CarePlan{}, common.ErrAINotConfigured
	}

	input := PlanUserInput(profile)

	start := time.Now()
	resp, err := s.gen.Generate(ctx, &provider.Request{
		Instructions: PlanInstructions(),
		Input:        input,
	})
	common.LogAICall("plan", time.Since(start), err)
	if err != nil {
		return CarePlan{}, err
	}

	plan := NormalizePlan(ExtractJSON(resp.Content))

	// 防止空泛或過短的輸出：僅重試一次，結果不論長短都採用
	if len(plan.Routine) < s.opts.MinRoutineSteps {
		common.LogInfo("計畫步驟不足，以加嚴指令重試",
			zap.Int("routine_steps", len(plan.Routine)),
			zap.Int("min_routine_steps", s.opts.MinRoutineSteps),
		)

		start = time.Now()
		resp, err = s.gen.Generate(ctx, &provider.Request{
			Instructions: StrictPlanInstructions(s.opts.StrictRoutineSteps),
			Input:        input,
		})
		common.LogAICall("plan_retry", time.Since(start), err)
		if err != nil {
			return CarePlan{}, err
		}

		plan = NormalizePlan(ExtractJSON(resp.Content))
	}

	return plan, nil
}
