package hair

import (
	"context"
	"errors"
	"testing"

	"hairhq-api/internal/core/ai/provider"
	"hairhq-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubGenerator 依序回放預先準備的回應，並記錄收到的請求
type stubGenerator struct {
	configured bool
	responses  []*provider.Response
	errs       []error
	requests   []*provider.Request
}

func (s *stubGenerator) Generate(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	i := len(s.requests)
	s.requests = append(s.requests, req)
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if err != nil {
		return nil, err
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return &provider.Response{Content: "{}"}, nil
}

func (s *stubGenerator) IsConfigured() bool {
	return s.configured
}

func TestGeneratePlanNotConfigured(t *testing.T) {
	gen := &stubGenerator{configured: false}
	svc := NewPlanService(gen, DefaultPromptOptions())

	_, err := svc.GeneratePlan(context.Background(), Profile{Mode: ModeWomen})

	assert.ErrorIs(t, err, common.ErrAINotConfigured)
	assert.Empty(t, gen.requests, "未設定憑證時不應發出請求")
}

func TestGeneratePlanSuccess(t *testing.T) {
	gen := &stubGenerator{
		configured: true,
		responses: []*provider.Response{
			{Content: `{"summary": "plan", "routine": ["a", "b", "c", "d"], "products": ["gel"], "ingredients": [], "avoid": ["sulfates"]}`},
		},
	}
	svc := NewPlanService(gen, DefaultPromptOptions())

	plan, err := svc.GeneratePlan(context.Background(), Profile{Mode: ModeWomen, HairType: "curly"})

	require.NoError(t, err)
	assert.Equal(t, "plan", plan.Summary)
	assert.Len(t, plan.Routine, 4)
	assert.Len(t, gen.requests, 1, "步驟足夠時不應重試")
}

func TestGeneratePlanRetriesOnceWhenRoutineTooShort(t *testing.T) {
	gen := &stubGenerator{
		configured: true,
		responses: []*provider.Response{
			{Content: `{"summary": "thin", "routine": ["only one step"]}`},
			{Content: `{"summary": "full", "routine": ["s1", "s2", "s3", "s4", "s5", "s6"]}`},
		},
	}
	svc := NewPlanService(gen, DefaultPromptOptions())

	plan, err := svc.GeneratePlan(context.Background(), Profile{Mode: ModeMen})

	require.NoError(t, err)
	require.Len(t, gen.requests, 2)
	assert.Contains(t, gen.requests[1].Instructions, "at least 6 routine steps")
	assert.Equal(t, gen.requests[0].Input, gen.requests[1].Input, "重試沿用相同的使用者內容")
	assert.Equal(t, "full", plan.Summary)
	assert.Len(t, plan.Routine, 6)
}

func TestGeneratePlanRetryResultUsedVerbatim(t *testing.T) {
	gen := &stubGenerator{
		configured: true,
		responses: []*provider.Response{
			{Content: `{"routine": []}`},
			{Content: `{"summary": "still short", "routine": ["s1", "s2"]}`},
		},
	}
	svc := NewPlanService(gen, DefaultPromptOptions())

	plan, err := svc.GeneratePlan(context.Background(), Profile{Mode: ModeWomen})

	require.NoError(t, err)
	// 重試結果即使仍不足也直接採用，不再重試
	assert.Len(t, gen.requests, 2)
	assert.Equal(t, []string{"s1", "s2"}, plan.Routine)
}

func TestGeneratePlanFirstCallError(t *testing.T) {
	callErr := errors.New("upstream blew up")
	gen := &stubGenerator{
		configured: true,
		errs:       []error{callErr},
	}
	svc := NewPlanService(gen, DefaultPromptOptions())

	_, err := svc.GeneratePlan(context.Background(), Profile{Mode: ModeWomen})

	assert.ErrorIs(t, err, callErr)
	assert.Len(t, gen.requests, 1)
}

func TestGeneratePlanRetryError(t *testing.T) {
	callErr := errors.New("upstream blew up")
	gen := &stubGenerator{
		configured: true,
		responses: []*provider.Response{
			{Content: `not json`},
			nil,
		},
		errs: []error{nil, callErr},
	}
	svc := NewPlanService(gen, DefaultPromptOptions())

	_, err := svc.GeneratePlan(context.Background(), Profile{Mode: ModeWomen})

	assert.ErrorIs(t, err, callErr)
	assert.Len(t, gen.requests, 2)
}

func TestGeneratePlanUnparsableOutputNormalized(t *testing.T) {
	gen := &stubGenerator{
		configured: true,
		responses: []*provider.Response{
			{Content: `I refuse to answer in JSON.`},
			{Content: `Sorry, still prose.`},
		},
	}
	svc := NewPlanService(gen, DefaultPromptOptions())

	plan, err := svc.GeneratePlan(context.Background(), Profile{Mode: ModeWomen})

	require.NoError(t, err)
	assert.Equal(t, "", plan.Summary)
	assert.Equal(t, []string{}, plan.Routine)
	assert.Equal(t, []string{}, plan.Products)
	assert.Equal(t, []string{}, plan.Ingredients)
	assert.Equal(t, []string{}, plan.Avoid)
}
