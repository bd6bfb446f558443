package hair

import (
	"fmt"
	"strings"

	"hairhq-api/internal/pkg/common"
)

// InitContextSentinel 前端可送出此值，在使用者尚未輸入真實文字前先載入情境
const InitContextSentinel = "INIT_CONTEXT"

// 收到 sentinel 時改用的預設提問
const defaultChatMessage = "Based on my hair profile, suggest styles that usually work best for me."

// PromptOptions 提示詞組裝的可調參數
type PromptOptions struct {
	HistoryLimit        int // 對話歷史保留的最後輪數
	PlanContextMaxChars int // plan_context JSON 的最大長度
	MinRoutineSteps     int // routine 步驟低於此數量時觸發一次嚴格重試
	StrictRoutineSteps  int // 嚴格重試時要求的最少步驟數
}

// DefaultPromptOptions 預設值
func DefaultPromptOptions() PromptOptions {
	return PromptOptions{
		HistoryLimit:        8,
		PlanContextMaxChars: 2000,
		MinRoutineSteps:     4,
		StrictRoutineSteps:  6,
	}
}

// PlanInstructions 護髮計畫生成的 system 指令
// 要求只回傳固定五個鍵的 JSON
func PlanInstructions() string {
	return "You are HairHQ Hair Plan Generator, a professional stylist + hair educator.\n" +
		"Be inclusive across hair types 1-4 and do NOT assume ethnicity.\n" +
		"Recommend product TYPES (not brands).\n" +
		"Be specific and avoid generic routines.\n" +
		"Use the hair profile details (especially length, porosity, scalp, goals, issues).\n\n" +
		"Return ONLY valid JSON with exactly these keys:\n" +
		"summary (string), routine (array of strings), products (array of strings), " +
		"ingredients (array of strings), avoid (array of strings).\n" +
		"No markdown. No extra keys.\n"
}

// StrictPlanInstructions 第一次輸出步驟不足時使用的加嚴指令
func StrictPlanInstructions(minSteps int) string {
	return PlanInstructions() + fmt.Sprintf("\nIMPORTANT: Provide at least %d routine steps with frequencies.", minSteps)
}

// planModeLine 依 mode 附加的指導語
func planModeLine(mode string) string {
	if mode == ModeMen {
		return "MEN MODE: keep routine practical; include scalp/hair loss/dandruff considerations if relevant."
	}
	return "WOMEN MODE: include styling + washday flow; align with length + goals."
}

// PlanUserInput 組裝護髮計畫的使用者內容：mode 指導語 + 標準化檔案 JSON + 輸出要求
func PlanUserInput(profile Profile) string {
	profileJSON, err := common.ToJSONIndent(profile)
	if err != nil {
		profileJSON = "{}"
	}

	var sb strings.Builder
	sb.WriteString(planModeLine(profile.Mode))
	sb.WriteString("\n\n")
	sb.WriteString("HAIR_PROFILE_JSON:\n")
	sb.WriteString(profileJSON)
	sb.WriteString("\n\n")
	sb.WriteString("Create a DETAILED plan that feels unique to this profile.\n")
	sb.WriteString("Routine should be step-by-step and actionable (frequency + what to do).\n")
	sb.WriteString("Include specific guidance for porosity/length/scalp.\n")
	sb.WriteString("Avoid one-size-fits-all advice.\n")
	return sb.String()
}

// ChatInstructions 髮型建議聊天的 system 指令
// 檔案內容具有最高權威，輸出限制為固定的 JSON 結構
func ChatInstructions() string {
	return "You are HairHQ Style Assist, a professional stylist.\n" +
		"The hair profile is authoritative and must be used.\n\n" +
		"Respond ONLY in valid JSON with EXACT structure:\n" +
		"{\n" +
		"  \"reply\": string,\n" +
		"  \"style_ideas\": [string, string, ...],\n" +
		"  \"style_details\": [\n" +
		"    {\n" +
		"      \"title\": string,\n" +
		"      \"why\": string,\n" +
		"      \"image_search\": string,\n" +
		"      \"youtube_search\": string\n" +
		"    }\n" +
		"  ]\n" +
		"}\n\n" +
		"RULES:\n" +
		"- Generate 4-7 styles.\n" +
		"- style_ideas must be short, clear style names someone would actually search.\n" +
		"- style_details titles must match style_ideas exactly.\n" +
		"- Use hair length + hair type/texture + porosity + goals + user intent.\n" +
		"- image_search must work in Google Images.\n" +
		"- youtube_search must work in YouTube search.\n" +
		"- Include hair length + hair type in searches.\n" +
		"- No brands. No vague aesthetic-only terms.\n"
}

// ResolveChatMessage 去除空白並處理 INIT_CONTEXT sentinel
func ResolveChatMessage(message string) string {
	m := strings.TrimSpace(message)
	if m == InitContextSentinel {
		return defaultChatMessage
	}
	return m
}

// ChatUserInput 組裝聊天的使用者內容：檔案 JSON + 截斷後的歷史 + 可選的計畫上下文 + 當前訊息
func ChatUserInput(profile map[string]interface{}, history []ChatTurn, planContext map[string]interface{}, message string, opts PromptOptions) string {
	if profile == nil {
		profile = map[string]interface{}{}
	}
	profileJSON, err := common.ToJSONIndent(profile)
	if err != nil {
		profileJSON = "{}"
	}

	parts := []string{fmt.Sprintf("HAIR_PROFILE_JSON:\n%s", profileJSON)}

	// 只保留最後 N 輪，且僅接受兩種合法角色與非空內容
	turns := history
	if opts.HistoryLimit >= 0 && len(turns) > opts.HistoryLimit {
		turns = turns[len(turns)-opts.HistoryLimit:]
	}
	for _, turn := range turns {
		role := strings.ToLower(strings.TrimSpace(turn.Role))
		content := strings.TrimSpace(turn.Content)
		if (role == "user" || role == "assistant") && content != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", strings.ToUpper(role), content))
		}
	}

	if len(planContext) > 0 {
		contextJSON, err := common.ToJSON(planContext)
		if err == nil {
			if len(contextJSON) > opts.PlanContextMaxChars {
				contextJSON = contextJSON[:opts.PlanContextMaxChars]
			}
			parts = append(parts, fmt.Sprintf("PLAN_CONTEXT_JSON:\n%s", contextJSON))
		}
	}

	parts = append(parts, fmt.Sprintf("USER: %s", message))
	return strings.Join(parts, "\n")
}
