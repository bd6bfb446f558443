package hair

import (
	"regexp"
	"strings"

	"hairhq-api/internal/pkg/common"
)

// 列表欄位允許以含分隔符的字串提供，分隔符集合是前端依賴的共用契約
var listSplitPattern = regexp.MustCompile(`\r?\n|•|\x{2022}|,|;|-`)

// CleanList 將任意輸入整理為去除空白後的非空字串列表
// 切片輸入：保留字串元素、去空白、丟棄空白項，順序不變
// 字串輸入：依分隔符切開後同樣處理
// 其他型別：回傳空列表
func CleanList(v interface{}) []string {
	switch x := v.(type) {
	case []string:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []interface{}:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return []string{}
		}
		parts := listSplitPattern.Split(s, -1)
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return []string{}
	}
}

// ExtractJSON 從模型輸出的自由文本中還原 JSON 物件
// 先嘗試整段解析，失敗時取第一個 { 到最後一個 } 的片段再試
// 兩者都失敗或輸入為空時回傳空物件，永不回傳錯誤
func ExtractJSON(raw string) map[string]interface{} {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]interface{}{}
	}

	var result map[string]interface{}
	if err := common.ParseJSON(raw, &result); err == nil && result != nil {
		return result
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end != -1 && end > start {
		result = nil
		if err := common.ParseJSON(raw[start:end+1], &result); err == nil && result != nil {
			return result
		}
	}

	return map[string]interface{}{}
}

// NormalizePlan 將任意解析結果強制整形為固定的護髮計畫結構
// summary 只在原值已是字串時保留，四個列表欄位都經過 CleanList
func NormalizePlan(parsed map[string]interface{}) CarePlan {
	summary := ""
	if s, ok := parsed["summary"].(string); ok {
		summary = s
	}
	return CarePlan{
		Summary:     summary,
		Routine:     CleanList(parsed["routine"]),
		Products:    CleanList(parsed["products"]),
		Ingredients: CleanList(parsed["ingredients"]),
		Avoid:       CleanList(parsed["avoid"]),
	}
}
