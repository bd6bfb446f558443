package hair

import "strings"

// 每個標準欄位的別名表，依優先順序排列（主名稱在前，相容舊前端的名稱在後）
// 取第一個去除空白後非空的字串值
var profileAliases = []struct {
	field   string
	aliases []string
}{
	{"hair_type", []string{"hair_type", "hairType"}},
	{"hair_length", []string{"hair_length", "hairLength"}},
	{"porosity", []string{"porosity"}},
	{"density", []string{"density"}},
	{"strand_width", []string{"strand_width", "strandWidth"}},
	{"scalp", []string{"scalp", "scalp_condition", "scalpCondition"}},
	{"dryness_level", []string{"dryness_level", "dryness"}},
	{"wash_frequency", []string{"wash_frequency", "washFrequency"}},
	{"routine_level", []string{"routine_level", "routineLevel"}},
	{"heat_usage", []string{"heat_usage", "heatUsage"}},
	{"chemical_treatments", []string{"chemical_treatments", "chemicals"}},
	{"nighttime_care", []string{"nighttime_care", "nightCare"}},
	{"curiosity", []string{"curiosity"}},
	{"extra_details", []string{"extra_details", "extraDetails"}},
	{"source", []string{"source"}},
}

// 列表欄位的別名，值可能是陣列或含分隔符的字串
var profileListAliases = map[string][]string{
	"main_issues": {"main_issues", "issues"},
	"goals":       {"goals"},
}

// SafeMode 將任意輸入收斂為兩個合法 mode 之一，預設 women
func SafeMode(mode string) string {
	m := strings.ToLower(strings.TrimSpace(mode))
	if m == ModeMen || m == ModeWomen {
		return m
	}
	return ModeWomen
}

// coalesce 取別名列表中第一個非空字串值
func coalesce(raw map[string]interface{}, aliases []string) string {
	for _, key := range aliases {
		if s, ok := raw[key].(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// coalesceList 取別名列表中第一個整理後非空的列表值
func coalesceList(raw map[string]interface{}, aliases []string) []string {
	for _, key := range aliases {
		if v, ok := raw[key]; ok {
			if cleaned := CleanList(v); len(cleaned) > 0 {
				return cleaned
			}
		}
	}
	return []string{}
}

// CanonicalizeProfile 將前端送來的鬆散檔案物件映射為單一標準形狀
// 純轉換：不拒絕任何輸入，格式錯誤一律降級為缺值或預設值
func CanonicalizeProfile(raw map[string]interface{}) Profile {
	if raw == nil {
		raw = map[string]interface{}{}
	}

	resolved := make(map[string]string, len(profileAliases))
	known := map[string]bool{"mode": true}
	for _, entry := range profileAliases {
		resolved[entry.field] = coalesce(raw, entry.aliases)
		for _, a := range entry.aliases {
			known[a] = true
		}
	}
	for _, aliases := range profileListAliases {
		for _, a := range aliases {
			known[a] = true
		}
	}

	modeIn, _ := raw["mode"].(string)

	p := Profile{
		Mode:               SafeMode(modeIn),
		Source:             resolved["source"],
		HairType:           resolved["hair_type"],
		HairLength:         resolved["hair_length"],
		Porosity:           resolved["porosity"],
		Density:            resolved["density"],
		StrandWidth:        resolved["strand_width"],
		Scalp:              resolved["scalp"],
		DrynessLevel:       resolved["dryness_level"],
		MainIssues:         coalesceList(raw, profileListAliases["main_issues"]),
		Goals:              coalesceList(raw, profileListAliases["goals"]),
		WashFrequency:      resolved["wash_frequency"],
		RoutineLevel:       resolved["routine_level"],
		HeatUsage:          resolved["heat_usage"],
		ChemicalTreatments: resolved["chemical_treatments"],
		NighttimeCare:      resolved["nighttime_care"],
		Curiosity:          resolved["curiosity"],
		ExtraDetails:       resolved["extra_details"],
	}

	if p.Curiosity == "" {
		p.Curiosity = DefaultCuriosity
	}

	// 未識別的欄位原樣保留，不做解讀
	for key, value := range raw {
		if known[key] {
			continue
		}
		if p.Extra == nil {
			p.Extra = map[string]interface{}{}
		}
		p.Extra[key] = value
	}

	return p
}
