package hair

// Mode 區分兩種指導框架與對應的靜態資訊文件
const (
	ModeWomen = "women"
	ModeMen   = "men"

	// DefaultCuriosity 未指定時的詳細度偏好
	DefaultCuriosity = "detailed"
)

// Profile 標準化後的髮質檔案
// 所有字串欄位不是去除空白後的非空字串，就是空字串（代表未提供）
type Profile struct {
	Mode               string   `json:"mode"`
	Source             string   `json:"source,omitempty"`
	HairType           string   `json:"hair_type,omitempty"`
	HairLength         string   `json:"hair_length,omitempty"`
	Porosity           string   `json:"porosity,omitempty"`
	Density            string   `json:"density,omitempty"`
	StrandWidth        string   `json:"strand_width,omitempty"`
	Scalp              string   `json:"scalp,omitempty"`
	DrynessLevel       string   `json:"dryness_level,omitempty"`
	MainIssues         []string `json:"main_issues"`
	Goals              []string `json:"goals"`
	WashFrequency      string   `json:"wash_frequency,omitempty"`
	RoutineLevel       string   `json:"routine_level,omitempty"`
	HeatUsage          string   `json:"heat_usage,omitempty"`
	ChemicalTreatments string   `json:"chemical_treatments,omitempty"`
	NighttimeCare      string   `json:"nighttime_care,omitempty"`
	Curiosity          string   `json:"curiosity"`
	ExtraDetails       string   `json:"extra_details,omitempty"`

	// Extra 保留未識別的輸入欄位，不做任何解讀，也不進入提示詞
	Extra map[string]interface{} `json:"-"`
}

// CarePlan 護髮計畫
// 四個列表都只含去除空白後的非空字串
type CarePlan struct {
	Summary     string   `json:"summary"`
	Routine     []string `json:"routine"`
	Products    []string `json:"products"`
	Ingredients []string `json:"ingredients"`
	Avoid       []string `json:"avoid"`
}

// EmptyPlan 回傳四個列表皆為空的計畫，summary 由呼叫端決定
func EmptyPlan(summary string) CarePlan {
	return CarePlan{
		Summary:     summary,
		Routine:     []string{},
		Products:    []string{},
		Ingredients: []string{},
		Avoid:       []string{},
	}
}

// ChatTurn 對話輪，只接受 user 與 assistant 兩種角色
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StyleDetail 髮型建議的詳細條目
// Title 必須與 style_ideas 中某一項完全對應（去除前後空白後）
type StyleDetail struct {
	Title         string `json:"title"`
	Why           string `json:"why"`
	ImageSearch   string `json:"image_search"`
	YouTubeSearch string `json:"youtube_search"`
}

// ChatResult 聊天路徑的生成結果
type ChatResult struct {
	Reply        string        `json:"reply"`
	StyleIdeas   []string      `json:"style_ideas"`
	StyleDetails []StyleDetail `json:"style_details"`
	ResponseID   string        `json:"response_id,omitempty"`
}

// ChatRequest 聊天路徑的輸入
type ChatRequest struct {
	Message            string                 `json:"message"`
	History            []ChatTurn             `json:"history"`
	Profile            map[string]interface{} `json:"profile"`
	PlanContext        map[string]interface{} `json:"plan_context"`
	PreviousResponseID string                 `json:"previous_response_id"`
}
