package hair

import (
	"fmt"
	"os"
	"path/filepath"

	"hairhq-api/internal/pkg/common"

	"go.uber.org/zap"
)

// InfoService 靜態資訊文件查詢
// 依 mode 載入對應的 JSON 文件，缺檔或壞檔一律回傳空物件
type InfoService struct {
	dir string
}

// NewInfoService 創建靜態資訊服務
func NewInfoService(dir string) *InfoService {
	return &InfoService{dir: dir}
}

// Load 載入指定 mode 的資訊文件
func (s *InfoService) Load(mode string) map[string]interface{} {
	mode = SafeMode(mode)
	path := filepath.Join(s.dir, fmt.Sprintf("info_%s.json", mode))

	data, err := os.ReadFile(path)
	if err != nil {
		common.LogWarn("資訊文件不存在",
			zap.String("mode", mode),
			zap.String("path", path),
		)
		return map[string]interface{}{}
	}

	var doc map[string]interface{}
	if err := common.ParseJSONBytes(data, &doc); err != nil || doc == nil {
		common.LogWarn("資訊文件解析失敗",
			zap.String("mode", mode),
			zap.String("path", path),
			zap.Error(err),
		)
		return map[string]interface{}{}
	}

	return doc
}
