package hair

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleInfoQuery 查詢靜態資訊文件（query 參數形式）
// GET /api/info?mode=women|men
func (h *Handler) HandleInfoQuery(c *gin.Context) {
	mode := c.DefaultQuery("mode", "women")
	c.JSON(http.StatusOK, h.infoService.Load(mode))
}

// HandleInfoByMode 查詢靜態資訊文件（路徑參數形式）
// GET /api/hair-info/:mode
// 與 query 形式回傳完全相同的查詢結果
func (h *Handler) HandleInfoByMode(c *gin.Context) {
	c.JSON(http.StatusOK, h.infoService.Load(c.Param("mode")))
}
