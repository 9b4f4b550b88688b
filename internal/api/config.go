package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmac1989/AFWorkshopMover/internal/store"
)

// ConfigUpdateRequest 运行期配置修改请求，空字段不修改
type ConfigUpdateRequest struct {
	WorkbookPath string `json:"workbookPath"`
	SourceSheet  string `json:"sourceSheet"`
	RosterSheet  string `json:"rosterSheet"`
}

// GetConfig 查看生效配置（密码不回显）
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, h.maskedConfig())
}

// UpdateConfig 修改并持久化运行配置。写入 SQLite 后对后续请求立即生效，
// 重启时数据库中的值覆盖 config.toml 的同名项。
// PUT /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req ConfigUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	updates := []struct {
		key   string
		value string
	}{
		{store.ConfigKeyWorkbookPath, req.WorkbookPath},
		{store.ConfigKeySourceSheet, req.SourceSheet},
		{store.ConfigKeyRosterSheet, req.RosterSheet},
	}
	for _, u := range updates {
		if u.value == "" {
			continue
		}
		if err := h.store.SetConfig(u.key, u.value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	if req.WorkbookPath != "" {
		h.cfg.Workbook.Path = req.WorkbookPath
	}
	if req.SourceSheet != "" {
		h.cfg.Workbook.SourceSheet = req.SourceSheet
	}
	if req.RosterSheet != "" {
		h.cfg.Workbook.RosterSheet = req.RosterSheet
	}
	h.coordinator.SetSheets(req.SourceSheet, req.RosterSheet)

	c.JSON(http.StatusOK, h.maskedConfig())
}

// maskedConfig 生效配置的回显副本
func (h *Handler) maskedConfig() interface{} {
	masked := *h.cfg
	masked.Mail.Password = ""
	return masked
}
