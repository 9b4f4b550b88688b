package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cmac1989/AFWorkshopMover/internal/model"
)

// ReconcileRequest 核对请求
type ReconcileRequest struct {
	PreviewOnly bool `json:"previewOnly"` // 仅预演，不写回
}

// ReconcileResponse 核对响应
type ReconcileResponse struct {
	Entries []model.LogEntry `json:"entries"`
}

// Reconcile 执行一轮核对
// POST /api/reconcile
func (h *Handler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 空请求体按预演处理
		req.PreviewOnly = true
	}

	path := h.cfg.Workbook.Path
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未配置工作簿路径"})
		return
	}

	entries, err := h.coordinator.Reconcile(path, req.PreviewOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ReconcileResponse{Entries: entries})
}

// ApplyRequest 选择性提交请求
type ApplyRequest struct {
	Selected []int `json:"selected"` // 预演日志条目下标
}

// ApplySelected 提交选中的记录
// POST /api/apply
func (h *Handler) ApplySelected(c *gin.Context) {
	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	path := h.cfg.Workbook.Path
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未配置工作簿路径"})
		return
	}

	result, err := h.coordinator.ApplySelected(path, req.Selected)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RevertLastBatch 回滚最近一次提交
// POST /api/revert
func (h *Handler) RevertLastBatch(c *gin.Context) {
	path := h.cfg.Workbook.Path
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未配置工作簿路径"})
		return
	}

	summary, err := h.coordinator.RevertLastBatch(path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
