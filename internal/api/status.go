package api

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cmac1989/AFWorkshopMover/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	WorkbookPath   string `json:"workbookPath"`
	WorkbookExists bool   `json:"workbookExists"`
	SourceSheet    string `json:"sourceSheet"`
	RosterSheet    string `json:"rosterSheet"`
	LastBatchID    string `json:"lastBatchId"`
	LastBatchTime  string `json:"lastBatchTime"`
	RevertPending  bool   `json:"revertPending"` // 是否还有未消费的回滚快照
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		WorkbookPath: h.cfg.Workbook.Path,
		SourceSheet:  h.cfg.Workbook.SourceSheet,
		RosterSheet:  h.cfg.Workbook.RosterSheet,
	}

	if resp.WorkbookPath != "" {
		if _, err := os.Stat(resp.WorkbookPath); err == nil {
			resp.WorkbookExists = true
		}
	}

	if last, found, err := h.store.LastBatchLog(); err == nil && found {
		resp.LastBatchID = last.BatchID
		resp.LastBatchTime = last.CreatedAt
	}

	if _, found, err := h.store.GetRevertSnapshot(store.RevertSessionKey); err == nil && found {
		resp.RevertPending = true
	}

	c.JSON(http.StatusOK, resp)
}

// ListBatches 批次日志列表
// GET /api/batches
func (h *Handler) ListBatches(c *gin.Context) {
	logs, err := h.store.ListBatchLogs(50)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs, "total": len(logs)})
}
