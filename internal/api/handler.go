package api

import (
	"github.com/gin-gonic/gin"

	"github.com/cmac1989/AFWorkshopMover/internal/config"
	"github.com/cmac1989/AFWorkshopMover/internal/reconcile"
	"github.com/cmac1989/AFWorkshopMover/internal/store"
)

// Handler API 处理器：核对引擎之上的薄展示层
type Handler struct {
	store       *store.Store
	coordinator *reconcile.Coordinator
	cfg         *config.AppConfig
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, coordinator *reconcile.Coordinator, cfg *config.AppConfig) *Handler {
	return &Handler{
		store:       st,
		coordinator: coordinator,
		cfg:         cfg,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 核对与提交
	router.POST("/reconcile", h.Reconcile)
	router.POST("/apply", h.ApplySelected)
	router.POST("/revert", h.RevertLastBatch)

	// 批次日志
	router.GET("/batches", h.ListBatches)

	// 配置查看与修改
	router.GET("/config", h.GetConfig)
	router.PUT("/config", h.UpdateConfig)
}
