package server

import (
	"log"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cmac1989/AFWorkshopMover/internal/api"
	"github.com/cmac1989/AFWorkshopMover/internal/config"
	"github.com/cmac1989/AFWorkshopMover/internal/model"
	"github.com/cmac1989/AFWorkshopMover/internal/notify"
	"github.com/cmac1989/AFWorkshopMover/internal/reconcile"
	"github.com/cmac1989/AFWorkshopMover/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  *store.Store
	api    *api.Handler
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	// 列映射启动时校验一次
	if err := model.ValidateColumns(); err != nil {
		log.Fatalf("Invalid column schema: %v", err)
	}

	// 初始化 SQLite Store
	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}
	dbPath := filepath.Join(dataDir, "afmover.db")

	sqliteStore, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 经配置接口持久化过的修改优先于文件配置
	applyStoredConfig(sqliteStore, cfg)

	// 邮件通知（未启用时为 nil，协调器对 nil 安全）
	var notifier reconcile.Notifier
	if mailer := notify.NewMailer(cfg.Mail); mailer != nil {
		notifier = mailer
	}

	coordinator := reconcile.NewCoordinator(sqliteStore, notifier, reconcile.Options{
		SourceSheet:      cfg.Workbook.SourceSheet,
		RosterSheet:      cfg.Workbook.RosterSheet,
		CapacitySentinel: cfg.Business.CapacitySentinel,
		Pricing: reconcile.PricingConfig{
			BaseRate: cfg.Business.BaseRate,
			TierRate: cfg.Business.TierRate,
		},
		RevertTTL: time.Duration(cfg.Business.RevertTTLSeconds) * time.Second,
	})

	apiHandler := api.NewHandler(sqliteStore, coordinator, cfg)

	s := &Server{
		router: gin.Default(),
		store:  sqliteStore,
		api:    apiHandler,
	}

	s.setupRoutes()

	return s
}

// applyStoredConfig 应用数据库中持久化的运行期配置修改
func applyStoredConfig(st *store.Store, cfg *config.AppConfig) {
	stored, err := st.GetAllConfig()
	if err != nil {
		log.Printf("读取持久化配置失败: %v", err)
		return
	}
	if v := stored[store.ConfigKeyWorkbookPath]; v != "" {
		cfg.Workbook.Path = v
	}
	if v := stored[store.ConfigKeySourceSheet]; v != "" {
		cfg.Workbook.SourceSheet = v
	}
	if v := stored[store.ConfigKeyRosterSheet]; v != "" {
		cfg.Workbook.RosterSheet = v
	}
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// API 路由
	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}
}

// Run 启动服务器
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close 释放资源
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
