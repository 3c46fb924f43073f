package main

import (
	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/database"
	"github.com/blues/cfl/internal/event"
	"github.com/blues/cfl/internal/logger"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/registry"
	"github.com/blues/cfl/internal/router"
	"github.com/blues/cfl/internal/task"
	"github.com/blues/cfl/internal/treasury"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err == nil {
			logger.SetDefaultLogger(l)
		}
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化事件分发器
	dispatcher, err := event.NewDispatcher(db, cfg.Event.PoolSize)
	if err != nil {
		logger.Fatal("Failed to initialize event dispatcher: %v", err)
	}
	defer dispatcher.Close()

	// 初始化资金托管和众筹工厂
	vault := treasury.NewVault()
	reg := registry.New(vault, dispatcher)

	// 从数据库恢复内存账本
	campaignLogic := logic.NewCampaignLogic(db, reg)
	if err := campaignLogic.Restore(); err != nil {
		logger.Fatal("Failed to restore ledgers: %v", err)
	}
	logger.Info("Restored %d crowdfund ledgers", reg.CrowdfundCount())

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, reg, cfg)

	// 启动定时任务
	manager := task.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
