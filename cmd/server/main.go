package main

import (
	"github.com/blues/edufund/internal/config"
	"github.com/blues/edufund/internal/database"
	"github.com/blues/edufund/internal/event"
	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/logger"
	"github.com/blues/edufund/internal/router"
	"github.com/blues/edufund/internal/scheduler"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if err := logger.Setup(cfg.Log); err != nil {
		logger.Fatal("Failed to setup logger: %v", err)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化资金引擎
	if !common.IsHexAddress(cfg.Funding.PlatformAddress) {
		logger.Fatal("Invalid platform address: %s", cfg.Funding.PlatformAddress)
	}
	if !common.IsHexAddress(cfg.Funding.EngineAddress) {
		logger.Fatal("Invalid engine address: %s", cfg.Funding.EngineAddress)
	}

	bank := funding.NewMemoryBank()
	token := funding.NewRewardToken()
	engine, err := funding.NewEngine(
		common.HexToAddress(cfg.Funding.EngineAddress),
		common.HexToAddress(cfg.Funding.PlatformAddress),
		bank,
		token,
	)
	if err != nil {
		logger.Fatal("Failed to initialize funding engine: %v", err)
	}

	// 初始化事件分发器并注册处理器
	dispatcher, err := event.NewDispatcher(db, cfg.Funding.WorkerPoolSize)
	if err != nil {
		logger.Fatal("Failed to initialize event dispatcher: %v", err)
	}
	defer dispatcher.Close()

	dispatcher.Register(funding.CampaignCreated{}.EventName(), event.NewCampaignProcessor(engine, db))
	dispatcher.Register(funding.ContributionMade{}.EventName(), event.NewContributeProcessor(engine, db))
	dispatcher.Register(funding.CampaignFinalized{}.EventName(), event.NewFinalizeProcessor(engine, db))

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(engine, dispatcher, db, cfg)

	// 启动定时任务
	manager := scheduler.Start(db, engine, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
