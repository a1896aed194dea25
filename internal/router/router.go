package router

import (
	"github.com/blues/edufund/internal/config"
	"github.com/blues/edufund/internal/event"
	"github.com/blues/edufund/internal/funding"
	"github.com/blues/edufund/internal/handler"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(engine *funding.Engine, dispatcher *event.Dispatcher, db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "edufund-service",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		campaignHandler := handler.NewCampaignHandler(engine, dispatcher, db)
		contributeHandler := handler.NewContributeHandler(engine, dispatcher, db)
		accountHandler := handler.NewAccountHandler(engine)

		// 活动相关路由
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/stats", campaignHandler.GetAllCampaignStats)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.POST("/:id/finalize", campaignHandler.FinalizeCampaign)
			campaigns.GET("/:id/stats", campaignHandler.GetCampaignStats)
			campaigns.POST("/:id/contributions", contributeHandler.Contribute)
			campaigns.GET("/:id/contributions", contributeHandler.GetCampaignContributeRecords)
			campaigns.GET("/:id/contributions/:address", contributeHandler.GetContribution)
		}

		// 账户相关路由
		accounts := v1.Group("/accounts")
		{
			accounts.GET("/:address/portfolio", accountHandler.GetPortfolio)
			accounts.GET("/:address/rewards", accountHandler.GetRewardBalance)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
