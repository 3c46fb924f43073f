package router

import (
	"github.com/blues/cfl/internal/config"
	"github.com/blues/cfl/internal/handler"
	"github.com/blues/cfl/internal/logic"
	"github.com/blues/cfl/internal/registry"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, reg *registry.Registry, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "crowdfund-ledger",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 众筹相关路由
		campaignHandler := handler.NewCampaignHandler(db, reg)
		campaigns := v1.Group("/campaigns")
		{
			campaigns.POST("", campaignHandler.CreateCampaign)
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.GET("/count", campaignHandler.GetCampaignCount)
			campaigns.GET("/index/:index", campaignHandler.GetCampaignByIndex)
			campaigns.GET("/:address", campaignHandler.GetCampaign)
			campaigns.GET("/:address/stats", campaignHandler.GetCampaignStats)
			campaigns.GET("/:address/contributions/:contributor", campaignHandler.GetContribution)
			campaigns.POST("/:address/contribute", campaignHandler.Contribute)
			campaigns.POST("/:address/withdraw", campaignHandler.Withdraw)
			campaigns.POST("/:address/refund", campaignHandler.Refund)
			campaigns.POST("/:address/extend", campaignHandler.ExtendDeadline)

			// 记录查询路由
			contributeHandler := handler.NewContributeRecordHandler(logic.NewContributeRecordLogic(db))
			campaigns.GET("/:address/contribute-records", contributeHandler.GetCampaignContributeRecords)
			campaigns.GET("/:address/contribute-stats", contributeHandler.GetContributeStats)

			refundHandler := handler.NewRefundRecordHandler(logic.NewRefundRecordLogic(db))
			campaigns.GET("/:address/refund-records", refundHandler.GetCampaignRefundRecords)
		}

		// 事件日志路由
		eventHandler := handler.NewEventHandler(logic.NewEventLogic(db))
		v1.GET("/events", eventHandler.GetEvents)
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
