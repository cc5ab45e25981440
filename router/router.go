package router

import (
	"time"

	"budgetbook/api"
	"budgetbook/config"
	_ "budgetbook/docs"
	"budgetbook/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(5, time.Minute), authHandler.Login)

			// 密码重置
			auth.POST("/password/request-reset", authHandler.RequestPasswordReset)
			auth.POST("/password/verify-code", authHandler.VerifyResetCode)
			auth.POST("/password/reset", authHandler.ResetPassword)
		}

		// 货币列表（无需登录，前端引导页使用）
		settingsHandler := api.NewUserSettingsHandler()
		v1.GET("/currencies", settingsHandler.Currencies)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 类别相关
			categoryHandler := api.NewCategoryHandler()
			categories := authorized.Group("/categories")
			{
				categories.POST("", categoryHandler.Create)
				categories.GET("", categoryHandler.List)
				categories.DELETE("", categoryHandler.Delete)
			}

			// 交易相关
			transactionHandler := api.NewTransactionHandler()
			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			// 统计相关
			statsHandler := api.NewStatsHandler()
			authorized.GET("/stats/balance", statsHandler.Balance)
			authorized.GET("/stats/categories", statsHandler.Categories)
			authorized.GET("/history/periods", statsHandler.HistoryPeriods)
			authorized.GET("/history/data", statsHandler.HistoryData)

			// 用户偏好设置
			authorized.GET("/user-settings", settingsHandler.Get)
			authorized.PUT("/user-settings/currency", settingsHandler.UpdateCurrency)

			// 导出相关
			exportHandler := api.NewExportHandler()
			authorized.GET("/export/excel", exportHandler.ExportExcel)
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
