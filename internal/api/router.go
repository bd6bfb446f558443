package api

import (
	"context"
	"time"

	hairHandler "hairhq-api/internal/api/handlers/hair"
	"hairhq-api/internal/api/handlers/health"
	"hairhq-api/internal/api/middleware"
	"hairhq-api/internal/core/ai/cache"
	"hairhq-api/internal/core/ai/openai"
	"hairhq-api/internal/core/ai/service"
	hairService "hairhq-api/internal/core/hair"
	"hairhq-api/internal/infrastructure/config"
	"hairhq-api/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，純文字 payload 不需要更大
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	// CORS 設置（本地開發用寬鬆策略）
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制與去重
	router.Use(middleware.BodySizeLimit(maxBodySize))
	router.Use(middleware.Deduplication(cfg))

	// 限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.String("model", cfg.OpenAI.Model),
		zap.Bool("openai_configured", cfg.OpenAI.APIKey != ""),
	)

	// 初始化 AI 服務
	aiClient := openai.NewClient(cfg)
	aiService := service.NewService(cfg, aiClient, store)

	// 提示詞組裝參數全部來自設定
	promptOpts := hairService.PromptOptions{
		HistoryLimit:        cfg.Prompt.HistoryLimit,
		PlanContextMaxChars: cfg.Prompt.PlanContextMaxChars,
		MinRoutineSteps:     cfg.Prompt.MinRoutineSteps,
		StrictRoutineSteps:  cfg.Prompt.StrictRoutineSteps,
	}

	// 初始化髮質服務
	planSvc := hairService.NewPlanService(aiService, promptOpts)
	chatSvc := hairService.NewChatService(aiService, promptOpts)
	infoSvc := hairService.NewInfoService(cfg.Info.Dir)

	// 全局中間件：設置請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			common.WriteErrorResponse(c.Writer, common.ErrGatewayTimeout)
			c.Abort()
			return
		}
	})

	// 未知路徑與不支援的方法
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		common.WriteErrorResponse(c.Writer, common.ErrNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		common.WriteErrorResponse(c.Writer, common.ErrMethodNotAllowed)
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api")
	{
		handler := hairHandler.NewHandler(planSvc, chatSvc, infoSvc)

		// 靜態資訊端點：query 與路徑參數兩種形式，查詢結果相同
		api.GET("/info", handler.HandleInfoQuery)
		api.GET("/hair-info/:mode", handler.HandleInfoByMode)

		// 生成端點
		api.POST("/hair-plan", handler.HandlePlan)
		api.POST("/hair-chat", handler.HandleChat)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
