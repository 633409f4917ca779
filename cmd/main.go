package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mindease-backend/internal/config"
	"mindease-backend/internal/handler"
	"mindease-backend/internal/service"
	"mindease-backend/internal/throttle"
	"mindease-backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// 初始化服务
	llmService := service.NewLLMService(cfg.Groq)
	wellnessService := service.NewWellnessService(llmService)
	emotionService := service.NewEmotionService(cfg.Engine)

	// 限流存储：单进程内存实现，可按需替换为外部缓存
	var store throttle.Store
	if cfg.RateLimit.Enabled {
		store = throttle.NewMemoryStore(cfg.RateLimit.Cooldown)
	}

	// 初始化处理器
	gatewayHandler := handler.NewGatewayHandler(wellnessService, emotionService, store, cfg.RateLimit.Cooldown)

	// 创建路由
	router := setupRouter(cfg, gatewayHandler)

	// 创建HTTP服务器
	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// 启动服务器
	go func() {
		logger.Infof("服务器启动在端口 %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待信号优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务器正在关闭...")
	if err := server.Close(); err != nil {
		logger.Errorf("服务器关闭失败: %v", err)
	}
	logger.Info("服务器已关闭")
}

func setupRouter(cfg *config.Config, gatewayHandler *handler.GatewayHandler) *gin.Engine {
	// 设置gin模式
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(handler.RequestID())
	router.Use(handler.Metrics())

	// CORS配置
	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// 健康检查
	router.GET("/", gatewayHandler.Health)

	// 指标
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 网关路由（self-care-plan的/api前缀是历史遗留的对外约定，保持不变）
	router.POST("/analyze", gatewayHandler.Analyze)
	router.POST("/suggest-coping", gatewayHandler.SuggestCoping)
	router.POST("/chat", gatewayHandler.Chat)
	router.POST("/api/self-care-plan", gatewayHandler.SelfCarePlan)
	router.POST("/journal-prompt", gatewayHandler.JournalPrompt)
	router.GET("/daily-quotes", gatewayHandler.DailyQuotes)

	return router
}
