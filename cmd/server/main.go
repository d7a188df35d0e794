// Package main 是应用程序的入口点。
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"ai-assistant-go/internal/config"
	"ai-assistant-go/internal/handler"
	"ai-assistant-go/internal/middleware"
	"ai-assistant-go/internal/repository"
	"ai-assistant-go/internal/service"
	"ai-assistant-go/pkg/database"
	"ai-assistant-go/pkg/llm"
	"ai-assistant-go/pkg/log"
	"ai-assistant-go/pkg/token"
)

func main() {
	// 1. 初始化配置
	config.Init("./configs/config.yaml")
	cfg := config.Conf

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()
	log.Info("日志记录器初始化成功")

	// 3. 机密项缺失必须在触碰任何外部服务之前失败
	if err := cfg.Validate(); err != nil {
		log.Fatal("配置校验失败", err)
	}

	// 4. 初始化数据存储连接
	db := database.InitPostgres(cfg.Database.Postgres.DSN)
	rdb := database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)

	// 5. 初始化 Repository（助手只读，套一层 Redis 读穿缓存）
	assistantRepo := repository.NewCachedAssistantRepository(repository.NewAssistantRepository(db), rdb)
	chatRepo := repository.NewChatRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// 6. 初始化 Service（依赖注入，不依赖任何包级单例）
	jwtManager := token.NewManager(cfg.JWT.Secret)
	llmClient := llm.NewClient(cfg.LLM)
	generateService := service.NewGenerateService(assistantRepo, chatRepo, messageRepo, llmClient, cfg.LLM.TitleModel)
	assistantService := service.NewAssistantService(assistantRepo)
	chatService := service.NewChatService(chatRepo, messageRepo, assistantRepo)

	// 7. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), middleware.CORS())

	// 8. 注册路由
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 核心生成接口：service-role 语义，与原边缘函数一致，不校验用户 token。
		// OPTIONS 预检由 CORS 中间件就地应答。
		apiV1.POST("/generate", handler.NewGenerateHandler(generateService).Generate)
		apiV1.OPTIONS("/generate", func(c *gin.Context) {})

		// 面向移动端的读写面，需要认证
		authed := apiV1.Group("/")
		authed.Use(middleware.Auth(jwtManager))
		{
			authed.GET("/assistants", handler.NewAssistantHandler(assistantService).List)

			chats := authed.Group("/chats")
			{
				chatHandler := handler.NewChatHandler(chatService)
				chats.GET("", chatHandler.List)
				chats.POST("", chatHandler.Create)
				chats.GET("/:chatId/messages", chatHandler.ListMessages)
				chats.DELETE("/:chatId", chatHandler.Delete)
			}
		}
	}

	// 9. 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}
