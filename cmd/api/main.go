package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"remo-go/internal/api/handler"
	"remo-go/internal/api/middleware"
	"remo-go/internal/api/router"
	"remo-go/internal/config"
	"remo-go/internal/infra/database"
	infraGoogle "remo-go/internal/infra/google"
	infraKafka "remo-go/internal/infra/kafka"
	infraRedis "remo-go/internal/infra/redis"
	"remo-go/internal/model"
	"remo-go/internal/ratelimit"
	"remo-go/internal/repository"
	"remo-go/internal/service"
	"remo-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 自动迁移数据库表
	if err := database.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 构建限流器：单实例用进程内滑动窗口，多实例部署切到 redis 后端共享计数
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var limiter ratelimit.Limiter
	switch cfg.RateLimit.Backend {
	case "redis":
		if err := infraRedis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to init redis", zap.Error(err))
		}
		defer infraRedis.Close()
		limiter = ratelimit.NewRedisLimiter(infraRedis.Get(), cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests)
	default:
		memLimiter := ratelimit.NewMemoryLimiter(cfg.RateLimit.Window(), cfg.RateLimit.MaxRequests)
		go memLimiter.StartCleanup(ctx, time.Minute)
		limiter = memLimiter
	}

	// 初始化 Kafka 评论事件生产者（可选）
	var publishEvent service.CommentEventPublisher
	if cfg.Kafka.Enabled {
		if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
			logger.Fatal("Failed to init kafka producer", zap.Error(err))
		}
		defer infraKafka.CloseProducer()

		if topic, ok := cfg.Kafka.Topics["comment_events"]; ok {
			publishEvent = func(ctx context.Context, event *infraKafka.CommentEvent) error {
				return infraKafka.PublishCommentEvent(ctx, topic, event)
			}
		}
	}

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	// 使用自定义中间件
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authService := service.NewAuthService(userRepo, infraGoogle.NewVerifier(cfg.Google.ClientID))
	videoService := service.NewVideoService(videoRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo, limiter, publishEvent)

	authHandler := handler.NewAuthHandler(authService)
	videoHandler := handler.NewVideoHandler(videoService)
	commentHandler := handler.NewCommentHandler(commentService)

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)
	r.GET("/", rootHandler)

	// 注册业务路由
	router.Setup(r, authHandler, videoHandler, commentHandler)

	// 启动服务器
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database_driver", cfg.Database.Driver),
		zap.String("rate_limit_backend", cfg.RateLimit.Backend),
		zap.Int("rate_limit_window_seconds", cfg.RateLimit.WindowSeconds),
		zap.Int("rate_limit_max_requests", cfg.RateLimit.MaxRequests),
		zap.Bool("kafka_enabled", cfg.Kafka.Enabled),
	)

	// 启动HTTP服务器
	logger.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}

// rootHandler 根路径处理器
func rootHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s API is running", cfg.App.Name),
		"project": cfg.App.Name,
		"version": cfg.App.Version,
		"mode":    cfg.App.Mode,
		"status":  "ok",
	})
}
