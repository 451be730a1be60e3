package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"docspace/internal/database"
	"docspace/internal/handlers"
	"docspace/internal/middleware"
	"docspace/internal/router"
	"docspace/internal/services"
	"docspace/pkg/config"
	"docspace/pkg/jwt"
	"docspace/pkg/logger"
	"docspace/pkg/queue"
	"docspace/pkg/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Info("Starting DocSpace API...")

	// 初始化数据库
	if err := database.Initialize(cfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			appLogger.Error("Failed to close database:", err)
		}
	}()

	// 执行数据库迁移
	if err := database.Migrate(); err != nil {
		appLogger.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化任务队列
	jobQueue := queue.NewRedisQueue(&queue.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		Prefix:   cfg.Redis.Prefix,
	})
	defer func() {
		if err := jobQueue.Close(); err != nil {
			appLogger.Error("Failed to close Redis:", err)
		}
	}()
	if err := jobQueue.Ping(); err != nil {
		// 队列不可用只影响任务投递，不阻止服务启动
		appLogger.Errorf("Redis queue unavailable: %v", err)
	}

	// 初始化文件存储
	store, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		appLogger.Fatalf("Failed to initialize storage: %v", err)
	}

	// 初始化JWT管理器
	accessDuration, err := time.ParseDuration(cfg.JWT.AccessDuration)
	if err != nil {
		accessDuration = 30 * time.Minute
	}
	refreshDuration, err := time.ParseDuration(cfg.JWT.RefreshDuration)
	if err != nil {
		refreshDuration = 7 * 24 * time.Hour
	}
	jwtManager := jwt.NewJWTManager(cfg.JWT.SecretKey, accessDuration, refreshDuration)

	// 组装服务
	db := database.GetDB()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db, auditService)
	workspaceService := services.NewWorkspaceService(db, auditService)
	documentService := services.NewDocumentService(db, auditService, store, jobQueue, cfg.Upload)
	jobService := services.NewJobService(db)

	authMiddleware := middleware.NewAuthMiddleware(userService, jwtManager)

	routeHandlers := &router.Handlers{
		Auth:      handlers.NewAuthHandler(userService, jwtManager),
		User:      handlers.NewUserHandler(userService),
		Workspace: handlers.NewWorkspaceHandler(workspaceService),
		Document:  handlers.NewDocumentHandler(documentService, workspaceService),
		Job:       handlers.NewJobHandler(jobService),
		AuditLog:  handlers.NewAuditLogHandler(auditService),
		Search:    handlers.NewSearchHandler(workspaceService, documentService),
	}

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	// 设置路由
	r := router.SetupRouter(cfg, authMiddleware, routeHandlers)

	// 启动服务器
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	if err := server.Close(); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
}
