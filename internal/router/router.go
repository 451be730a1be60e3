package router

import (
	"docspace/internal/handlers"
	"docspace/internal/middleware"
	"docspace/pkg/config"
	"docspace/pkg/response"

	"github.com/gin-gonic/gin"
)

// Handlers 路由依赖的处理器集合，在 main 中组装后注入
type Handlers struct {
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Workspace *handlers.WorkspaceHandler
	Document  *handlers.DocumentHandler
	Job       *handlers.JobHandler
	AuditLog  *handlers.AuditLogHandler
	Search    *handlers.SearchHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, auth *middleware.AuthMiddleware, h *Handlers) *gin.Engine {
	router := gin.New()

	// 中间件
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS(cfg))

	registerRoutes(router, auth, h)
	return router
}

// 注册所有路由
func registerRoutes(router *gin.Engine, auth *middleware.AuthMiddleware, h *Handlers) {

	// API路由组
	api := router.Group("/api/v1")
	{
		// 健康检查接口
		api.GET("/health", healthCheck)
		api.GET("/ping", ping)

		// 认证路由
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", h.Auth.Register)
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/refresh", h.Auth.RefreshToken)

			// 🔒 需要登录
			authGroup.POST("/logout", auth.RequireLogin(), h.Auth.Logout)
			authGroup.GET("/me", auth.RequireLogin(), h.Auth.Me)
		}

		// 用户路由
		users := api.Group("/users")
		{
			users.DELETE("/me", auth.RequireLogin(), h.User.DeleteMe)
		}

		// 🔒 工作区路由（角色检查在服务层按 存在性→租户→成员→角色 顺序执行）
		workspaces := api.Group("/workspaces", auth.RequireLogin())
		{
			workspaces.POST("", h.Workspace.Create)
			workspaces.GET("", h.Workspace.List)
			workspaces.GET("/:id", h.Workspace.Get)
			workspaces.PUT("/:id", h.Workspace.Update)
			workspaces.DELETE("/:id", h.Workspace.Delete)

			// 成员管理
			workspaces.GET("/:id/members", h.Workspace.ListMembers)
			workspaces.POST("/:id/members", h.Workspace.AddMember)
			workspaces.PUT("/:id/members/:user_id", h.Workspace.UpdateMember)
			workspaces.DELETE("/:id/members/:user_id", h.Workspace.RemoveMember)

			// 工作区内文档
			workspaces.POST("/:id/documents", h.Document.Upload)
			workspaces.GET("/:id/documents", h.Document.List)
		}

		// 🔒 文档路由
		documents := api.Group("/documents", auth.RequireLogin())
		{
			documents.GET("/:id", h.Document.Get)
			documents.PUT("/:id", h.Document.Update)
			documents.DELETE("/:id", h.Document.Delete)
			documents.GET("/:id/download", h.Document.Download)
			documents.GET("/:id/jobs", h.Job.ListByDocument)
		}

		// 🔒 处理任务（只读）
		jobs := api.Group("/jobs", auth.RequireLogin())
		{
			jobs.GET("/:id", h.Job.Get)
		}

		// 🔒 审计日志
		api.GET("/audit-logs", auth.RequireLogin(), h.AuditLog.List)

		// 🔒 搜索与摘要
		api.POST("/search", auth.RequireLogin(), h.Search.Search)
		api.POST("/summaries", auth.RequireLogin(), h.Search.Summarize)
	}
}

// healthCheck 健康检查
func healthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "healthy",
		"message": "API is running",
	})
}

// ping 存活探测
func ping(c *gin.Context) {
	response.SuccessWithMessage(c, "pong", nil)
}
