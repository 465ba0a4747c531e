package router

import (
	"remo-go/internal/api/handler"
	"remo-go/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

// Setup 注册所有业务路由
func Setup(
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	videoHandler *handler.VideoHandler,
	commentHandler *handler.CommentHandler,
) {
	v1 := r.Group("/api/v1")

	// --- 认证模块 ---
	auth := v1.Group("/auth")
	{
		auth.POST("/google", authHandler.GoogleLogin)
		auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
	}

	// --- 视频模块 ---
	videos := v1.Group("/videos")
	{
		videos.GET("", videoHandler.List)
		videos.POST("", middleware.ResolveIdentity(), videoHandler.Create)
		videos.POST("/seed", videoHandler.Seed)
		videos.GET("/:id", videoHandler.GetDetail)
		videos.DELETE("/:id", middleware.AuthRequired(), videoHandler.Delete)

		// --- 评论模块 ---
		// 列表不解析身份也不限流；创建和删除解析身份但不强制登录，
		// 游客评论与删除授权由服务层的门控决定
		videos.GET("/:id/comments", commentHandler.ListByVideo)
		videos.POST("/:id/comments", middleware.ResolveIdentity(), commentHandler.Create)
		videos.DELETE("/:id/comments/:comment_id", middleware.ResolveIdentity(), commentHandler.Delete)
	}
}
