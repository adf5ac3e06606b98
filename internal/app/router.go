package app

import (
	"github.com/Cleverson128/METODO-VAP/docs"
	"github.com/Cleverson128/METODO-VAP/internal/config"
	"github.com/Cleverson128/METODO-VAP/internal/middleware"
	"github.com/Cleverson128/METODO-VAP/internal/model"
	"github.com/Cleverson128/METODO-VAP/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/health", c.health.Health)

	// Public routes
	public := router.Group("/api")
	{
		public.POST("/login", c.auth.Login)
		public.POST("/webhooks/hotmart", c.webhook.HotmartPurchase)
	}

	// Student routes
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/logout", c.auth.Logout)
		authGroup.GET("/me", c.auth.Me)
		authGroup.PUT("/password", c.auth.ChangePassword)

		authGroup.GET("/modules", c.module.ListModules)
		authGroup.POST("/modules/:id/complete", c.module.CompleteModule)
		authGroup.POST("/modules/:id/exercise", c.module.SubmitExercise)
		authGroup.GET("/progress", c.module.Summary)

		authGroup.POST("/sessions/start", c.study.StartSession)
		authGroup.POST("/sessions/end", c.study.EndSession)
		authGroup.GET("/sessions/active", c.study.ActiveSession)

		authGroup.GET("/achievements", c.achievement.ListAchievements)
		authGroup.GET("/leaderboard", c.achievement.Leaderboard)
	}

	// Admin routes
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.GET("/users/:id", c.user.GetUser)
		admin.POST("/users/:id/reset-password", c.user.ResetPassword)
		admin.PUT("/users/:id/disabled", c.user.SetDisabled)

		admin.POST("/modules/:id/video", c.module.UploadVideo)
		admin.POST("/modules/:id/exercise", c.module.UploadExercise)
	}
}
