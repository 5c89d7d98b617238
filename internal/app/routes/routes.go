package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/yigit/alumnihub/internal/app/controllers"
	"github.com/yigit/alumnihub/internal/middleware"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Directory *controllers.DirectoryController
	Event     *controllers.EventController
	News      *controllers.NewsController
	Dashboard *controllers.DashboardController
	Health    *controllers.HealthController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	// Probes (public)
	router.GET("/ping", ctrl.Health.Ping)
	router.GET("/healthz", ctrl.Health.Healthz)

	// API version group
	v1 := router.Group("/api/v1")
	v1.GET("/ping", ctrl.Health.Ping)

	// Everything else needs a member identity
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	authenticated.GET("/directory", ctrl.Directory.SearchDirectory)

	profiles := authenticated.Group("/profiles")
	{
		// "me" is registered before ":id" so it is never treated as an id
		profiles.GET("/me", ctrl.Directory.GetMyProfile)
		profiles.PUT("/me", ctrl.Directory.UpdateMyProfile)
		profiles.GET("/:id", ctrl.Directory.GetProfile)
	}

	events := authenticated.Group("/events")
	{
		events.GET("", ctrl.Event.ListEvents)
		events.POST("", ctrl.Event.CreateEvent)
		events.GET("/:id", ctrl.Event.GetEvent)
		events.POST("/:id/registrations", ctrl.Event.Register)
		events.DELETE("/:id/registrations", ctrl.Event.CancelRegistration)
	}

	news := authenticated.Group("/news")
	{
		news.GET("", ctrl.News.ListNews)
		news.POST("", ctrl.News.CreateNews)
		news.POST("/:id/like", ctrl.News.ToggleLike)
		news.POST("/:id/views", ctrl.News.RecordView)
		news.GET("/:id/comments", ctrl.News.ListComments)
		news.POST("/:id/comments", ctrl.News.AddComment)
	}

	authenticated.GET("/dashboard", ctrl.Dashboard.GetDashboard)
}
