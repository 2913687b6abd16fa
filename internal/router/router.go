package router

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/quickcut-dev/quickcut/internal/handlers"
	"github.com/quickcut-dev/quickcut/internal/middleware"
	"github.com/quickcut-dev/quickcut/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Unregistered methods on known paths answer 405, not 404.
	r.HandleMethodNotAllowed = true

	corsHandler := cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})

	// The board webhook manages its own CORS: deliveries come from Monday's
	// servers, not a browser, and the endpoint must stay origin-agnostic.
	r.Use(func(ctx *gin.Context) {
		if strings.HasPrefix(ctx.Request.URL.Path, "/api/webhooks/") {
			ctx.Next()
			return
		}
		corsHandler(ctx)
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		// Any, not POST: the subscription handshake may arrive with any
		// method and still expects its challenge echoed.
		api.Any("/webhooks/monday", handlers.MondayWebhook)

		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		api.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		api.PUT("/me", middleware.AuthMiddleware(), handlers.UpdateMe)

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", handlers.CreateProject)
			projects.GET("", handlers.ListProjects)
			projects.GET("/:project_id", handlers.GetProject)
			projects.DELETE("/:project_id", handlers.DeleteProject)

			// Feedback endpoints
			projects.POST("/:project_id/feedback", handlers.CreateFeedback)
			projects.GET("/:project_id/feedback", handlers.ListFeedback)
		}
	}

	return r
}
