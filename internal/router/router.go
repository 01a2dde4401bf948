package router

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/eduroese/To-Do-App/internal/handlers"
	"github.com/eduroese/To-Do-App/internal/logging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(h *handlers.Handler, allowedOrigins []string, logger *log.Logger) *gin.Engine {
	r := gin.New()
	r.Use(logging.GinLogger(logger), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)
		api.GET("/ws", h.WebSocket)

		tasks := api.Group("/tasks")
		{
			tasks.GET("", h.List)
			tasks.GET("/:id", h.List)
			tasks.POST("", h.Create)
			tasks.POST("/:id", h.Create)
			tasks.PUT("", h.Update)
			tasks.PUT("/:id", h.Update)
			tasks.DELETE("", h.Delete)
			tasks.DELETE("/:id", h.Delete)
		}
	}

	return r
}
