package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campushub/api/internal/container"
	"github.com/campushub/api/internal/handlers"
	"github.com/campushub/api/internal/middleware"
)

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API version 1
	v1 := r.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "OK",
				"service": "campushub-api",
			})
		})

		// public routes
		v1.POST("/signup", handlers.SignUp(c.UserService))
		v1.POST("/login", handlers.SignIn(c.UserService))
		v1.POST("/logout", handlers.Logout())
		v1.POST("/refresh", handlers.RefreshToken(c.UserService))

		// Browsing and feedback reads stay public; the event listing uses
		// query params for category/search/tag filtering.
		v1.GET("/events", handlers.ListEvents(c.EventService))
		v1.GET("/events/:id", handlers.GetEvent(c.EventService))
		v1.GET("/events/:id/feedback", handlers.ListFeedback(c.FeedbackService))
		v1.GET("/events/:id/rsvps/count", handlers.CountEventRsvps(c.RsvpService))
		v1.GET("/stats", handlers.GetStats(c.EventService))
	}

	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(c.UserService, c.Logger))
	{
		protected.GET("/profile", handlers.GetProfile(c.UserService))
		protected.PUT("/profile", handlers.SaveProfile(c.UserService))

		protected.POST("/events", handlers.CreateEvent(c.EventService))
		protected.PATCH("/events/:id", handlers.UpdateEvent(c.EventService))
		protected.DELETE("/events/:id", handlers.DeleteEvent(c.EventService))
		protected.GET("/my-events", handlers.MyEvents(c.EventService))

		protected.POST("/events/:id/rsvps", handlers.AddRsvp(c.RsvpService))
		protected.DELETE("/events/:id/rsvps", handlers.RemoveRsvp(c.RsvpService))
		protected.GET("/events/:id/rsvps/me", handlers.GetMyRsvp(c.RsvpService))
		protected.GET("/events/:id/rsvps", handlers.ListEventRsvps(c.RsvpService, c.EventService))
		protected.GET("/my-rsvps", handlers.MyRsvps(c.RsvpService, c.EventService))
		protected.POST("/events/:id/checkin", handlers.CheckIn(c.RsvpService, c.EventService))

		protected.POST("/events/:id/feedback", handlers.AddFeedback(c.FeedbackService))
		protected.GET("/events/:id/feedback/me", handlers.GetMyFeedback(c.FeedbackService))
	}

	return r
}
