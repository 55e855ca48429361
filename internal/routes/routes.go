package routes

import (
	"io"
	"log/slog"
	"time"

	"hrops-gateway/internal/auth"
	"hrops-gateway/internal/config"
	"hrops-gateway/internal/handlers"
	"hrops-gateway/internal/middleware"
	"hrops-gateway/internal/realtime"
	"hrops-gateway/internal/upstream"

	"github.com/gin-gonic/gin"
)

// Deps are the process-wide collaborators, built once at start.
type Deps struct {
	Config   config.Config
	Log      *slog.Logger
	Sessions *auth.Sessions
	// Hub defaults to a fresh hub.
	Hub *realtime.Hub
	// HTTP defaults to a client bounded by Config.Store.Timeout.
	HTTP upstream.Doer
	// Now defaults to time.Now.
	Now func() time.Time
}

func SetupRoutes(deps Deps) *gin.Engine {
	cfg := deps.Config
	log := deps.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Hub == nil {
		deps.Hub = realtime.NewHub()
	}
	if deps.HTTP == nil {
		deps.HTTP = upstream.NewHTTPClient(cfg.Store.Timeout)
	}

	client := upstream.NewClient(deps.HTTP, upstream.NewNormalizer(cfg.Store.DiagnosticLimit), log)
	taskProxy := handlers.NewProxy(handlers.ProxyOptions{
		Builder:    upstream.NewBuilder(cfg.Store.URL, cfg.Store.Key, upstream.TaskVocabulary(cfg.Store.SupportsDelete)),
		Client:     client,
		Hub:        deps.Hub,
		Channel:    realtime.ChannelTasks,
		Configured: cfg.StoreConfigured(),
		Log:        log,
	})
	calendarProxy := handlers.NewProxy(handlers.ProxyOptions{
		Builder:    upstream.NewBuilder(cfg.Store.URL, cfg.Store.Key, upstream.CalendarVocabulary(cfg.Store.SupportsDelete)),
		Client:     client,
		Hub:        deps.Hub,
		Channel:    realtime.ChannelCalendar,
		Configured: cfg.StoreConfigured(),
		Log:        log,
	})

	pin := auth.NewPIN(cfg.Admin.PIN)
	board := handlers.NewBoard(taskProxy, deps.Now)
	views := handlers.NewCalendarViews(calendarProxy, deps.Now)
	admin := handlers.NewAdmin(pin, deps.Sessions, log)
	feed := handlers.NewChangeFeed(deps.Hub, log)

	// Create a new GIN Router
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(log))

	// CORS middleware (for frontend integration)
	allowedOrigin := cfg.HTTP.AllowedOrigin
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Admin-Pin, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":           "ok",
			"store_configured": cfg.StoreConfigured(),
		})
	})

	ginRouter.GET("/ws", feed.Subscribe)

	api := ginRouter.Group("/api")
	{
		// Task records proxy
		api.GET("/gs", taskProxy.Handle)
		api.POST("/gs", taskProxy.Handle)

		// Calendar events proxy; mutations need the admin PIN or session
		api.GET("/calendar", calendarProxy.Handle)
		api.POST("/calendar", middleware.AdminGate(pin, deps.Sessions), calendarProxy.Handle)

		api.GET("/calendar/month", views.Month)
		api.GET("/calendar/types", views.Types)
		api.GET("/calendar/ics", views.ICS)

		api.GET("/board", board.Get)
		api.GET("/dp/snapshot", handlers.GetDPSnapshot)
		api.POST("/admin/session", admin.CreateSession)
	}

	return ginRouter
}
