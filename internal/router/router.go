package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/educonnect-backend/internal/config"
	"github.com/stemsi/educonnect-backend/internal/handler"
	"github.com/stemsi/educonnect-backend/internal/middleware"
	"github.com/stemsi/educonnect-backend/internal/response"
)

// datasetMaxAge is how long clients may cache the read-only dataset.
const datasetMaxAge = 300

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth     *handler.AuthHandler
	Dataset  *handler.DatasetHandler
	Calendar *handler.CalendarHandler
	Class    *handler.ClassHandler
	Message  *handler.MessageHandler
	Setting  *handler.SettingHandler
	System   *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// dispatchLimiter throttles message sends per client IP.
func SetupRouter(
	handlers *Handlers,
	dispatchLimiter middleware.Limiter,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// Class labels such as "6º A" arrive percent-encoded in the path.
	router.UseRawPath = true
	router.UnescapePathValues = true

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Content-Disposition"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", handlers.System.Health)

	api := router.Group("/api/v1")

	// ─── 1. Auth ───────────────────────────────────────────────────────
	api.POST("/auth/login", handlers.Auth.Login)

	// ─── 2. Dataset (read-only) ────────────────────────────────────────
	dataset := api.Group("")
	dataset.Use(middleware.CacheControl(datasetMaxAge))
	{
		dataset.GET("/students", handlers.Dataset.ListStudents)
		dataset.GET("/templates", handlers.Dataset.ListTemplates)
	}

	// ─── 3. Calendar ───────────────────────────────────────────────────
	calendar := api.Group("/calendar")
	{
		calendar.GET("/events", handlers.Calendar.ListEvents)
		calendar.POST("/events", handlers.Calendar.CreateEvent)
		calendar.GET("/month", handlers.Calendar.GetMonth)
	}

	// ─── 4. Classes ────────────────────────────────────────────────────
	classes := api.Group("/classes")
	{
		classes.GET("", handlers.Class.ListClasses)
		classes.POST("", handlers.Class.AddClass)
		classes.GET("/:serie/students", handlers.Class.ListStudents)
		classes.GET("/:serie/export", handlers.Class.ExportRoster)
	}

	// ─── 5. Messaging ──────────────────────────────────────────────────
	messages := api.Group("/messages")
	{
		messages.GET("/series", handlers.Message.ListSeries)
		messages.GET("/students", handlers.Message.ListStudents)
		messages.POST("/preview", handlers.Message.Preview)
		messages.POST("/send", middleware.RateLimit(dispatchLimiter, log), handlers.Message.Send)
		messages.GET("/history", handlers.Message.History)
	}

	// ─── 6. Settings ───────────────────────────────────────────────────
	settings := api.Group("/settings")
	{
		settings.GET("", handlers.Setting.GetSettings)
		settings.PUT("/password", handlers.Setting.ChangePassword)
		settings.PUT("/notifications", handlers.Setting.UpdateNotifications)
	}

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	})

	return router
}
