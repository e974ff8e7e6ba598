package routes

import (
	"time"

	"rentwatch/config"
	"rentwatch/handlers"
	"rentwatch/middleware"
	"rentwatch/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterReportRoutes registers the report job.
func RegisterReportRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api := r.Group("/reports")
	{
		api.POST("/monthly", hb.GenerateMonthlyReport)
	}
}

// RegisterNotificationRoutes registers the manual notification job.
func RegisterNotificationRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api := r.Group("/notifications")
	{
		api.POST("/send", hb.SendNotification)
	}
}

// RegisterUserRoutes registers first sign-in provisioning.
func RegisterUserRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api := r.Group("/users")
	{
		api.POST("/provision", hb.ProvisionUser)
	}
}

// RegisterJobRoutes registers on-demand runs of the scheduled jobs.
func RegisterJobRoutes(r *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api := r.Group("/jobs")
	{
		api.POST("/expiry-scan", hb.RunExpiryScan)
		api.POST("/purge", hb.RunPurge)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	origins := config.AppConfig.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(utils.ErrorHandler())
	r.Use(utils.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	RegisterHealthRoute(r, hb)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware(hb.Authenticator))
	RegisterReportRoutes(api, hb)
	RegisterNotificationRoutes(api, hb)
	RegisterUserRoutes(api, hb)
	RegisterJobRoutes(api, hb)
}
