package routes

import (
	"net/http"
	"time"

	"moveline/handlers"
	"moveline/metrics"
	"moveline/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterOrderRoutes registers all endpoints for the order wizard.
func RegisterOrderRoutes(r *gin.Engine, oh *handlers.OrderHandler, ph *handlers.PhotoHandler) {
	orders := r.Group("/api/orders")
	{
		orders.POST("/session", oh.StartSession)

		session := orders.Group("/session/:sessionID")
		session.GET("", oh.GetSession)
		session.DELETE("", oh.ResetOrder)

		session.POST("/service", oh.SelectService)
		session.POST("/addons/toggle", oh.ToggleAddon)
		session.POST("/bundle", oh.SetBundle)

		session.PUT("/pickup", oh.SetPickupLocation)
		session.PUT("/dropoff", oh.SetDropoffLocation)

		session.POST("/photos", ph.UploadPhoto)
		session.DELETE("/photos/:photoID", ph.DeletePhoto)
		session.POST("/analyze", oh.AnalyzePhotos)

		session.PUT("/vehicle", oh.SetVehicleType)
		session.PUT("/movers", oh.SetNumberOfMovers)
		session.PUT("/schedule", oh.SetSchedule)
		session.GET("/availability", oh.GetAvailability)

		session.PUT("/customer", oh.SetCustomerInfo)
		session.PUT("/payment-info", oh.SetPaymentInfo)
		session.POST("/payment-intent", oh.GetPaymentIntent)
		session.POST("/pay", oh.ProcessPayment)

		session.GET("/tracking", oh.GetTracking)
		session.POST("/rating", oh.SubmitRating)

		session.POST("/steps/next", oh.NextStep)
		session.POST("/steps/prev", oh.PrevStep)
		session.PUT("/steps", oh.GoToStep)
	}
}

// RegisterCatalogRoutes registers the read-only service catalog endpoint.
func RegisterCatalogRoutes(r *gin.Engine) {
	r.GET("/api/catalog", handlers.GetCatalog)
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Moveline"})
	})
}

// RegisterMetricsRoute exposes the Prometheus registry.
func RegisterMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, oh *handlers.OrderHandler, ph *handlers.PhotoHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterOrderRoutes(r, oh, ph)
	RegisterCatalogRoutes(r)
	RegisterHealthRoute(r)
	RegisterMetricsRoute(r)
}
