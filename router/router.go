// Package router wires the HTTP surface: middleware, health probes, and the
// versioned API routes.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/filebright/filebright-backend/config"
	"github.com/filebright/filebright-backend/handlers"
	"github.com/filebright/filebright-backend/middleware"
)

// Dependencies holds everything required for setting up routes.
type Dependencies struct {
	Config          *config.Config
	HealthHandler   *handlers.HealthHandler
	DocumentHandler *handlers.DocumentHandler
	TaxHandler      *handlers.TaxHandler
}

// SetupRouter configures and returns the gin engine with all routes defined.
func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Server.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(&deps.Config.Server))

	_ = r.SetTrustedProxies(deps.Config.Server.TrustedProxies)

	r.GET("/health", deps.HealthHandler.LivenessCheck)
	r.GET("/health/ready", deps.HealthHandler.ReadinessCheck)

	v1 := r.Group("/v1")
	{
		documents := v1.Group("/documents")
		{
			documents.POST("", deps.DocumentHandler.Upload)
			documents.GET("", deps.DocumentHandler.List)
			documents.GET("/:id", deps.DocumentHandler.Get)
			documents.DELETE("/:id", deps.DocumentHandler.Delete)
			documents.POST("/:id/process", deps.DocumentHandler.Process)
		}

		tax := v1.Group("/tax")
		{
			tax.POST("/calculate", deps.TaxHandler.Calculate)
			tax.GET("/states/:code", deps.TaxHandler.StateProfile)
		}
	}

	return r
}
