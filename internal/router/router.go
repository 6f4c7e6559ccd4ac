package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"etiqo/internal/config"
	"etiqo/internal/handler"
	"etiqo/internal/middleware"
)

// Setup configures the gin engine with middleware and all routes.
func Setup(
	cfg *config.Config,
	orderHandler *handler.OrderHandler,
	labelHandler *handler.LabelHandler,
	healthHandler *handler.HealthHandler,
) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		{
			orders.POST("/parse", orderHandler.ParseOrder)
		}

		labels := v1.Group("/labels")
		{
			labels.POST("/generate", labelHandler.GenerateLabels)
			labels.GET("/download", labelHandler.DownloadLabel)
		}
	}

	return r
}
