package http

import (
	"github.com/gin-gonic/gin"

	httpH "github.com/Paolahz1/bootcamp-capability/internal/http/handlers"
	httpMW "github.com/Paolahz1/bootcamp-capability/internal/http/middleware"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	CapabilityHandler *httpH.CapabilityHandler
	BootcampHandler   *httpH.BootcampHandler
	ReportHandler     *httpH.ReportHandler
	HealthHandler     *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Capabilities
		if cfg.CapabilityHandler != nil {
			api.POST("/capabilities", cfg.CapabilityHandler.Create)
			api.GET("/capabilities", cfg.CapabilityHandler.List)
			api.GET("/capabilities/:id", cfg.CapabilityHandler.GetByID)
			api.DELETE("/capabilities/:id", cfg.CapabilityHandler.Delete)
			api.GET("/capabilities/by-ids", cfg.CapabilityHandler.GetByIDs)
			api.GET("/capabilities/count-by-technology/:technologyId", cfg.CapabilityHandler.CountByTechnology)
		}

		// Bootcamps + enrollments
		if cfg.BootcampHandler != nil {
			api.POST("/bootcamps", cfg.BootcampHandler.Create)
			api.GET("/bootcamps", cfg.BootcampHandler.List)
			api.DELETE("/bootcamps/:id", cfg.BootcampHandler.Delete)
			api.POST("/enrollments", cfg.BootcampHandler.Enroll)
		}

		// Reports
		if cfg.ReportHandler != nil {
			api.GET("/reports/top-bootcamp", cfg.ReportHandler.TopBootcamp)
		}
	}

	return r
}
