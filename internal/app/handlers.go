package app

import (
	"github.com/Paolahz1/bootcamp-capability/internal/http/handlers"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type Handlers struct {
	Capability *handlers.CapabilityHandler
	Bootcamp   *handlers.BootcampHandler
	Report     *handlers.ReportHandler
	Health     *handlers.HealthHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Capability: handlers.NewCapabilityHandler(log, serviceset.Capability),
		Bootcamp:   handlers.NewBootcampHandler(log, serviceset.Bootcamp),
		Report:     handlers.NewReportHandler(log, serviceset.Bootcamp),
		Health:     handlers.NewHealthHandler(),
	}
}
