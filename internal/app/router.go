package app

import (
	internalhttp "github.com/Paolahz1/bootcamp-capability/internal/http"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

func wireServer(log *logger.Logger, handlerset Handlers) *internalhttp.Server {
	log.Info("Wiring router...")
	return internalhttp.NewServer(internalhttp.RouterConfig{
		Log:               log,
		CapabilityHandler: handlerset.Capability,
		BootcampHandler:   handlerset.Bootcamp,
		ReportHandler:     handlerset.Report,
		HealthHandler:     handlerset.Health,
	})
}
