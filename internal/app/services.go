package app

import (
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
	"github.com/Paolahz1/bootcamp-capability/internal/services"
)

type Services struct {
	Capability services.CapabilityService
	Report     services.ReportService
	Saga       services.BootcampDeletionSaga
	Bootcamp   services.BootcampService
}

func wireServices(cfg Config, reposet Repos, clients Clients, log *logger.Logger) Services {
	log.Info("Wiring services...")

	capabilitySvc := services.NewCapabilityService(
		reposet.Capability, clients.Technology, clients.Bootcamp,
		cfg.EnrichConcurrency, log)

	reportSvc := services.NewReportService(
		clients.ReportStore, reposet.Capability, clients.Technology,
		cfg.EnrichConcurrency, cfg.ReportWriteTimeout, log)

	saga := services.NewBootcampDeletionSaga(
		clients.Person, clients.Bootcamp, reposet.Capability, reposet.SagaRun,
		reportSvc, cfg.SagaConcurrency, log)

	bootcampSvc := services.NewBootcampService(
		clients.Bootcamp, clients.Person, clients.Technology,
		capabilitySvc, saga, reportSvc, cfg.EnrichConcurrency, log)

	return Services{
		Capability: capabilitySvc,
		Report:     reportSvc,
		Saga:       saga,
		Bootcamp:   bootcampSvc,
	}
}
