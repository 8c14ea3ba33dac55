package app

import (
	"time"

	"github.com/Paolahz1/bootcamp-capability/internal/clients/httpx"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/envutil"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type Config struct {
	HTTPAddr string

	BootcampServiceURL   string
	PersonServiceURL     string
	TechnologyServiceURL string
	ClientTimeout        time.Duration

	EnrichConcurrency  int
	SagaConcurrency    int
	ReportWriteTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		HTTPAddr: ":" + envutil.Str("PORT", "8080"),

		BootcampServiceURL:   envutil.Str("BOOTCAMP_SERVICE_URL", "http://localhost:8081"),
		PersonServiceURL:     envutil.Str("PERSON_SERVICE_URL", "http://localhost:8082"),
		TechnologyServiceURL: envutil.Str("TECHNOLOGY_SERVICE_URL", "http://localhost:8083"),
		ClientTimeout:        envutil.Duration("CLIENT_TIMEOUT", httpx.DefaultTimeout),

		EnrichConcurrency:  envutil.Int("ENRICH_CONCURRENCY", 5),
		SagaConcurrency:    envutil.Int("SAGA_CONCURRENCY", 5),
		ReportWriteTimeout: envutil.Duration("REPORT_WRITE_TIMEOUT", 15*time.Second),
	}
	log.Info("Config loaded",
		"http_addr", cfg.HTTPAddr,
		"bootcamp_service", cfg.BootcampServiceURL,
		"person_service", cfg.PersonServiceURL,
		"technology_service", cfg.TechnologyServiceURL,
		"client_timeout", cfg.ClientTimeout,
		"enrich_concurrency", cfg.EnrichConcurrency,
		"saga_concurrency", cfg.SagaConcurrency,
	)
	return cfg
}
