package app

import (
	"github.com/Paolahz1/bootcamp-capability/internal/clients/bootcamp"
	"github.com/Paolahz1/bootcamp-capability/internal/clients/httpx"
	"github.com/Paolahz1/bootcamp-capability/internal/clients/person"
	"github.com/Paolahz1/bootcamp-capability/internal/clients/reportstore"
	"github.com/Paolahz1/bootcamp-capability/internal/clients/technology"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type Clients struct {
	Bootcamp    bootcamp.Client
	Person      person.Client
	Technology  technology.Client
	ReportStore reportstore.Store
}

func wireClients(cfg Config, log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	bootcampClient, err := bootcamp.New(httpx.Config{
		BaseURL: cfg.BootcampServiceURL,
		Timeout: cfg.ClientTimeout,
	}, log)
	if err != nil {
		return Clients{}, err
	}

	personClient, err := person.New(httpx.Config{
		BaseURL: cfg.PersonServiceURL,
		Timeout: cfg.ClientTimeout,
	}, log)
	if err != nil {
		return Clients{}, err
	}

	technologyClient, err := technology.New(httpx.Config{
		BaseURL: cfg.TechnologyServiceURL,
		Timeout: cfg.ClientTimeout,
	}, cfg.EnrichConcurrency, log)
	if err != nil {
		return Clients{}, err
	}

	reportStore, err := reportstore.NewFromEnv(log)
	if err != nil {
		return Clients{}, err
	}

	return Clients{
		Bootcamp:    bootcampClient,
		Person:      personClient,
		Technology:  technologyClient,
		ReportStore: reportStore,
	}, nil
}
