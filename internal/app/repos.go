package app

import (
	"gorm.io/gorm"

	"github.com/Paolahz1/bootcamp-capability/internal/data/repos"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

type Repos struct {
	Capability repos.CapabilityRepo
	SagaRun    repos.SagaRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Capability: repos.NewCapabilityRepo(db, log),
		SagaRun:    repos.NewSagaRunRepo(db, log),
	}
}
