package domain

import (
	"time"

	"gorm.io/datatypes"
)

// SagaRun is the audit row for one bootcamp-deletion saga execution. Rows are
// written best-effort: a failed audit write never gates a saga step.
type SagaRun struct {
	ID            int64          `gorm:"primaryKey;autoIncrement"`
	BootcampID    int64          `gorm:"index;not null"`
	State         string         `gorm:"size:40;not null"`
	CapabilityIDs datatypes.JSON `gorm:"type:jsonb"`
	FailedStep    string         `gorm:"size:40"`
	Detail        string         `gorm:"size:500"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (SagaRun) TableName() string { return "saga_runs" }
