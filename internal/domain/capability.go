package domain

import "time"

const (
	MinTechnologiesPerCapability = 3
	MaxTechnologiesPerCapability = 20
)

// Capability is owned by the local store. Bootcamps reference capabilities by
// id but never own them.
type Capability struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:120;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"size:500;not null" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Resolved during enrichment only, never persisted here.
	TechnologyIDs []int64      `gorm:"-" json:"technologyIds"`
	Technologies  []Technology `gorm:"-" json:"technologies,omitempty"`
}

func (Capability) TableName() string { return "capabilities" }

// CapabilityTechnology is the relation row between a capability and a
// technology id from the remote Technology service.
type CapabilityTechnology struct {
	CapabilityID int64 `gorm:"primaryKey;autoIncrement:false"`
	TechnologyID int64 `gorm:"primaryKey;autoIncrement:false;index"`
}

func (CapabilityTechnology) TableName() string { return "capability_technologies" }
