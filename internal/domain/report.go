package domain

import "time"

// BootcampReport is the denormalized snapshot kept in the report store. It is
// written behind the primary operation and is eventually consistent with the
// authoritative Bootcamp/Capability data; its absence must never fail a
// primary operation.
type BootcampReport struct {
	BootcampID      int64                `json:"bootcampId"`
	Name            string               `json:"name"`
	Description     string               `json:"description"`
	StartDate       string               `json:"startDate"`
	EndDate         string               `json:"endDate"`
	CapacityCount   int                  `json:"capacityCount"`
	TechnologyCount int                  `json:"technologyCount"`
	EnrollmentCount int64                `json:"enrollmentCount"`
	Capabilities    []CapabilitySnapshot `json:"capabilities"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// CapabilitySnapshot freezes a capability and its technologies as they were
// when the report was written.
type CapabilitySnapshot struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Technologies []Technology `json:"technologies"`
}
