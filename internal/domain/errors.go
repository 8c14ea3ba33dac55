package domain

import "fmt"

// InvalidCapabilityReason identifies which creation rule a capability broke.
type InvalidCapabilityReason string

const (
	ReasonTechnologyCount       InvalidCapabilityReason = "technology_count"
	ReasonDuplicateTechnologies InvalidCapabilityReason = "duplicate_technologies"
	ReasonTechnologiesNotFound  InvalidCapabilityReason = "technologies_not_found"
	ReasonDuplicateName         InvalidCapabilityReason = "duplicate_name"
)

type InvalidCapabilityError struct {
	Reason InvalidCapabilityReason
}

func (e *InvalidCapabilityError) Error() string {
	switch e.Reason {
	case ReasonTechnologyCount:
		return fmt.Sprintf("capability must have between %d and %d technologies",
			MinTechnologiesPerCapability, MaxTechnologiesPerCapability)
	case ReasonDuplicateTechnologies:
		return "duplicate technology ids not allowed"
	case ReasonTechnologiesNotFound:
		return "one or more technologies do not exist"
	case ReasonDuplicateName:
		return "capability name already exists"
	default:
		return "invalid capability data"
	}
}

type CapabilityNotFoundError struct {
	ID int64
}

func (e *CapabilityNotFoundError) Error() string {
	if e.ID == 0 {
		return "capability not found"
	}
	return fmt.Sprintf("capability not found: %d", e.ID)
}

type BootcampNotFoundError struct{}

func (e *BootcampNotFoundError) Error() string { return "bootcamp not found" }

// CapabilityInUseError blocks deletion while the remote Bootcamp service still
// reports references to the capability.
type CapabilityInUseError struct {
	ID            int64
	BootcampCount int64
}

func (e *CapabilityInUseError) Error() string {
	return fmt.Sprintf("capability %d is used by %d bootcamp(s)", e.ID, e.BootcampCount)
}

// ExternalServiceError wraps every remote-call failure at the client boundary
// so the core never sees raw transport errors.
type ExternalServiceError struct {
	Service string
	Detail  string
	Cause   error
}

func (e *ExternalServiceError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("external service %s failed: %s", e.Service, e.Detail)
	}
	if e.Cause != nil {
		return fmt.Sprintf("external service %s failed: %v", e.Service, e.Cause)
	}
	return fmt.Sprintf("external service %s failed", e.Service)
}

func (e *ExternalServiceError) Unwrap() error { return e.Cause }
