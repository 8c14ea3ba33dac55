package domain

// Bootcamp lives in the remote Bootcamp service; this service only ever holds
// a transient view of it. Dates are carried as the remote's YYYY-MM-DD strings
// and treated as opaque here.
type Bootcamp struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
	CapabilityIDs []int64 `json:"capabilityIds"`

	// Resolved during enrichment only.
	Capabilities []*Capability `json:"capabilities,omitempty"`
}

// Technology is fully owned by the remote Technology service and treated as an
// immutable reference value.
type Technology struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Page is the positional page shape shared with the remote services.
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
}
