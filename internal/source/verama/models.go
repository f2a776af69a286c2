package verama

// JobRequestResponse represents the Verama public API response structure.
// Pointer fields let validation tell an absent field apart from a zero
// value; the wire shape is relayed verbatim by the passthrough read path.
type JobRequestResponse struct {
	Content []JobRequest `json:"content" validate:"required,dive"`
}

type JobRequest struct {
	ID                *int64             `json:"id" validate:"required"`
	SystemID          *string            `json:"systemId" validate:"required"`
	Title             *string            `json:"title" validate:"required"`
	StartDate         *string            `json:"startDate" validate:"required"`
	EndDate           *string            `json:"endDate" validate:"required"`
	Locations         []JobLocation      `json:"locations" validate:"required,dive"`
	HoursPerWeek      *int               `json:"hoursPerWeek" validate:"required"`
	Level             *string            `json:"level" validate:"required"`
	LegalEntityClient *LegalEntityClient `json:"legalEntityClient" validate:"required"`
}

type JobLocation struct {
	Name    *string `json:"name" validate:"required"`
	City    *string `json:"city" validate:"required"`
	Country *string `json:"country" validate:"required"`
}

type LegalEntityClient struct {
	Name *string `json:"name" validate:"required"`
}
