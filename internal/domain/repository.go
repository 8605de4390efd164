package domain

import (
	"context"
	"errors"
)

// ErrJurisdictionNotFound is returned when no lead times are stored for a jurisdiction
var ErrJurisdictionNotFound = errors.New("jurisdiction not found")

// LeadTimeRepository defines the interface for lead-time table persistence operations
type LeadTimeRepository interface {
	// GetByJurisdiction retrieves every requirement key stored for a jurisdiction
	// Returns ErrJurisdictionNotFound (wrapped) if nothing is stored
	GetByJurisdiction(ctx context.Context, jurisdiction string) (JurisdictionLeadTimes, error)

	// Save upserts the lead times of a jurisdiction
	Save(ctx context.Context, jurisdiction string, leadTimes JurisdictionLeadTimes) error

	// ListJurisdictions returns every jurisdiction with stored lead times, sorted
	ListJurisdictions(ctx context.Context) ([]string, error)
}
