package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/simaogato/notaryflow-backend/internal/domain"
)

// LeadTimeRepository is an in-memory implementation of domain.LeadTimeRepository
type LeadTimeRepository struct {
	mu   sync.RWMutex
	data map[string]domain.JurisdictionLeadTimes
}

// NewLeadTimeRepository creates a new empty in-memory lead-time repository
func NewLeadTimeRepository() *LeadTimeRepository {
	return &LeadTimeRepository{
		data: make(map[string]domain.JurisdictionLeadTimes),
	}
}

// GetByJurisdiction returns a copy of the stored lead times
func (r *LeadTimeRepository) GetByJurisdiction(ctx context.Context, jurisdiction string) (domain.JurisdictionLeadTimes, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.data[jurisdiction]
	if !ok || len(stored) == 0 {
		return nil, fmt.Errorf("no lead times for %s: %w", jurisdiction, domain.ErrJurisdictionNotFound)
	}

	return copyLeadTimes(stored), nil
}

// Save merges the given keys into the stored lead times
func (r *LeadTimeRepository) Save(ctx context.Context, jurisdiction string, leadTimes domain.JurisdictionLeadTimes) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.data[jurisdiction]
	if !ok {
		stored = make(domain.JurisdictionLeadTimes, len(leadTimes))
		r.data[jurisdiction] = stored
	}
	for key, days := range leadTimes {
		stored[key] = days
	}

	return nil
}

// ListJurisdictions returns the stored jurisdictions in ascending order
func (r *LeadTimeRepository) ListJurisdictions(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jurisdictions := make([]string, 0, len(r.data))
	for jurisdiction := range r.data {
		jurisdictions = append(jurisdictions, jurisdiction)
	}
	sort.Strings(jurisdictions)

	return jurisdictions, nil
}

func copyLeadTimes(src domain.JurisdictionLeadTimes) domain.JurisdictionLeadTimes {
	dst := make(domain.JurisdictionLeadTimes, len(src))
	for key, days := range src {
		dst[key] = days
	}
	return dst
}
