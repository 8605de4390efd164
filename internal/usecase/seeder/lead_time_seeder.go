package seeder

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/simaogato/notaryflow-backend/internal/domain"
)

// LeadTimeSeeder handles seeding of the built-in lead-time tables
type LeadTimeSeeder struct {
	repo  domain.LeadTimeRepository
	table domain.LeadTimeTable
}

// NewLeadTimeSeeder creates a new LeadTimeSeeder for the given table
func NewLeadTimeSeeder(repo domain.LeadTimeRepository, table domain.LeadTimeTable) *LeadTimeSeeder {
	return &LeadTimeSeeder{
		repo:  repo,
		table: table,
	}
}

// Seed ensures every jurisdiction of the table has stored lead times.
// Jurisdictions that already exist are left untouched.
// Returns the jurisdictions that were written.
func (s *LeadTimeSeeder) Seed(ctx context.Context) ([]string, error) {
	jurisdictions := make([]string, 0, len(s.table))
	for jurisdiction := range s.table {
		jurisdictions = append(jurisdictions, jurisdiction)
	}
	sort.Strings(jurisdictions)

	seeded := make([]string, 0)
	for _, jurisdiction := range jurisdictions {
		_, err := s.repo.GetByJurisdiction(ctx, jurisdiction)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrJurisdictionNotFound) {
			return seeded, fmt.Errorf("failed to check lead times for %s: %w", jurisdiction, err)
		}

		leadTimes := s.table[jurisdiction]
		if err := leadTimes.Validate(); err != nil {
			return seeded, fmt.Errorf("invalid lead times for %s: %w", jurisdiction, err)
		}

		if err := s.repo.Save(ctx, jurisdiction, leadTimes); err != nil {
			return seeded, err
		}
		seeded = append(seeded, jurisdiction)
	}

	return seeded, nil
}
