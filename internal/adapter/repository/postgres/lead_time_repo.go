package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/simaogato/notaryflow-backend/internal/domain"
)

// leadTimeRepository implements domain.LeadTimeRepository
type leadTimeRepository struct {
	db *DB
}

// NewLeadTimeRepository creates a new lead-time repository
func NewLeadTimeRepository(db *DB) domain.LeadTimeRepository {
	return &leadTimeRepository{db: db}
}

// GetByJurisdiction retrieves every requirement key stored for a jurisdiction
func (r *leadTimeRepository) GetByJurisdiction(ctx context.Context, jurisdiction string) (domain.JurisdictionLeadTimes, error) {
	query := `
		SELECT requirement_key, lead_days
		FROM lead_times
		WHERE jurisdiction = $1
	`

	rows, err := r.db.QueryContext(ctx, query, jurisdiction)
	if err != nil {
		return nil, fmt.Errorf("failed to query lead times: %w", err)
	}
	defer rows.Close()

	leadTimes := make(domain.JurisdictionLeadTimes)
	for rows.Next() {
		var key string
		var days int
		if err := rows.Scan(&key, &days); err != nil {
			return nil, fmt.Errorf("failed to scan lead time: %w", err)
		}
		leadTimes[key] = days
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lead times: %w", err)
	}

	if len(leadTimes) == 0 {
		return nil, fmt.Errorf("no lead times for %s: %w", jurisdiction, domain.ErrJurisdictionNotFound)
	}

	return leadTimes, nil
}

// Save upserts the lead times of a jurisdiction in a single transaction
func (r *leadTimeRepository) Save(ctx context.Context, jurisdiction string, leadTimes domain.JurisdictionLeadTimes) error {
	query := `
		INSERT INTO lead_times (jurisdiction, requirement_key, lead_days)
		VALUES ($1, $2, $3)
		ON CONFLICT (jurisdiction, requirement_key) DO UPDATE SET lead_days = EXCLUDED.lead_days
	`

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Upsert in key order
	keys := make([]string, 0, len(leadTimes))
	for key := range leadTimes {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, query, jurisdiction, key, leadTimes[key]); err != nil {
			return fmt.Errorf("failed to upsert lead time %s/%s: %w", jurisdiction, key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit lead times: %w", err)
	}

	return nil
}

// ListJurisdictions returns every jurisdiction with stored lead times
func (r *leadTimeRepository) ListJurisdictions(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT jurisdiction
		FROM lead_times
		ORDER BY jurisdiction ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query jurisdictions: %w", err)
	}
	defer rows.Close()

	jurisdictions := make([]string, 0)
	for rows.Next() {
		var jurisdiction string
		if err := rows.Scan(&jurisdiction); err != nil {
			return nil, fmt.Errorf("failed to scan jurisdiction: %w", err)
		}
		jurisdictions = append(jurisdictions, jurisdiction)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating jurisdictions: %w", err)
	}

	return jurisdictions, nil
}
