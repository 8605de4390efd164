package memory

import (
	"context"
	"testing"

	"github.com/simaogato/notaryflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadTimeRepository_SaveAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadTimeRepository()

	require.NoError(t, repo.Save(ctx, "PBA", domain.JurisdictionLeadTimes{"CATASTRO": 15, "MUNICIPAL": 10}))
	require.NoError(t, repo.Save(ctx, "PBA", domain.JurisdictionLeadTimes{"MUNICIPAL": 12}))

	got, err := repo.GetByJurisdiction(ctx, "PBA")
	require.NoError(t, err)
	assert.Equal(t, domain.JurisdictionLeadTimes{"CATASTRO": 15, "MUNICIPAL": 12}, got)
}

func TestLeadTimeRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadTimeRepository()
	require.NoError(t, repo.Save(ctx, "PBA", domain.JurisdictionLeadTimes{"CATASTRO": 15}))

	got, err := repo.GetByJurisdiction(ctx, "PBA")
	require.NoError(t, err)
	got["CATASTRO"] = 99

	again, err := repo.GetByJurisdiction(ctx, "PBA")
	require.NoError(t, err)
	assert.Equal(t, 15, again["CATASTRO"])
}

func TestLeadTimeRepository_NotFound(t *testing.T) {
	repo := NewLeadTimeRepository()

	_, err := repo.GetByJurisdiction(context.Background(), "CABA")

	assert.ErrorIs(t, err, domain.ErrJurisdictionNotFound)
}

func TestLeadTimeRepository_ListJurisdictions(t *testing.T) {
	ctx := context.Background()
	repo := NewLeadTimeRepository()
	require.NoError(t, repo.Save(ctx, "PBA", domain.JurisdictionLeadTimes{"CATASTRO": 15}))
	require.NoError(t, repo.Save(ctx, "CABA", domain.JurisdictionLeadTimes{"CATASTRO": 10}))

	jurisdictions, err := repo.ListJurisdictions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"CABA", "PBA"}, jurisdictions)
}
