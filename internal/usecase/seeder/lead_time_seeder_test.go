package seeder

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/simaogato/notaryflow-backend/internal/adapter/repository/memory"
	"github.com/simaogato/notaryflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLeadTimeRepository is a mock implementation of LeadTimeRepository
type MockLeadTimeRepository struct {
	mock.Mock
}

func (m *MockLeadTimeRepository) GetByJurisdiction(ctx context.Context, jurisdiction string) (domain.JurisdictionLeadTimes, error) {
	args := m.Called(ctx, jurisdiction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.JurisdictionLeadTimes), args.Error(1)
}

func (m *MockLeadTimeRepository) Save(ctx context.Context, jurisdiction string, leadTimes domain.JurisdictionLeadTimes) error {
	args := m.Called(ctx, jurisdiction, leadTimes)
	return args.Error(0)
}

func (m *MockLeadTimeRepository) ListJurisdictions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func notFound(jurisdiction string) error {
	return fmt.Errorf("no lead times for %s: %w", jurisdiction, domain.ErrJurisdictionNotFound)
}

func TestLeadTimeSeeder_Seed_Missing(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadTimeRepository)
	table := domain.DefaultLeadTimeTable()
	seeder := NewLeadTimeSeeder(mockRepo, table)

	mockRepo.On("GetByJurisdiction", ctx, "PBA").Return(nil, notFound("PBA"))
	mockRepo.On("Save", ctx, "PBA", table["PBA"]).Return(nil)

	seeded, err := seeder.Seed(ctx)

	assert.NoError(t, err)
	assert.Equal(t, []string{"PBA"}, seeded)
	mockRepo.AssertExpectations(t)
}

func TestLeadTimeSeeder_Seed_AlreadyPresent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadTimeRepository)
	seeder := NewLeadTimeSeeder(mockRepo, domain.DefaultLeadTimeTable())

	// Operator already edited PBA; the seeder must not overwrite it
	mockRepo.On("GetByJurisdiction", ctx, "PBA").Return(domain.JurisdictionLeadTimes{"CATASTRO": 30}, nil)

	seeded, err := seeder.Seed(ctx)

	assert.NoError(t, err)
	assert.Empty(t, seeded)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadTimeSeeder_Seed_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadTimeRepository)
	seeder := NewLeadTimeSeeder(mockRepo, domain.DefaultLeadTimeTable())

	mockRepo.On("GetByJurisdiction", ctx, "PBA").Return(nil, errors.New("connection reset"))

	_, err := seeder.Seed(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadTimeSeeder_Seed_SaveError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadTimeRepository)
	table := domain.DefaultLeadTimeTable()
	seeder := NewLeadTimeSeeder(mockRepo, table)

	mockRepo.On("GetByJurisdiction", ctx, "PBA").Return(nil, notFound("PBA"))
	mockRepo.On("Save", ctx, "PBA", table["PBA"]).Return(errors.New("disk full"))

	seeded, err := seeder.Seed(ctx)

	assert.EqualError(t, err, "disk full")
	assert.Empty(t, seeded)
}

func TestLeadTimeSeeder_Seed_RejectsNonPositiveDays(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLeadTimeRepository)
	seeder := NewLeadTimeSeeder(mockRepo, domain.LeadTimeTable{"CBA": {"CATASTRO": 0}})

	mockRepo.On("GetByJurisdiction", ctx, "CBA").Return(nil, notFound("CBA"))

	_, err := seeder.Seed(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be positive")
}

func TestLeadTimeSeeder_Seed_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLeadTimeRepository()
	table := domain.LeadTimeTable{
		"PBA":  domain.DefaultLeadTimeTable()["PBA"],
		"CABA": {"CATASTRO": 10, "MUNICIPAL": 5},
	}
	seeder := NewLeadTimeSeeder(repo, table)

	first, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"CABA", "PBA"}, first)

	second, err := seeder.Seed(ctx)
	require.NoError(t, err)
	assert.Empty(t, second)

	stored, err := repo.GetByJurisdiction(ctx, "CABA")
	require.NoError(t, err)
	assert.Equal(t, 10, stored["CATASTRO"])
}

func TestLeadTimeSeeder_Seed_RejectsUnknownKeysAndOversizedDays(t *testing.T) {
	tests := []struct {
		name      string
		leadTimes domain.JurisdictionLeadTimes
		errMsg    string
	}{
		{name: "misspelled key", leadTimes: domain.JurisdictionLeadTimes{"DOMINIO_URGENTE": 7}, errMsg: "invalid lead time key DOMINIO_URGENTE"},
		{name: "oversized days", leadTimes: domain.JurisdictionLeadTimes{"CATASTRO": 100000}, errMsg: "must be at most 365"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mockRepo := new(MockLeadTimeRepository)
			seeder := NewLeadTimeSeeder(mockRepo, domain.LeadTimeTable{"CBA": tt.leadTimes})

			mockRepo.On("GetByJurisdiction", ctx, "CBA").Return(nil, notFound("CBA"))

			_, err := seeder.Seed(ctx)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid lead times for CBA")
			assert.Contains(t, err.Error(), tt.errMsg)
			mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
