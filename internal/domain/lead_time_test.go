package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeadTimeKeys(t *testing.T) {
	assert.Equal(t, []string{
		"CATASTRO",
		"DOMINIO_SIMPLE",
		"DOMINIO_URGENT",
		"INHIBICION_SIMPLE",
		"INHIBICION_URGENT",
		"MUNICIPAL",
	}, LeadTimeKeys())

	for key := range DefaultLeadTimeTable()[DefaultJurisdiction] {
		assert.True(t, IsLeadTimeKey(key), key)
	}
}

func TestJurisdictionLeadTimes_Validate(t *testing.T) {
	tests := []struct {
		name      string
		leadTimes JurisdictionLeadTimes
		errMsg    string
	}{
		{name: "default table", leadTimes: DefaultLeadTimeTable()[DefaultJurisdiction]},
		{name: "partial table", leadTimes: JurisdictionLeadTimes{"CATASTRO": 1, "MUNICIPAL": MaxLeadDays}},
		{name: "empty", leadTimes: JurisdictionLeadTimes{}, errMsg: "must have at least one entry"},
		{name: "misspelled mode suffix", leadTimes: JurisdictionLeadTimes{"DOMINIO_URGENTE": 7}, errMsg: "invalid lead time key DOMINIO_URGENTE"},
		{name: "mode suffix on mode-independent key", leadTimes: JurisdictionLeadTimes{"CATASTRO_SIMPLE": 7}, errMsg: "invalid lead time key CATASTRO_SIMPLE"},
		{name: "bare mode-dependent key", leadTimes: JurisdictionLeadTimes{"DOMINIO": 7}, errMsg: "invalid lead time key DOMINIO"},
		{name: "lowercase key", leadTimes: JurisdictionLeadTimes{"catastro": 7}, errMsg: "invalid lead time key catastro"},
		{name: "zero days", leadTimes: JurisdictionLeadTimes{"CATASTRO": 0}, errMsg: "lead days for CATASTRO must be positive"},
		{name: "negative days", leadTimes: JurisdictionLeadTimes{"CATASTRO": -4}, errMsg: "must be positive"},
		{name: "above cap", leadTimes: JurisdictionLeadTimes{"CATASTRO": MaxLeadDays + 1}, errMsg: "must be at most 365"},
		{name: "max int", leadTimes: JurisdictionLeadTimes{"CATASTRO": math.MaxInt}, errMsg: "must be at most 365"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.leadTimes.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestLeadTimeTable_LeadDays(t *testing.T) {
	table := LeadTimeTable{
		"PBA": {"CATASTRO": 15, "MUNICIPAL": 0, "DOMINIO_SIMPLE": math.MaxInt, "DOMINIO_URGENT": MaxLeadDays},
	}

	assert.Equal(t, 15, table.LeadDays("PBA", "CATASTRO", DefaultLeadDays))
	assert.Equal(t, MaxLeadDays, table.LeadDays("PBA", "DOMINIO_URGENT", DefaultLeadDays))
	assert.Equal(t, DefaultLeadDays, table.LeadDays("PBA", "MUNICIPAL", DefaultLeadDays))
	assert.Equal(t, DefaultLeadDays, table.LeadDays("PBA", "DOMINIO_SIMPLE", DefaultLeadDays))
	assert.Equal(t, DefaultLeadDays, table.LeadDays("PBA", "INHIBICION_SIMPLE", DefaultLeadDays))
	assert.Equal(t, DefaultLeadDays, table.LeadDays("CABA", "CATASTRO", DefaultLeadDays))
}
