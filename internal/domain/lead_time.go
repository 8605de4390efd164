package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Requirement is a registry certificate that must be obtained before signing
type Requirement string

const (
	RequirementDominio    Requirement = "DOMINIO"    // Title search
	RequirementInhibicion Requirement = "INHIBICION" // Lien / attachment search
	RequirementCatastro   Requirement = "CATASTRO"   // Cadastral certificate
	RequirementMunicipal  Requirement = "MUNICIPAL"  // Municipal clearance
)

// Requirements lists every requirement in evaluation order
var Requirements = []Requirement{
	RequirementDominio,
	RequirementInhibicion,
	RequirementCatastro,
	RequirementMunicipal,
}

// DefaultJurisdiction is the province whose table ships with the service
const DefaultJurisdiction = "PBA"

// DefaultLeadDays is used for any jurisdiction/key pair missing from the table
const DefaultLeadDays = 15

// MaxLeadDays is the largest processing time a table may hold
const MaxLeadDays = 365

// IsModeDependent reports whether the lead time varies with the request mode
func (r Requirement) IsModeDependent() bool {
	return r == RequirementDominio || r == RequirementInhibicion
}

// LookupKey returns the table key for r under mode (e.g. DOMINIO_URGENT)
func (r Requirement) LookupKey(mode Mode) string {
	if r.IsModeDependent() {
		return string(r) + "_" + string(mode)
	}
	return string(r)
}

// JurisdictionLeadTimes maps a requirement key to its processing days
type JurisdictionLeadTimes map[string]int

// LeadTimeTable maps a jurisdiction to its lead times
type LeadTimeTable map[string]JurisdictionLeadTimes

// LeadTimeKeys returns every key a jurisdiction table may hold, sorted
func LeadTimeKeys() []string {
	seen := make(map[string]bool)
	keys := make([]string, 0, 2*len(Requirements))
	for _, r := range Requirements {
		for _, mode := range []Mode{ModeSimple, ModeUrgent} {
			key := r.LookupKey(mode)
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
	}
	sort.Strings(keys)
	return keys
}

// IsLeadTimeKey reports whether key is read by the planner under some mode
func IsLeadTimeKey(key string) bool {
	for _, known := range LeadTimeKeys() {
		if key == known {
			return true
		}
	}
	return false
}

// Validate checks that every key is a known requirement key and every
// value lies within 1..MaxLeadDays
func (lt JurisdictionLeadTimes) Validate() error {
	if len(lt) == 0 {
		return errors.New("lead times must have at least one entry")
	}

	keys := make([]string, 0, len(lt))
	for key := range lt {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !IsLeadTimeKey(key) {
			return fmt.Errorf("invalid lead time key %s: must be one of %s", key, strings.Join(LeadTimeKeys(), ", "))
		}
		days := lt[key]
		if days <= 0 {
			return fmt.Errorf("lead days for %s must be positive", key)
		}
		if days > MaxLeadDays {
			return fmt.Errorf("invalid lead days for %s: must be at most %d", key, MaxLeadDays)
		}
	}
	return nil
}

// LeadDays resolves the processing days for a key.
// A missing jurisdiction or key, or days outside 1..MaxLeadDays, resolves to fallback.
func (t LeadTimeTable) LeadDays(jurisdiction, key string, fallback int) int {
	days, ok := t[jurisdiction][key]
	if !ok || days <= 0 || days > MaxLeadDays {
		return fallback
	}
	return days
}

// DefaultLeadTimeTable returns the built-in processing times
func DefaultLeadTimeTable() LeadTimeTable {
	return LeadTimeTable{
		DefaultJurisdiction: {
			"DOMINIO_SIMPLE":    20,
			"DOMINIO_URGENT":    7,
			"INHIBICION_SIMPLE": 20,
			"INHIBICION_URGENT": 7,
			"CATASTRO":          15,
			"MUNICIPAL":         10,
		},
	}
}
