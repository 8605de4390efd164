package domain

import (
	"strings"
)

// cuitLength is the number of digits in a CUIT/CUIL
const cuitLength = 11

// cuitWeights are the checksum multipliers applied to the first 10 digits
var cuitWeights = [10]int{5, 4, 3, 2, 7, 6, 5, 4, 3, 2}

// legalEntityPrefixes are the CUIT prefixes assigned to companies and other legal persons
var legalEntityPrefixes = []string{"30", "33", "34"}

// NormalizeCUIT strips every non-digit character from a CUIT/CUIL
func NormalizeCUIT(cuit string) string {
	var b strings.Builder
	b.Grow(len(cuit))
	for _, r := range cuit {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatCUIT renders a CUIT in the canonical XX-XXXXXXXX-X grouping.
// If the input does not contain exactly 11 digits it is returned unchanged.
func FormatCUIT(cuit string) string {
	clean := NormalizeCUIT(cuit)
	if len(clean) != cuitLength {
		return cuit
	}
	return clean[:2] + "-" + clean[2:10] + "-" + clean[10:]
}

// ValidateCUIT is the permissive check used where the identifier is optional:
// an empty value is accepted, anything else must pass the checksum
func ValidateCUIT(cuit string) bool {
	if cuit == "" {
		return true
	}
	return ValidateCUITStrict(cuit)
}

// ValidateCUITStrict is the check used where the identifier is required:
// an empty value is rejected
func ValidateCUITStrict(cuit string) bool {
	clean := NormalizeCUIT(cuit)
	if len(clean) != cuitLength {
		return false
	}
	return cuitCheckDigit(clean) == int(clean[10]-'0')
}

// ValidateCUITForDNI validates a CUIT strictly and, when dni is supplied,
// additionally requires the 8 middle digits to match the DNI.
// Older 7-digit DNIs are compared left-padded with a zero.
func ValidateCUITForDNI(cuit, dni string) bool {
	if !ValidateCUITStrict(cuit) {
		return false
	}

	dniDigits := NormalizeCUIT(dni)
	if dniDigits == "" {
		return true
	}
	if len(dniDigits) > 8 {
		return false
	}
	dniDigits = strings.Repeat("0", 8-len(dniDigits)) + dniDigits

	return NormalizeCUIT(cuit)[2:10] == dniDigits
}

// IsLegalEntityCUIT reports whether the CUIT prefix belongs to a legal person
func IsLegalEntityCUIT(cuit string) bool {
	clean := NormalizeCUIT(cuit)
	for _, prefix := range legalEntityPrefixes {
		if strings.HasPrefix(clean, prefix) {
			return true
		}
	}
	return false
}

// CUITLabel returns the display label for an identifier kind ("CUIT" or "CUIL").
// An empty kind is CUIT. The formal label is C.U.I.L. for CUIL and C.U.I.T. otherwise;
// the informal label is the uppercased kind as given.
func CUITLabel(kind string, formal bool) string {
	k := strings.ToUpper(kind)
	if k == "" {
		k = "CUIT"
	}
	if !formal {
		return k
	}
	if k == "CUIL" {
		return "C.U.I.L."
	}
	return "C.U.I.T."
}

// cuitCheckDigit computes the expected verifier digit of an 11-digit string.
// A computed 11 maps to 0 and 10 maps to 9.
func cuitCheckDigit(digits string) int {
	sum := 0
	for i, w := range cuitWeights {
		sum += int(digits[i]-'0') * w
	}

	expected := 11 - sum%11
	switch expected {
	case 11:
		return 0
	case 10:
		return 9
	default:
		return expected
	}
}
