package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCUITStrict(t *testing.T) {
	tests := []struct {
		name string
		cuit string
		want bool
	}{
		{name: "formatted valid CUIT", cuit: "20-12345678-6", want: true},
		{name: "digits only", cuit: "20123456786", want: true},
		{name: "spaces and dots are ignored", cuit: "20 12.345.678 6", want: true},
		{name: "remainder zero maps check digit to 0", cuit: "20-40123456-0", want: true},
		{name: "remainder one maps check digit to 9", cuit: "23-40123456-9", want: true},
		{name: "remainder one rejects the theoretical 10", cuit: "23-40123456-0", want: false},
		{name: "wrong check digit", cuit: "20-12345678-7", want: false},
		{name: "too short", cuit: "20-1234567-6", want: false},
		{name: "too long", cuit: "20-123456789-6", want: false},
		{name: "empty is invalid when required", cuit: "", want: false},
		{name: "letters only", cuit: "abc", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCUITStrict(tt.cuit))
		})
	}
}

func TestValidateCUIT_EmptyIsAcceptedWhenOptional(t *testing.T) {
	assert.True(t, ValidateCUIT(""))
	assert.True(t, ValidateCUIT("20-12345678-6"))
	assert.False(t, ValidateCUIT("20-12345678-0"))
	// Whitespace is not "empty": it normalizes to zero digits and fails
	assert.False(t, ValidateCUIT("   "))
}

func TestValidateCUITStrict_SingleDigitMutationsFail(t *testing.T) {
	valid := "20123456786"
	assert.True(t, ValidateCUITStrict(valid))

	for i := 0; i < len(valid); i++ {
		for d := byte('0'); d <= '9'; d++ {
			if valid[i] == d {
				continue
			}
			mutated := valid[:i] + string(d) + valid[i+1:]
			assert.False(t, ValidateCUITStrict(mutated), "mutation %s should be invalid", mutated)
		}
	}
}

func TestValidateCUITForDNI(t *testing.T) {
	tests := []struct {
		name string
		cuit string
		dni  string
		want bool
	}{
		{name: "matching DNI", cuit: "20-12345678-6", dni: "12345678", want: true},
		{name: "matching DNI with dots", cuit: "20-12345678-6", dni: "12.345.678", want: true},
		{name: "different DNI", cuit: "20-12345678-6", dni: "12345679", want: false},
		{name: "no DNI skips the match", cuit: "20-12345678-6", dni: "", want: true},
		{name: "seven digit DNI is zero padded", cuit: "20-01234567-5", dni: "1234567", want: true},
		{name: "DNI longer than eight digits", cuit: "20-12345678-6", dni: "123456789", want: false},
		{name: "invalid checksum fails regardless of DNI", cuit: "20-12345678-0", dni: "12345678", want: false},
		{name: "empty CUIT fails", cuit: "", dni: "12345678", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCUITForDNI(tt.cuit, tt.dni))
		})
	}
}

func TestNormalizeCUIT(t *testing.T) {
	assert.Equal(t, "20123456786", NormalizeCUIT("20-12345678-6"))
	assert.Equal(t, "20123456786", NormalizeCUIT(" 20.12345678/6 "))
	assert.Equal(t, "", NormalizeCUIT("--"))
}

func TestFormatCUIT(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "digits only", in: "20123456786", want: "20-12345678-6"},
		{name: "already formatted is unchanged", in: "20-12345678-6", want: "20-12345678-6"},
		{name: "odd separators are canonicalized", in: "20.12345678.6", want: "20-12345678-6"},
		{name: "short input returned as is", in: "20-1234", want: "20-1234"},
		{name: "long input returned as is", in: "201234567861", want: "201234567861"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCUIT(tt.in))
		})
	}
}

func TestFormatCUIT_RoundTripAndIdempotence(t *testing.T) {
	for _, raw := range []string{"20123456786", "30-71234567-1", "27 12345678 0"} {
		formatted := FormatCUIT(NormalizeCUIT(raw))
		assert.Equal(t, FormatCUIT(raw), formatted)
		assert.Equal(t, formatted, FormatCUIT(formatted))
	}
}

func TestIsLegalEntityCUIT(t *testing.T) {
	assert.True(t, IsLegalEntityCUIT("30-71234567-1"))
	assert.True(t, IsLegalEntityCUIT("33712345670"))
	assert.True(t, IsLegalEntityCUIT("34-00000000-0"))
	assert.False(t, IsLegalEntityCUIT("20-12345678-6"))
	assert.False(t, IsLegalEntityCUIT(""))
}

func TestCUITLabel(t *testing.T) {
	assert.Equal(t, "C.U.I.T.", CUITLabel("cuit", true))
	assert.Equal(t, "C.U.I.L.", CUITLabel("CUIL", true))
	assert.Equal(t, "CUIL", CUITLabel("cuil", false))
	assert.Equal(t, "CUIT", CUITLabel("", false))
	assert.Equal(t, "C.U.I.T.", CUITLabel("other", true))
	assert.Equal(t, "CDI", CUITLabel("cdi", false), "informal label keeps unknown kinds")
	assert.Equal(t, "CUIT", CUITLabel("Cuit", false))
}
