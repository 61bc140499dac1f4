package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/upn-tools/internal/types"
)

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name      string
		record    types.UPN
		wantField []string
	}{
		{
			name:   "clean record",
			record: types.UPN{ID: "1", BremeIme: "Janez Novak", KodaNamena: "ADMG", NamenPlacila: "Clanarina 2026"},
		},
		{
			name:   "33 accented characters fit",
			record: types.UPN{ID: "1", BremeUlica: strings.Repeat("č", 33)},
		},
		{
			name:      "long debtor name",
			record:    types.UPN{ID: "2", BremeIme: strings.Repeat("a", 34)},
			wantField: []string{"BremeIme"},
		},
		{
			name:      "long purpose and creditor city",
			record:    types.UPN{ID: "3", DobroKraj: strings.Repeat("k", 40), NamenPlacila: strings.Repeat("n", 43)},
			wantField: []string{"DobroKraj", "NamenPlacila"},
		},
		{
			name:      "lowercase purpose code",
			record:    types.UPN{ID: "4", KodaNamena: "admg"},
			wantField: []string{"KodaNamena"},
		},
		{
			name:      "short purpose code",
			record:    types.UPN{ID: "5", KodaNamena: "AD"},
			wantField: []string{"KodaNamena"},
		},
		{
			name:   "IBAN and reference are not checked",
			record: types.UPN{ID: "6", DobroIBAN: strings.Repeat("9", 80), DobroSklic: strings.Repeat("x", 80)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := ValidateRecord(tt.record)
			var fields []string
			for _, f := range findings {
				assert.Equal(t, SeverityWarning, f.Severity)
				assert.Equal(t, tt.record.ID, f.RecordID)
				fields = append(fields, f.Field)
			}
			assert.Equal(t, tt.wantField, fields)
		})
	}
}

func TestValidate(t *testing.T) {
	records := []types.UPN{
		{ID: "1", KodaNamena: "ADMG"},
		{ID: "2", KodaNamena: "x"},
		{ID: "3", BremeKraj: strings.Repeat("k", 50)},
	}

	findings := Validate(records)
	require.Len(t, findings, 2)
	assert.Equal(t, "2", findings[0].RecordID)
	assert.Equal(t, "purpose_code", findings[0].Rule)
	assert.Equal(t, "3", findings[1].RecordID)
	assert.Equal(t, "max_length", findings[1].Rule)
	assert.Contains(t, findings[1].Error(), "[WARNING] UPN 3, Field 'BremeKraj'")
}
