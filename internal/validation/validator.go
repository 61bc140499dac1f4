// =============================================================================
// UPN Tools - Validation Engine
// =============================================================================
//
// This module checks built UPN records against the limits of the printed
// UPN form. The bank's import accepts longer values but truncates them on
// the printed slip, so every finding is a warning: values still pass
// through unchanged.
//
// RULES:
//   - Name / street / city lines (debtor and creditor): at most 33 characters
//   - Purpose text: at most 42 characters
//   - Purpose code: exactly four uppercase letters (ISO 20022 purpose code)
//
// IBANs and references are passed through without any checks.
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ginjaninja78/upn-tools/internal/types"
)

// Form limits of the printed UPN slip.
const (
	MaxLineLength    = 33
	MaxPurposeLength = 42
	PurposeCodeLen   = 4
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// SeverityWarning marks findings that never stop processing.
const SeverityWarning = "warning"

// ValidationError represents a single validation finding.
type ValidationError struct {
	// Severity is always "warning" for form-limit findings.
	Severity string

	// RecordID is the ID of the UPN record.
	RecordID string

	// Field is the XML tag of the offending field.
	Field string

	// Value is the actual value.
	Value string

	// Rule names the violated rule ("max_length", "purpose_code").
	Rule string

	// Message is a human-readable message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] UPN %s, Field '%s': %s (value: '%s')",
		strings.ToUpper(e.Severity), e.RecordID, e.Field, e.Message, e.Value)
}

// =============================================================================
// RULES
// =============================================================================

// lineFields share the 33 character limit of a single form line.
var lineFields = map[string]bool{
	"BremeIme":   true,
	"BremeUlica": true,
	"BremeKraj":  true,
	"DobroIme":   true,
	"DobroUlica": true,
	"DobroKraj":  true,
}

// =============================================================================
// MAIN VALIDATION FUNCTION
// =============================================================================

// Validate checks every record and returns all findings in record order.
func Validate(records []types.UPN) []*ValidationError {
	var findings []*ValidationError
	for _, record := range records {
		findings = append(findings, ValidateRecord(record)...)
	}
	return findings
}

// ValidateRecord checks a single record.
func ValidateRecord(record types.UPN) []*ValidationError {
	var findings []*ValidationError

	for _, f := range record.Fields() {
		var msg, rule string

		switch {
		case lineFields[f.Tag]:
			msg, rule = checkMaxLength(f.Value, MaxLineLength), "max_length"
		case f.Tag == "NamenPlacila":
			msg, rule = checkMaxLength(f.Value, MaxPurposeLength), "max_length"
		case f.Tag == "KodaNamena":
			msg, rule = checkPurposeCode(f.Value), "purpose_code"
		}

		if msg != "" {
			findings = append(findings, &ValidationError{
				Severity: SeverityWarning,
				RecordID: record.ID,
				Field:    f.Tag,
				Value:    f.Value,
				Rule:     rule,
				Message:  msg,
			})
		}
	}

	return findings
}

// checkMaxLength counts characters, not bytes: "č" is one position on the form.
func checkMaxLength(value string, limit int) string {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Sprintf("length %d exceeds %d characters", n, limit)
	}
	return ""
}

// checkPurposeCode accepts an empty code (left blank on the form) or four
// ASCII uppercase letters.
func checkPurposeCode(value string) string {
	if value == "" {
		return ""
	}
	if len(value) != PurposeCodeLen {
		return fmt.Sprintf("purpose code must have %d letters", PurposeCodeLen)
	}
	for _, r := range value {
		if r > unicode.MaxASCII || !unicode.IsUpper(r) {
			return "purpose code must be uppercase letters A-Z"
		}
	}
	return ""
}
