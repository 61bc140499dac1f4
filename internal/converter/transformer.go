// =============================================================================
// UPN Tools - Field Normalizer & Aliaser
// =============================================================================
//
// Payer lists are typed by hand, so the same logical column shows up as
// "Poštna številka", "postna stevilka" or "Postna  Stevilka". Column names
// are canonicalized before lookup:
//
//   1. NFKD decomposition ("š" -> "s" + combining caron)
//   2. Combining marks removed
//   3. Lowercased
//   4. Whitespace runs collapsed to a single space, ends trimmed
//
// Lookup after canonicalization is exact. This is not a fuzzy matcher.
//
// =============================================================================

package converter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/ginjaninja78/upn-tools/internal/types"
)

// NormalizeKey canonicalizes a column name for alias matching.
func NormalizeKey(value string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	stripped, _, err := transform.String(t, value)
	if err != nil {
		// The chain only fails on invalid input state; fall back to the raw value.
		stripped = value
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// Transformer resolves logical fields from rows by alias.
// It caches the canonical form of every column name it has seen.
type Transformer struct {
	keys map[string]string
}

// NewTransformer creates a Transformer with an empty key cache.
func NewTransformer() *Transformer {
	return &Transformer{keys: make(map[string]string)}
}

func (t *Transformer) normalize(key string) string {
	if n, ok := t.keys[key]; ok {
		return n
	}
	n := NormalizeKey(key)
	t.keys[key] = n
	return n
}

// Normalized returns row keyed by canonical column name. When two columns
// canonicalize to the same name, the rightmost column wins, even if empty.
func (t *Transformer) Normalized(row types.Row) map[string]string {
	out := make(map[string]string, len(row))
	for _, cell := range row {
		out[t.normalize(cell.Column)] = cell.Value
	}
	return out
}

// GetField returns the first non-empty value among aliases, tried in the
// given priority order, or "" if none matches.
func (t *Transformer) GetField(row types.Row, aliases ...string) string {
	normalized := t.Normalized(row)
	return t.lookup(normalized, aliases...)
}

func (t *Transformer) lookup(normalized map[string]string, aliases ...string) string {
	for _, alias := range aliases {
		if v := normalized[t.normalize(alias)]; v != "" {
			return v
		}
	}
	return ""
}

// GetField is a convenience wrapper around a throwaway Transformer.
func GetField(row types.Row, aliases ...string) string {
	return NewTransformer().GetField(row, aliases...)
}
