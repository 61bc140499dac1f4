package csvparser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ginjaninja78/upn-tools/internal/types"
)

func writeCSV(t *testing.T, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clani.csv")
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func TestParseUTF8WithBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(
		"Ime;Priimek;Naslov\n"+
			" Janez ; Novak ;Slovenska cesta 1\n"+
			"Špela;Kovačič;Trg 2\n")...)
	data, err := Parse(writeCSV(t, content))
	require.NoError(t, err)

	assert.Equal(t, "utf-8-sig", data.Encoding)
	assert.Equal(t, []string{"Ime", "Priimek", "Naslov"}, data.Headers)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, types.Row{{Column: "Ime", Value: "Janez"}, {Column: "Priimek", Value: "Novak"}, {Column: "Naslov", Value: "Slovenska cesta 1"}}, data.Rows[0])
	assert.Equal(t, types.Row{{Column: "Ime", Value: "Špela"}, {Column: "Priimek", Value: "Kovačič"}, {Column: "Naslov", Value: "Trg 2"}}, data.Rows[1])
}

func TestParseWindows1250(t *testing.T) {
	// "Ime;Kraj\nŠpela;Žalec\n" in Windows-1250: Š=0x8A, Ž=0x8E.
	content := []byte("Ime;Kraj\n\x8Apela;\x8Ealec\n")
	data, err := Parse(writeCSV(t, content))
	require.NoError(t, err)

	assert.Equal(t, "cp1250", data.Encoding)
	require.Len(t, data.Attempts, 2)
	assert.Error(t, data.Attempts[0].Err)
	assert.NoError(t, data.Attempts[1].Err)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, types.Row{{Column: "Ime", Value: "Špela"}, {Column: "Kraj", Value: "Žalec"}}, data.Rows[0])
}

func TestParseLatin1Fallback(t *testing.T) {
	// 0x81 is undefined in Windows-1250 and invalid UTF-8.
	content := []byte("Ime;Opomba\nAna;x\x81y\n")
	data, err := Parse(writeCSV(t, content))
	require.NoError(t, err)

	assert.Equal(t, "latin-1", data.Encoding)
	assert.Len(t, data.Attempts, 3)
	assert.Equal(t, types.Row{{Column: "Ime", Value: "Ana"}, {Column: "Opomba", Value: "x\u0081y"}}, data.Rows[0])
}

func TestParseDecodeError(t *testing.T) {
	path := writeCSV(t, []byte("Ime\n\x98\x81\n"))
	candidates := DefaultCandidates()[:2] // UTF-8 and cp1250 only

	_, err := parseWith(path, candidates)
	require.Error(t, err)

	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, path, decodeErr.Path)
	require.Len(t, decodeErr.Attempts, 2)
	assert.Equal(t, "cp1250", decodeErr.Attempts[1].Encoding)
	assert.Equal(t, decodeErr.Attempts[1].Err, errors.Unwrap(decodeErr), "last cause is reported")
	assert.Contains(t, err.Error(), "utf-8-sig, cp1250")
}

func TestParseRowShapes(t *testing.T) {
	content := []byte(
		"Ime; ;Priimek;;Kraj\n" + // blank header names are dropped
			"Ana;skrito;Novak;x;Celje\n" +
			"Bor;;Zupan\n" + // short row
			"\n" + // blank line is skipped
			";;;;\n" + // all-empty row is kept
			"Cene;a;Horvat;b;Kranj;extra;cells\n")
	data, err := Parse(writeCSV(t, content))
	require.NoError(t, err)

	assert.Equal(t, []string{"Ime", "Priimek", "Kraj"}, data.Headers)
	require.Len(t, data.Rows, 4)

	assert.Equal(t, types.Row{{Column: "Ime", Value: "Ana"}, {Column: "Priimek", Value: "Novak"}, {Column: "Kraj", Value: "Celje"}}, data.Rows[0])
	assert.Equal(t, types.Row{{Column: "Ime", Value: "Bor"}, {Column: "Priimek", Value: "Zupan"}, {Column: "Kraj", Value: ""}}, data.Rows[1])
	assert.Equal(t, types.Row{{Column: "Ime", Value: ""}, {Column: "Priimek", Value: ""}, {Column: "Kraj", Value: ""}}, data.Rows[2])
	assert.Equal(t, types.Row{{Column: "Ime", Value: "Cene"}, {Column: "Priimek", Value: "Horvat"}, {Column: "Kraj", Value: "Kranj"}}, data.Rows[3])
}

func TestParseQuotedFields(t *testing.T) {
	content := []byte("Ime;Naslov\n\"Novak; Janez\";\"Cesta \"\"A\"\" 5\"\n")
	data, err := Parse(writeCSV(t, content))
	require.NoError(t, err)

	require.Len(t, data.Rows, 1)
	assert.Equal(t, types.Row{{Column: "Ime", Value: "Novak; Janez"}, {Column: "Naslov", Value: `Cesta "A" 5`}}, data.Rows[0])
}

func TestParseRepeatedHeaderKeepsColumnOrder(t *testing.T) {
	content := []byte("Kraj;Ime;KRAJ;Kraj\nCelje;Ana;Ptuj;Kranj\n")
	data, err := Parse(writeCSV(t, content))
	require.NoError(t, err)

	assert.Equal(t, []string{"Kraj", "Ime", "KRAJ", "Kraj"}, data.Headers)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, types.Row{{Column: "Kraj", Value: "Celje"}, {Column: "Ime", Value: "Ana"}, {Column: "KRAJ", Value: "Ptuj"}, {Column: "Kraj", Value: "Kranj"}}, data.Rows[0])
}

func TestParseHeaderOnlyAndEmpty(t *testing.T) {
	data, err := Parse(writeCSV(t, []byte("Ime;Priimek\n")))
	require.NoError(t, err)
	assert.Empty(t, data.Rows)

	data, err = Parse(writeCSV(t, []byte{}))
	require.NoError(t, err)
	assert.Empty(t, data.Rows)
	assert.Equal(t, "utf-8-sig", data.Encoding)
}

func TestParseRowCountMatchesInput(t *testing.T) {
	content := []byte("Ime\n")
	for i := 0; i < 50; i++ {
		content = append(content, []byte("clan\n")...)
	}
	data, err := Parse(writeCSV(t, content))
	require.NoError(t, err)
	assert.Len(t, data.Rows, 50)
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "none.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodeNoCandidates(t *testing.T) {
	_, attempts, err := Decode([]byte("x"), nil)
	assert.Error(t, err)
	assert.Empty(t, attempts)
}
