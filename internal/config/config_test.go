package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv makes every known key unset for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range defaults {
		t.Setenv(key, "") // registers restore on cleanup
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBoolText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "true"},
		{"true", "true"},
		{"TRUE", "true"},
		{"YES", "true"},
		{"yes", "true"},
		{"da", "true"},
		{"Da", "true"},
		{"  true  ", "true"},
		{"", "false"},
		{"0", "false"},
		{"no", "false"},
		{"ne", "false"},
		{"y", "false"},
		{"truthy", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, BoolText(tt.in))
		})
	}
}

func TestResolveDefaults(t *testing.T) {
	clearEnv(t)

	s, err := Resolve(Options{})
	require.NoError(t, err)

	assert.Equal(t, "2026.csv", s.CSVFile)
	assert.Equal(t, "2026.txt", s.OutputFile)
	assert.Equal(t, "Nalog_za_placilo", s.TipDokumenta)
	assert.Equal(t, "SI00", s.DobroModel)
	assert.Equal(t, "2026-", s.DobroSklicPrefix)
	assert.Equal(t, "20.00", s.Znesek)
	assert.Equal(t, "Clanarina 2026", s.NamenPlacila)
	assert.Equal(t, "ADMG", s.KodaNamena)
	assert.Equal(t, "0", s.RokPlacilaDni)
	assert.Equal(t, "false", s.Nujno)
	assert.Equal(t, "false", s.BrezZneska)
	assert.Equal(t, "false", s.BrezPlacnika)
	assert.Equal(t, "true", s.NatisniQR)
	assert.Empty(t, s.DobroIBAN)
	assert.Empty(t, s.BremeIme)
}

func TestResolveEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyDobroIBAN, "  SI56 0201 0001 2345 678  ")
	t.Setenv(KeyNujno, "DA")
	t.Setenv(KeyNatisniQR, "no")
	t.Setenv(KeyZnesek, "")

	s, err := Resolve(Options{})
	require.NoError(t, err)

	assert.Equal(t, "SI56 0201 0001 2345 678", s.DobroIBAN)
	assert.Equal(t, "true", s.Nujno)
	assert.Equal(t, "false", s.NatisniQR)
	assert.Equal(t, "", s.Znesek, "set-but-empty variables must not fall back to the default")
}

func TestResolveOutputPrecedence(t *testing.T) {
	tests := []struct {
		name string
		txt  *string
		xml  *string
		want string
	}{
		{name: "defaults", want: "2026.txt"},
		{name: "xml only", xml: ptr("out.xml"), want: "out.xml"},
		{name: "txt wins", txt: ptr("out.txt"), xml: ptr("out.xml"), want: "out.txt"},
		{name: "empty txt falls through", txt: ptr(""), xml: ptr("out.xml"), want: "out.xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			if tt.txt != nil {
				t.Setenv(KeyOutputTXT, *tt.txt)
			}
			if tt.xml != nil {
				t.Setenv(KeyOutputXML, *tt.xml)
			}

			s, err := Resolve(Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.OutputFile)
		})
	}
}

func TestResolveProfile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	profile := writeFile(t, dir, "upn.yaml", "dobro_iban: SI56111\nznesek: \"35.00\"\nnujno: yes\n")
	t.Setenv(KeyZnesek, "40.00")

	s, err := Resolve(Options{ProfileFile: profile})
	require.NoError(t, err)

	assert.Equal(t, "SI56111", s.DobroIBAN)
	assert.Equal(t, "40.00", s.Znesek, "environment wins over profile")
	assert.Equal(t, "true", s.Nujno)
	assert.Equal(t, "SI00", s.DobroModel)
}

func TestResolveProfileKeepsScalarText(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	profile := writeFile(t, dir, "upn.yaml",
		"znesek: 25.50\nrok_placila_dni: 08\nkoda_namena: 0100\ndobro_sklic_prefix: SI00 {id}\nbreme_ime:\n")

	s, err := Resolve(Options{ProfileFile: profile})
	require.NoError(t, err)

	assert.Equal(t, "25.50", s.Znesek)
	assert.Equal(t, "08", s.RokPlacilaDni)
	assert.Equal(t, "0100", s.KodaNamena)
	assert.Equal(t, "SI00 {id}", s.DobroSklicPrefix)
	assert.Empty(t, s.BremeIme)

	t.Setenv(KeyRokPlacilaDni, "30")
	s, err = Resolve(Options{ProfileFile: profile})
	require.NoError(t, err)
	assert.Equal(t, "30", s.RokPlacilaDni, "environment wins over profile")
	assert.Equal(t, "25.50", s.Znesek)
}

func TestResolveProfileRejectsNesting(t *testing.T) {
	clearEnv(t)
	profile := writeFile(t, t.TempDir(), "upn.yaml", "dobro:\n  iban: SI56\n")

	_, err := Resolve(Options{ProfileFile: profile})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse profile")
}

func TestResolveMissingProfile(t *testing.T) {
	clearEnv(t)
	_, err := Resolve(Options{ProfileFile: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(KeyDobroIme, "From Process")

	dir := t.TempDir()
	path := writeFile(t, dir, ".env", `# comment line
DOBRO_IBAN = SI56 1234
not a pair

DOBRO_IBAN=second occurrence
DOBRO_IME=From File
DOBRO_ULICA=Trg=1
=orphan
`)

	exported, err := LoadEnvFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{KeyDobroIBAN, KeyDobroUlica}, exported)
	assert.Equal(t, "SI56 1234", os.Getenv(KeyDobroIBAN), "first occurrence wins")
	assert.Equal(t, "From Process", os.Getenv(KeyDobroIme), "process environment is never overridden")
	assert.Equal(t, "Trg=1", os.Getenv(KeyDobroUlica), "only the first '=' splits")
}

func TestLoadEnvFileMissing(t *testing.T) {
	exported, err := LoadEnvFile(filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
	assert.Empty(t, exported)
}

func TestLoadEnvFileFeedsResolve(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, t.TempDir(), ".env", "DOBRO_SKLIC_PREFIX=00-{id}\nBREZ_ZNESKA=1\n")

	_, err := LoadEnvFile(path)
	require.NoError(t, err)
	t.Cleanup(func() {
		os.Unsetenv(KeyDobroSklicPrefix)
		os.Unsetenv(KeyBrezZneska)
	})

	s, err := Resolve(Options{})
	require.NoError(t, err)
	assert.Equal(t, "00-{id}", s.DobroSklicPrefix)
	assert.Equal(t, "true", s.BrezZneska)
}

func ptr(s string) *string { return &s }
