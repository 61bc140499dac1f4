// =============================================================================
// UPN Tools - Configuration Module
// =============================================================================
//
// This module resolves the settings used by the converter. Every setting is
// keyed by its environment variable name and resolved from, in order:
//   1. The process environment (optionally pre-seeded from a local .env file)
//   2. An optional YAML profile passed with --config
//   3. A hardcoded default
//
// The resolved Settings value is immutable for the duration of a run and is
// passed explicitly to the record builder; nothing downstream reads the
// environment.
//
// =============================================================================

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// SETTING KEYS
// =============================================================================

// Environment variable names understood by the converter.
const (
	KeyCSVFile          = "CSV_FILE"
	KeyOutputTXT        = "OUTPUT_TXT"
	KeyOutputXML        = "OUTPUT_XML"
	KeyTipDokumenta     = "TIP_DOKUMENTA"
	KeyDobroIBAN        = "DOBRO_IBAN"
	KeyDobroModel       = "DOBRO_MODEL"
	KeyDobroSklicPrefix = "DOBRO_SKLIC_PREFIX"
	KeyDobroIme         = "DOBRO_IME"
	KeyDobroUlica       = "DOBRO_ULICA"
	KeyDobroKraj        = "DOBRO_KRAJ"
	KeyZnesek           = "ZNESEK"
	KeyNamenPlacila     = "NAMEN_PLACILA"
	KeyKodaNamena       = "KODA_NAMENA"
	KeyRokPlacilaDni    = "ROK_PLACILA_DNI"
	KeyNujno            = "NUJNO"
	KeyBrezZneska       = "BREZ_ZNESKA"
	KeyBrezPlacnika     = "BREZ_PLACNIKA"
	KeyNatisniQR        = "NATISNI_QR"
	KeyBremeIBAN        = "BREME_IBAN"
	KeyBremeModel       = "BREME_MODEL"
	KeyBremeSklic       = "BREME_SKLIC"
	KeyBremeIme         = "BREME_IME"
	KeyBremeUlica       = "BREME_ULICA"
	KeyBremeKraj        = "BREME_KRAJ"
)

// defaults holds the fallback for every key. Keys absent here default to "".
var defaults = map[string]string{
	KeyCSVFile:          "2026.csv",
	KeyOutputTXT:        "",
	KeyOutputXML:        "2026.txt",
	KeyTipDokumenta:     "Nalog_za_placilo",
	KeyDobroIBAN:        "",
	KeyDobroModel:       "SI00",
	KeyDobroSklicPrefix: "2026-",
	KeyDobroIme:         "",
	KeyDobroUlica:       "",
	KeyDobroKraj:        "",
	KeyZnesek:           "20.00",
	KeyNamenPlacila:     "Clanarina 2026",
	KeyKodaNamena:       "ADMG",
	KeyRokPlacilaDni:    "0",
	KeyNujno:            "false",
	KeyBrezZneska:       "false",
	KeyBrezPlacnika:     "false",
	KeyNatisniQR:        "true",
	KeyBremeIBAN:        "",
	KeyBremeModel:       "",
	KeyBremeSklic:       "",
	KeyBremeIme:         "",
	KeyBremeUlica:       "",
	KeyBremeKraj:        "",
}

// =============================================================================
// SETTINGS STRUCTURE
// =============================================================================

// Settings holds the resolved converter configuration.
// All values are trimmed strings; boolean settings are "true" or "false".
type Settings struct {
	// CSVFile is the payer list to read (.csv or .xlsx).
	CSVFile string `yaml:"csv_file"`

	// OutputFile is the XML document to write. OUTPUT_TXT wins over
	// OUTPUT_XML when it is non-empty.
	OutputFile string `yaml:"output_file"`

	TipDokumenta string `yaml:"tip_dokumenta"`

	// Creditor (payee) side, identical for every record.
	DobroIBAN        string `yaml:"dobro_iban"`
	DobroModel       string `yaml:"dobro_model"`
	DobroSklicPrefix string `yaml:"dobro_sklic_prefix"`
	DobroIme         string `yaml:"dobro_ime"`
	DobroUlica       string `yaml:"dobro_ulica"`
	DobroKraj        string `yaml:"dobro_kraj"`

	Znesek        string `yaml:"znesek"`
	NamenPlacila  string `yaml:"namen_placila"`
	KodaNamena    string `yaml:"koda_namena"`
	RokPlacilaDni string `yaml:"rok_placila_dni"`

	Nujno        string `yaml:"nujno"`
	BrezZneska   string `yaml:"brez_zneska"`
	BrezPlacnika string `yaml:"brez_placnika"`
	NatisniQR    string `yaml:"natisni_qr"`

	// Fixed debtor overrides. When non-empty they win over row data.
	BremeIBAN  string `yaml:"breme_iban"`
	BremeModel string `yaml:"breme_model"`
	BremeSklic string `yaml:"breme_sklic"`
	BremeIme   string `yaml:"breme_ime"`
	BremeUlica string `yaml:"breme_ulica"`
	BremeKraj  string `yaml:"breme_kraj"`
}

// Options controls where Resolve looks for settings.
type Options struct {
	// ProfileFile is an optional YAML file with lowercase keys
	// (e.g. "dobro_iban: SI56..."). Empty means no profile.
	ProfileFile string
}

// =============================================================================
// RESOLUTION
// =============================================================================

// Resolve builds Settings from the process environment, the optional YAML
// profile and the hardcoded defaults.
//
// A variable that is set but empty resolves to "", not to its default.
func Resolve(opts Options) (Settings, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.AllowEmptyEnv(true)

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if opts.ProfileFile != "" {
		profile, err := readProfile(opts.ProfileFile)
		if err != nil {
			return Settings{}, err
		}
		if err := v.MergeConfigMap(profile); err != nil {
			return Settings{}, fmt.Errorf("failed to load profile %s: %w", opts.ProfileFile, err)
		}
	}

	get := func(key string) string {
		return strings.TrimSpace(v.GetString(key))
	}

	output := get(KeyOutputTXT)
	if output == "" {
		output = get(KeyOutputXML)
	}

	return Settings{
		CSVFile:          get(KeyCSVFile),
		OutputFile:       output,
		TipDokumenta:     get(KeyTipDokumenta),
		DobroIBAN:        get(KeyDobroIBAN),
		DobroModel:       get(KeyDobroModel),
		DobroSklicPrefix: get(KeyDobroSklicPrefix),
		DobroIme:         get(KeyDobroIme),
		DobroUlica:       get(KeyDobroUlica),
		DobroKraj:        get(KeyDobroKraj),
		Znesek:           get(KeyZnesek),
		NamenPlacila:     get(KeyNamenPlacila),
		KodaNamena:       get(KeyKodaNamena),
		RokPlacilaDni:    get(KeyRokPlacilaDni),
		Nujno:            BoolText(get(KeyNujno)),
		BrezZneska:       BoolText(get(KeyBrezZneska)),
		BrezPlacnika:     BoolText(get(KeyBrezPlacnika)),
		NatisniQR:        BoolText(get(KeyNatisniQR)),
		BremeIBAN:        get(KeyBremeIBAN),
		BremeModel:       get(KeyBremeModel),
		BremeSklic:       get(KeyBremeSklic),
		BremeIme:         get(KeyBremeIme),
		BremeUlica:       get(KeyBremeUlica),
		BremeKraj:        get(KeyBremeKraj),
	}, nil
}

// readProfile decodes a YAML profile into flat key/value text. Scalars are
// decoded as written, so "znesek: 20.00" stays "20.00" and
// "rok_placila_dni: 08" stays "08".
func readProfile(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	var values map[string]string
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}

	profile := make(map[string]any, len(values))
	for key, value := range values {
		profile[key] = value
	}
	return profile, nil
}

// truthy is the accepted vocabulary for boolean settings ("da" is Slovenian
// for "yes").
var truthy = map[string]bool{
	"1":    true,
	"true": true,
	"yes":  true,
	"da":   true,
}

// BoolText normalizes a boolean-like setting to "true" or "false".
// Anything outside the truthy vocabulary, including "", is "false".
func BoolText(value string) string {
	if truthy[strings.ToLower(strings.TrimSpace(value))] {
		return "true"
	}
	return "false"
}
