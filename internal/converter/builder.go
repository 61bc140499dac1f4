package converter

import (
	"strconv"
	"strings"

	"github.com/ginjaninja78/upn-tools/internal/config"
	"github.com/ginjaninja78/upn-tools/internal/types"
)

// SklicPlaceholder is replaced with the row index in the reference prefix.
const SklicPlaceholder = "{id}"

// Column aliases, in priority order, for the row-derived debtor fields.
var (
	aliasIme        = []string{"Ime"}
	aliasPriimek    = []string{"Priimek"}
	aliasNaslov     = []string{"Naslov"}
	aliasPostna     = []string{"Postna stevilka", "Postna"}
	aliasPostaNaziv = []string{"Posta naziv", "Kraj"}
)

// SklicValue derives the creditor reference for the idx-th row (1-based).
//
// A prefix containing "{id}" has every placeholder replaced with idx;
// any other prefix gets idx appended. Both forms are in use downstream.
func SklicValue(prefix string, idx int) string {
	id := strconv.Itoa(idx)
	if strings.Contains(prefix, SklicPlaceholder) {
		return strings.ReplaceAll(prefix, SklicPlaceholder, id)
	}
	return prefix + id
}

// Builder turns rows into UPN records for one resolved configuration.
type Builder struct {
	settings    config.Settings
	transformer *Transformer
}

// NewBuilder creates a Builder. Settings are copied and never re-read.
func NewBuilder(settings config.Settings) *Builder {
	return &Builder{
		settings:    settings,
		transformer: NewTransformer(),
	}
}

// Build creates the record for the idx-th row (1-based).
func (b *Builder) Build(idx int, row types.Row) types.UPN {
	s := b.settings
	fields := b.transformer.Normalized(row)
	get := func(aliases []string) string {
		return b.transformer.lookup(fields, aliases...)
	}

	ime := get(aliasIme)
	priimek := get(aliasPriimek)
	postna := get(aliasPostna)
	postaNaziv := get(aliasPostaNaziv)

	return types.UPN{
		ID:           strconv.Itoa(idx),
		TipDokumenta: s.TipDokumenta,

		BremeIBAN:  s.BremeIBAN,
		BremeModel: s.BremeModel,
		BremeSklic: s.BremeSklic,
		BremeIme:   override(s.BremeIme, joinTrim(ime, priimek)),
		BremeUlica: override(s.BremeUlica, get(aliasNaslov)),
		BremeKraj:  override(s.BremeKraj, joinTrim(postna, postaNaziv)),

		DobroIBAN:  s.DobroIBAN,
		DobroModel: s.DobroModel,
		DobroSklic: SklicValue(s.DobroSklicPrefix, idx),
		DobroIme:   s.DobroIme,
		DobroUlica: s.DobroUlica,
		DobroKraj:  s.DobroKraj,

		Znesek: s.Znesek,
		// Payment date and deadline are filled in by hand on the form.
		DatumPlacila:  "",
		NamenPlacila:  s.NamenPlacila,
		KodaNamena:    s.KodaNamena,
		RokPlacila:    "",
		RokPlacilaDni: s.RokPlacilaDni,

		Nujno:        s.Nujno,
		BrezZneska:   s.BrezZneska,
		BrezPlacnika: s.BrezPlacnika,
		NatisniQR:    s.NatisniQR,
	}
}

// BuildAll creates one record per row, in row order, numbered from 1.
func (b *Builder) BuildAll(rows []types.Row) []types.UPN {
	records := make([]types.UPN, len(rows))
	for i, row := range rows {
		records[i] = b.Build(i+1, row)
	}
	return records
}

// BuildRecords is BuildAll on a fresh Builder.
func BuildRecords(rows []types.Row, settings config.Settings) []types.UPN {
	return NewBuilder(settings).BuildAll(rows)
}

// override returns fixed when set, otherwise the row-derived value.
func override(fixed, derived string) string {
	if fixed != "" {
		return fixed
	}
	return derived
}

func joinTrim(a, b string) string {
	return strings.TrimSpace(a + " " + b)
}
