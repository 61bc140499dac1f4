// =============================================================================
// UPN Tools - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - csvparser / xlsxparser (Row)
//   - converter (Row -> UPN)
//   - validation
//   - xmlwriter
//
// =============================================================================

package types

// =============================================================================
// ROW
// =============================================================================

// Cell is one column value of a parsed row.
type Cell struct {
	Column string
	Value  string
}

// Row is one parsed data line of the payer list. Cells keep the column order
// of the header line, so a repeated column name appears once per column.
type Row []Cell

// =============================================================================
// UPN RECORD
// =============================================================================

// UPN is a single payment order record ("Univerzalni plačilni nalog").
//
// The field order here is the order of the XML child elements and must not
// change: the consuming system reads elements positionally.
type UPN struct {
	ID           string `xml:"ID" csv:"ID"`
	TipDokumenta string `xml:"TipDokumenta" csv:"TipDokumenta"`

	// Debtor ("breme") side.
	BremeIBAN  string `xml:"BremeIBAN" csv:"BremeIBAN"`
	BremeModel string `xml:"BremeModel" csv:"BremeModel"`
	BremeSklic string `xml:"BremeSklic" csv:"BremeSklic"`
	BremeIme   string `xml:"BremeIme" csv:"BremeIme"`
	BremeUlica string `xml:"BremeUlica" csv:"BremeUlica"`
	BremeKraj  string `xml:"BremeKraj" csv:"BremeKraj"`

	// Creditor ("dobro") side.
	DobroIBAN  string `xml:"DobroIBAN" csv:"DobroIBAN"`
	DobroModel string `xml:"DobroModel" csv:"DobroModel"`
	DobroSklic string `xml:"DobroSklic" csv:"DobroSklic"`
	DobroIme   string `xml:"DobroIme" csv:"DobroIme"`
	DobroUlica string `xml:"DobroUlica" csv:"DobroUlica"`
	DobroKraj  string `xml:"DobroKraj" csv:"DobroKraj"`

	Znesek        string `xml:"Znesek" csv:"Znesek"`
	DatumPlacila  string `xml:"DatumPlacila" csv:"DatumPlacila"`
	NamenPlacila  string `xml:"NamenPlacila" csv:"NamenPlacila"`
	KodaNamena    string `xml:"KodaNamena" csv:"KodaNamena"`
	RokPlacila    string `xml:"RokPlacila" csv:"RokPlacila"`
	RokPlacilaDni string `xml:"RokPlacilaDni" csv:"RokPlacilaDni"`

	// Flags, always "true" or "false".
	Nujno        string `xml:"Nujno" csv:"Nujno"`
	BrezZneska   string `xml:"BrezZneska" csv:"BrezZneska"`
	BrezPlacnika string `xml:"BrezPlacnika" csv:"BrezPlacnika"`
	NatisniQR    string `xml:"NatisniQR" csv:"NatisniQR"`
}

// Field is one named value of a UPN record.
type Field struct {
	Tag   string
	Value string
}

// FieldCount is the number of elements every UPN record carries.
const FieldCount = 24

// Fields returns all record fields in element order. Empty values are
// included so every tag is always emitted.
func (u UPN) Fields() []Field {
	return []Field{
		{"ID", u.ID},
		{"TipDokumenta", u.TipDokumenta},
		{"BremeIBAN", u.BremeIBAN},
		{"BremeModel", u.BremeModel},
		{"BremeSklic", u.BremeSklic},
		{"BremeIme", u.BremeIme},
		{"BremeUlica", u.BremeUlica},
		{"BremeKraj", u.BremeKraj},
		{"DobroIBAN", u.DobroIBAN},
		{"DobroModel", u.DobroModel},
		{"DobroSklic", u.DobroSklic},
		{"DobroIme", u.DobroIme},
		{"DobroUlica", u.DobroUlica},
		{"DobroKraj", u.DobroKraj},
		{"Znesek", u.Znesek},
		{"DatumPlacila", u.DatumPlacila},
		{"NamenPlacila", u.NamenPlacila},
		{"KodaNamena", u.KodaNamena},
		{"RokPlacila", u.RokPlacila},
		{"RokPlacilaDni", u.RokPlacilaDni},
		{"Nujno", u.Nujno},
		{"BrezZneska", u.BrezZneska},
		{"BrezPlacnika", u.BrezPlacnika},
		{"NatisniQR", u.NatisniQR},
	}
}
