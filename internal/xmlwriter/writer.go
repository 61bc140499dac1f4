// =============================================================================
// UPN Tools - XML Writer Module
// =============================================================================
//
// This module generates the ArrayOfUPN document read by the bank's UPN
// printing software. The consumer expects a UTF-16 document with the .NET
// XmlSerializer namespace declarations and every field element present.
//
// XML STRUCTURE:
//
//   <?xml version='1.0' encoding='utf-16'?>
//   <ArrayOfUPN xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" xmlns:xsd="http://www.w3.org/2001/XMLSchema">
//     <UPN>
//       <ID>1</ID>
//       <TipDokumenta>Nalog_za_placilo</TipDokumenta>
//       <BremeIBAN />                       <!-- empty fields stay present -->
//       ...
//       <NatisniQR>true</NatisniQR>
//     </UPN>
//   </ArrayOfUPN>
//
// The writer is hand-rolled rather than built on encoding/xml because the
// consumer needs "<Tag />" for empty values and a fixed attribute order on
// the root, neither of which the standard encoder produces.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/ginjaninja78/upn-tools/internal/types"
)

// =============================================================================
// DOCUMENT CONSTANTS
// =============================================================================

const (
	RootElement   = "ArrayOfUPN"
	RecordElement = "UPN"

	NamespaceXSI = "http://www.w3.org/2001/XMLSchema-instance"
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema"

	// Declaration is written exactly as the consumer's own exports do.
	Declaration = "<?xml version='1.0' encoding='utf-16'?>"

	indent = "  "
)

// rootAttributes are written in this order.
var rootAttributes = [][2]string{
	{"xmlns:xsi", NamespaceXSI},
	{"xmlns:xsd", NamespaceXSD},
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates the ArrayOfUPN document encoded as UTF-16 (little endian,
// with byte order mark).
func Generate(records []types.UPN) ([]byte, error) {
	doc := GenerateUTF8(records)

	encoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	out, err := encoder.Bytes(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode UTF-16: %w", err)
	}
	return out, nil
}

// GenerateUTF8 creates the same document as Generate, before transcoding.
// The declaration still names utf-16, since that is what gets written.
func GenerateUTF8(records []types.UPN) []byte {
	var buffer bytes.Buffer

	buffer.WriteString(Declaration)
	buffer.WriteString("\n")

	buffer.WriteString("<")
	buffer.WriteString(RootElement)
	for _, attr := range rootAttributes {
		fmt.Fprintf(&buffer, " %s=\"%s\"", attr[0], escapeAttr(attr[1]))
	}

	if len(records) == 0 {
		buffer.WriteString(" />")
		return buffer.Bytes()
	}

	buffer.WriteString(">\n")
	for _, record := range records {
		writeRecord(&buffer, record)
	}
	buffer.WriteString("</")
	buffer.WriteString(RootElement)
	buffer.WriteString(">")

	return buffer.Bytes()
}

// writeRecord writes one <UPN> element with all of its fields.
func writeRecord(buffer *bytes.Buffer, record types.UPN) {
	buffer.WriteString(indent)
	buffer.WriteString("<" + RecordElement + ">\n")

	for _, field := range record.Fields() {
		writeElement(buffer, field.Tag, field.Value, 2)
	}

	buffer.WriteString(indent)
	buffer.WriteString("</" + RecordElement + ">\n")
}

// writeElement writes a simple text element at the given depth.
func writeElement(buffer *bytes.Buffer, name, value string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(name)

	if value == "" {
		buffer.WriteString(" />\n")
		return
	}

	buffer.WriteString(">")
	buffer.WriteString(escapeText(value))
	buffer.WriteString("</")
	buffer.WriteString(name)
	buffer.WriteString(">\n")
}

// escapeText escapes character data.
func escapeText(s string) string {
	var buffer bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		default:
			buffer.WriteRune(r)
		}
	}
	return buffer.String()
}

// escapeAttr escapes attribute values.
func escapeAttr(s string) string {
	var buffer bytes.Buffer
	for _, r := range s {
		switch r {
		case '"':
			buffer.WriteString("&quot;")
		case '\n':
			buffer.WriteString("&#10;")
		default:
			buffer.WriteString(escapeText(string(r)))
		}
	}
	return buffer.String()
}
