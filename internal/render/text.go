package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/midcare/pflegedoc/internal/report"
)

// Text walks a document block tree and emits a plain-text rendition.
// All layout decisions live here, none in the compiler.
func Text(doc report.Document) []byte {
	var b strings.Builder

	b.WriteString(doc.Title + "\n")
	b.WriteString(doc.Subtitle + "\n\n")

	for _, block := range doc.Blocks {
		switch block.Kind {
		case report.KindHeading:
			b.WriteString("\n" + block.Text + "\n")
			b.WriteString(strings.Repeat("=", len([]rune(block.Text))) + "\n")
		case report.KindFields:
			for _, f := range block.Fields {
				fmt.Fprintf(&b, "%-14s %s\n", f.Label+":", f.Value)
			}
		case report.KindText:
			b.WriteString(block.Text + "\n")
		case report.KindEntry:
			e := block.Entry
			fmt.Fprintf(&b, "%s | %s | Erfasst von: %s\n", e.Timestamp, e.Category, e.RecordedBy)
			b.WriteString(e.Description + "\n")
		case report.KindSeparator:
			b.WriteString(strings.Repeat("-", 60) + "\n")
		case report.KindFooter:
			b.WriteString("\n" + block.Text + "\n")
		}
	}

	return []byte(b.String())
}

// Filename builds the attachment name for an exported report,
// e.g. "Pflegebericht_Johann_Schmidt_20240601.txt". The name goes
// into a quoted Content-Disposition header, so anything outside a
// safe character set becomes an underscore.
func Filename(clientName string, now time.Time) string {
	return fmt.Sprintf("Pflegebericht_%s_%s.txt",
		safeName(clientName), now.Format("20060102"))
}

func safeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.' {
			return r
		}

		return '_'
	}, name)
}
