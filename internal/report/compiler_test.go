package report

import (
	"strings"
	"testing"
	"time"

	"github.com/midcare/pflegedoc/internal/domain/client"
	"github.com/midcare/pflegedoc/internal/domain/entry"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func intPtr(n int) *int {
	return &n
}

func fieldValue(t *testing.T, doc Document, label string) string {
	t.Helper()

	for _, b := range doc.Blocks {
		if b.Kind != KindFields {
			continue
		}
		for _, f := range b.Fields {
			if f.Label == label {
				return f.Value
			}
		}
	}

	t.Fatalf("no field %q in document", label)
	return ""
}

func entryBlocks(doc Document) []*EntryBlock {
	var out []*EntryBlock

	for _, b := range doc.Blocks {
		if b.Kind == KindEntry {
			out = append(out, b.Entry)
		}
	}

	return out
}

func TestCompileClientData(t *testing.T) {
	now := time.Date(2024, time.June, 1, 14, 30, 0, 0, time.UTC)

	c := client.Client{
		Name:      "Johann Schmidt",
		BirthDate: datePtr(1938, time.November, 3),
		CareLevel: intPtr(4),
		Address:   "Hauptstraße 1, 10115 Berlin",
	}

	e1 := entry.CareEntry{
		Category:    entry.CategoryMedication,
		Description: "Marcumar 3mg verabreicht",
		RecordedBy:  "Maria Weber",
		RecordedAt:  time.Date(2024, time.May, 30, 11, 0, 0, 0, time.UTC),
	}
	e2 := entry.CareEntry{
		Category:    entry.CategoryVitalSigns,
		Description: "RR 130/85, Puls 68, Temperatur 36,8",
		RecordedBy:  "Maria Weber",
		RecordedAt:  time.Date(2024, time.May, 30, 8, 0, 0, 0, time.UTC),
	}

	doc := Compile(c, []entry.CareEntry{e1, e2}, now)

	if doc.Title != "MID Pflegedokumentation" || doc.Subtitle != "Meine Intensivpflege Daheim" {
		t.Fatalf("unexpected identity: %q / %q", doc.Title, doc.Subtitle)
	}

	tests := []struct {
		label string
		want  string
	}{
		{"Name", "Johann Schmidt"},
		{"Geburtsdatum", "03.11.1938"},
		{"Alter", "85 Jahre"},
		{"Pflegegrad", "Pflegegrad 4"},
		{"Adresse", "Hauptstraße 1, 10115 Berlin"},
	}

	for _, tt := range tests {
		if got := fieldValue(t, doc, tt.label); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.label, got, tt.want)
		}
	}

	var countHeading string

	for _, b := range doc.Blocks {
		if b.Kind == KindHeading && strings.HasPrefix(b.Text, "Pflegeeinträge") {
			countHeading = b.Text
		}
	}

	if !strings.Contains(countHeading, "2 Einträge") {
		t.Errorf("entries heading = %q, want it to state the count", countHeading)
	}

	blocks := entryBlocks(doc)

	if len(blocks) != 2 {
		t.Fatalf("got %d entry blocks, want 2", len(blocks))
	}

	// order preserving: most recent first, as given by the caller
	if blocks[0].Timestamp != "30.05.2024 11:00" || blocks[1].Timestamp != "30.05.2024 08:00" {
		t.Fatalf("entry order broken: %q then %q", blocks[0].Timestamp, blocks[1].Timestamp)
	}

	if blocks[0].Category != "Medikamente" || blocks[1].Category != "Vitalzeichen" {
		t.Fatalf("category labels: %q, %q", blocks[0].Category, blocks[1].Category)
	}
}

func TestCompilePlaceholders(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	doc := Compile(client.Client{Name: "Ohne Daten"}, nil, now)

	for _, label := range []string{"Geburtsdatum", "Alter", "Pflegegrad", "Adresse"} {
		if got := fieldValue(t, doc, label); got != "-" {
			t.Errorf("%s = %q, want placeholder", label, got)
		}
	}
}

func TestCompileNoEntries(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	doc := Compile(client.Client{Name: "Leer"}, []entry.CareEntry{}, now)

	if len(entryBlocks(doc)) != 0 {
		t.Fatal("expected no entry blocks")
	}

	found := false

	for _, b := range doc.Blocks {
		if b.Kind == KindText && b.Text == "Keine Pflegeeinträge vorhanden." {
			found = true
		}
	}

	if !found {
		t.Fatal("missing the no-entries placeholder block")
	}
}

func TestCompileUnknownCategoryPassthrough(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	e := entry.CareEntry{
		Category:    entry.Category("sonstiges"),
		Description: "Freitext ohne bekannte Kategorie",
		RecordedBy:  "Maria Weber",
		RecordedAt:  now,
	}

	doc := Compile(client.Client{Name: "X"}, []entry.CareEntry{e}, now)

	blocks := entryBlocks(doc)

	if len(blocks) != 1 || blocks[0].Category != "sonstiges" {
		t.Fatalf("unknown category should pass through verbatim, got %+v", blocks)
	}
}

func TestCompileNotesBlockOnlyWhenPresent(t *testing.T) {
	now := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)

	hasNotes := func(doc Document) bool {
		for _, b := range doc.Blocks {
			if b.Kind == KindText && strings.HasPrefix(b.Text, "Notizen:") {
				return true
			}
		}
		return false
	}

	if hasNotes(Compile(client.Client{Name: "A"}, nil, now)) {
		t.Fatal("notes block present for empty notes")
	}

	if !hasNotes(Compile(client.Client{Name: "A", Notes: "Diabetiker"}, nil, now)) {
		t.Fatal("notes block missing")
	}
}

func TestCompileDeterministicAndFooter(t *testing.T) {
	now := time.Date(2024, time.June, 1, 14, 30, 0, 0, time.UTC)
	c := client.Client{Name: "Johann Schmidt"}

	a := Compile(c, nil, now)
	b := Compile(c, nil, now)

	if len(a.Blocks) != len(b.Blocks) {
		t.Fatal("compile is not deterministic for a fixed now")
	}

	footer := a.Blocks[len(a.Blocks)-1]

	if footer.Kind != KindFooter {
		t.Fatalf("last block kind = %q, want footer", footer.Kind)
	}

	if footer.Text != "Erstellt am 01.06.2024 um 14:30 Uhr | MID Pflegedokumentation" {
		t.Fatalf("footer = %q", footer.Text)
	}
}
