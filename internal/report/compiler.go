package report

import (
	"fmt"
	"time"

	"github.com/midcare/pflegedoc/internal/domain/client"
	"github.com/midcare/pflegedoc/internal/domain/entry"
)

const (
	documentTitle    = "MID Pflegedokumentation"
	documentSubtitle = "Meine Intensivpflege Daheim"

	placeholder = "-"

	dateLayout      = "02.01.2006"
	timestampLayout = "02.01.2006 15:04"
)

// Compile maps one client and its entries to a document. Entries are
// emitted in the order given; sorting is the caller's job. The
// function is pure: same inputs and the same now produce the same
// document.
func Compile(c client.Client, entries []entry.CareEntry, now time.Time) Document {
	blocks := make([]Block, 0, 4+2*len(entries))

	blocks = append(blocks, Block{Kind: KindHeading, Text: "Klientendaten"})
	blocks = append(blocks, Block{Kind: KindFields, Fields: clientFields(c, now)})

	if c.Notes != "" {
		blocks = append(blocks, Block{Kind: KindText, Text: "Notizen: " + c.Notes})
	}

	blocks = append(blocks, Block{
		Kind: KindHeading,
		Text: fmt.Sprintf("Pflegeeinträge (%d Einträge)", len(entries)),
	})

	if len(entries) == 0 {
		blocks = append(blocks, Block{Kind: KindText, Text: "Keine Pflegeeinträge vorhanden."})
	}

	for _, e := range entries {
		blocks = append(blocks, Block{
			Kind: KindEntry,
			Entry: &EntryBlock{
				Timestamp:   e.RecordedAt.Format(timestampLayout),
				Category:    e.Category.Label(),
				RecordedBy:  e.RecordedBy,
				Description: e.Description,
			},
		})
		blocks = append(blocks, Block{Kind: KindSeparator})
	}

	blocks = append(blocks, Block{
		Kind: KindFooter,
		Text: fmt.Sprintf("Erstellt am %s um %s Uhr | %s",
			now.Format(dateLayout), now.Format("15:04"), documentTitle),
	})

	return Document{
		Title:    documentTitle,
		Subtitle: documentSubtitle,
		Blocks:   blocks,
	}
}

func clientFields(c client.Client, now time.Time) []Field {
	birthDate := placeholder

	if c.BirthDate != nil {
		birthDate = c.BirthDate.Format(dateLayout)
	}

	age := placeholder

	if years := c.Age(now); years != nil {
		age = fmt.Sprintf("%d Jahre", *years)
	}

	careLevel := placeholder

	if c.CareLevel != nil {
		careLevel = fmt.Sprintf("Pflegegrad %d", *c.CareLevel)
	}

	address := c.Address

	if address == "" {
		address = placeholder
	}

	return []Field{
		{Label: "Name", Value: c.Name},
		{Label: "Geburtsdatum", Value: birthDate},
		{Label: "Alter", Value: age},
		{Label: "Pflegegrad", Value: careLevel},
		{Label: "Adresse", Value: address},
	}
}
