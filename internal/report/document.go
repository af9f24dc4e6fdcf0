package report

// The document model is an ordered tree of typed blocks with no
// rendering concerns; a renderer walks Blocks in order and decides
// layout on its own.

type BlockKind string

const (
	KindHeading   BlockKind = "heading"
	KindFields    BlockKind = "fields"
	KindText      BlockKind = "text"
	KindEntry     BlockKind = "entry"
	KindSeparator BlockKind = "separator"
	KindFooter    BlockKind = "footer"
)

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type EntryBlock struct {
	Timestamp   string `json:"timestamp"`
	Category    string `json:"category"`
	RecordedBy  string `json:"recordedBy"`
	Description string `json:"description"`
}

// Block is a tagged union; exactly the fields matching Kind are set.
type Block struct {
	Kind   BlockKind   `json:"kind"`
	Text   string      `json:"text,omitempty"`
	Fields []Field     `json:"fields,omitempty"`
	Entry  *EntryBlock `json:"entry,omitempty"`
}

type Document struct {
	Title    string  `json:"title"`
	Subtitle string  `json:"subtitle"`
	Blocks   []Block `json:"blocks"`
}
