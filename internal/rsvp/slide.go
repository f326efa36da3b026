// Package rsvp converts text into ordered, timed slides for
// word-at-a-time (Rapid Serial Visual Presentation) display.
package rsvp

// BlockType discriminates slides that came from a structured content
// block rather than plain prose.
type BlockType string

const (
	BlockText       BlockType = "text"
	BlockCode       BlockType = "code"
	BlockHeading    BlockType = "heading"
	BlockBlockquote BlockType = "blockquote"
	BlockImage      BlockType = "image"
	BlockList       BlockType = "list"
	BlockTable      BlockType = "table"
	BlockHR         BlockType = "hr"
)

// BlockMetadata carries the block-specific details a renderer may need.
type BlockMetadata struct {
	Language string // code fence language
	Level    int    // heading level, 1-based
	Source   string // image source
	Alt      string // image alt text
	Ordered  bool   // list ordering
}

// ContentBlock is one structured unit of a parsed document, as supplied
// by the extract layer or any external parser.
type ContentBlock struct {
	Type     BlockType
	Content  string
	Metadata BlockMetadata
}

// Slide is one displayable unit with its timing and alignment data.
//
// Number is shared by all fragments of a single split word; only the
// first fragment has Continuation == false. Fixation is 1-based into
// Text. Block is empty for ordinary prose slides; when set, the slide
// represents a verbatim content block (or prose tagged with its
// originating block type) and Metadata holds the block details.
type Slide struct {
	Text         string
	Original     string
	Duration     float64 // ms
	PreDelay     float64 // ms, reserved, always 0 for now
	PostDelay    float64 // ms
	WPM          int     // WPM in effect when Duration was computed
	Fixation     int
	PixelOffset  float64
	Number       int
	WordCount    int
	Continuation bool
	Block        BlockType
	Metadata     BlockMetadata
}

// SlideShowData aggregates timing statistics over a slide sequence.
type SlideShowData struct {
	TotalDuration           float64 // ms, slide durations only
	TotalDurationWithPauses float64 // ms, including pre/post delays
	SlideCount              int
	MinDuration             float64 // ms
	MaxDuration             float64 // ms
	RealizedWPM             int
}

// wordUnit is the tokenizer's intermediate form: one display fragment
// with its source text and slide-number bookkeeping.
type wordUnit struct {
	text         string
	original     string
	number       int
	continuation bool
	hardBreak    bool // the whitespace after this unit contained a newline
}
