package extract

import "github.com/metcalfc/skim/internal/rsvp"

// TOCEntry represents a single entry in a table of contents. Level is
// zero-based (h1 = 0). BlockIndex points into the block list returned
// by ExtractBlocks; combined with the block start indices from
// rsvp.ProcessContent it resolves to a slide position.
type TOCEntry struct {
	Title      string
	Level      int
	BlockIndex int
}

// TOCFromBlocks derives a table of contents from the heading blocks of
// an extracted document.
func TOCFromBlocks(blocks []rsvp.ContentBlock) []TOCEntry {
	var entries []TOCEntry
	for i, b := range blocks {
		if b.Type != rsvp.BlockHeading {
			continue
		}
		level := b.Metadata.Level - 1
		if level < 0 {
			level = 0
		}
		entries = append(entries, TOCEntry{
			Title:      b.Content,
			Level:      level,
			BlockIndex: i,
		})
	}
	return entries
}
