package rsvp

import (
	"math"
	"unicode"
)

const (
	// DefaultChunkChars is the character budget of one text chunk.
	DefaultChunkChars = 10000
	// slideReadBuffer is how many slides past a requested range a read
	// over-processes, to amortize sequential access.
	slideReadBuffer = 500
	// eagerChunkLimit: inputs partitioning into this many chunks or
	// fewer are processed whole at construction.
	eagerChunkLimit = 2
)

// textChunk is one bounded substring of the document. Chunks move from
// unprocessed to processed exactly once and are never rebuilt.
type textChunk struct {
	start, end int // rune offsets, half-open
	raw        string
	processed  bool
	slideStart int // global index of this chunk's first slide
	slides     []*Slide
}

// ChunkedProcessor produces the same output as the direct
// Tokenize+ApplyTiming pipeline for arbitrarily large text, without
// processing everything up front. Chunks are processed strictly in
// document order, one per call; all work is synchronous and the
// processor is owned by a single session at a time.
//
// A word straddling a chunk boundary is tokenized as two independent
// units in two chunks. That is an accepted approximation of the
// chunking contract, not a fault.
type ChunkedProcessor struct {
	settings   ReaderSettings
	info       InfoSource
	chunks     []*textChunk
	slides     []*Slide // ordered concatenation of processed chunks
	processed  int      // chunks[:processed] are done
	nextNumber int      // next global word number
	totalChars int
	estimate   int
}

// NewChunkedProcessor partitions text and processes just enough for
// fast initial readiness: everything if the input is small, only the
// first chunk otherwise.
func NewChunkedProcessor(text string, settings ReaderSettings, info InfoSource) *ChunkedProcessor {
	return newChunkedProcessor(text, settings, info, DefaultChunkChars)
}

func newChunkedProcessor(text string, settings ReaderSettings, info InfoSource, budget int) *ChunkedProcessor {
	p := &ChunkedProcessor{
		settings:   settings,
		info:       info,
		nextNumber: 1,
	}
	p.chunks = partitionText(text, budget)
	for _, c := range p.chunks {
		p.totalChars += c.end - c.start
	}

	if len(p.chunks) <= eagerChunkLimit {
		p.ProcessAll()
		return p
	}
	p.processNext()
	p.refreshEstimate()
	return p
}

// NewProcessedProcessor wraps an already-built slide sequence in a
// fully processed processor, for documents that arrive pre-tokenized,
// such as structured content blocks.
func NewProcessedProcessor(slides []*Slide, settings ReaderSettings) *ChunkedProcessor {
	return &ChunkedProcessor{
		settings: settings,
		slides:   slides,
		estimate: len(slides),
	}
}

// partitionText cuts text into contiguous chunks of up to budget
// runes, pulling each boundary back to just after the nearest
// preceding whitespace. A window with no whitespace at all is cut hard
// at the budget.
func partitionText(text string, budget int) []*textChunk {
	runes := []rune(text)
	var chunks []*textChunk
	start := 0
	for start < len(runes) {
		end := start + budget
		if end >= len(runes) {
			end = len(runes)
		} else {
			cut := end
			for cut > start && !unicode.IsSpace(runes[cut-1]) {
				cut--
			}
			if cut > start {
				end = cut
			}
		}
		chunks = append(chunks, &textChunk{
			start: start,
			end:   end,
			raw:   string(runes[start:end]),
		})
		start = end
	}
	return chunks
}

// processNext runs the pipeline on the next unprocessed chunk in
// document order, renumbering its slides to continue the global count.
// Returns false once no chunk remains.
func (p *ChunkedProcessor) processNext() bool {
	if p.processed >= len(p.chunks) {
		return false
	}
	c := p.chunks[p.processed]

	slides, words := tokenizeSlides(c.raw, p.settings)
	ApplyTiming(slides, p.settings, p.info)

	// Advance by the chunk's word count, not its last slide number: a
	// multi-word trailing group holds words past that number.
	base := p.nextNumber - 1
	for _, s := range slides {
		s.Number += base
	}
	p.nextNumber += words

	c.slides = slides
	c.slideStart = len(p.slides)
	c.processed = true
	p.processed++
	p.slides = append(p.slides, slides...)

	// The sequence is complete: now the final-slide pause reset applies.
	if p.processed == len(p.chunks) {
		if n := len(p.slides); n > 0 {
			p.slides[n-1].PostDelay = 0
		}
	}
	return true
}

// refreshEstimate extrapolates the processed chunks' slides-per-rune
// density across the whole document. Exact once every chunk is done;
// never below the processed slide count while refining.
func (p *ChunkedProcessor) refreshEstimate() {
	if p.processed >= len(p.chunks) {
		p.estimate = len(p.slides)
		return
	}
	chars := 0
	for _, c := range p.chunks[:p.processed] {
		chars += c.end - c.start
	}
	est := len(p.slides)
	if chars > 0 {
		density := float64(len(p.slides)) / float64(chars)
		est = int(math.Round(density * float64(p.totalChars)))
	}
	if est < len(p.slides) {
		est = len(p.slides)
	}
	p.estimate = est
}

// GetSlides returns the slides in [start, start+count), processing
// chunks as needed to cover the range plus a read-ahead buffer. Out of
// range reads return what exists, possibly nothing.
func (p *ChunkedProcessor) GetSlides(start, count int) []*Slide {
	if count <= 0 {
		return nil
	}
	// Chunks are strictly ordered, so draining until the flat array
	// covers the target index processes exactly the chunks whose
	// slides can overlap the range.
	target := start + count + slideReadBuffer
	for len(p.slides) < target && p.processNext() {
	}
	p.refreshEstimate()

	if start < 0 {
		start = 0
	}
	if start >= len(p.slides) {
		return nil
	}
	end := start + count
	if end > len(p.slides) {
		end = len(p.slides)
	}
	return p.slides[start:end]
}

// GetSlide returns the slide at index, or nil when the index is out of
// range even after full processing. Not an error.
func (p *ChunkedProcessor) GetSlide(index int) *Slide {
	got := p.GetSlides(index, 1)
	if len(got) == 0 {
		return nil
	}
	return got[0]
}

// Stats aggregates over currently known slides only; it reflects the
// whole document only once fully processed.
func (p *ChunkedProcessor) Stats() SlideShowData {
	return AggregateStats(p.slides, p.settings)
}

// ProcessMore processes exactly the next unprocessed chunk and reports
// whether any chunk remains afterwards. Once exhausted it keeps
// returning false.
func (p *ChunkedProcessor) ProcessMore() bool {
	if !p.processNext() {
		return false
	}
	p.refreshEstimate()
	return p.processed < len(p.chunks)
}

// ProcessAll synchronously drains every remaining chunk.
func (p *ChunkedProcessor) ProcessAll() {
	for p.processNext() {
	}
	p.refreshEstimate()
}

// TotalEstimatedSlides is exact once fully processed, otherwise a
// refinable estimate that never falls below the processed count.
func (p *ChunkedProcessor) TotalEstimatedSlides() int {
	return p.estimate
}

// ProcessedSlideCount returns how many slides exist so far.
func (p *ChunkedProcessor) ProcessedSlideCount() int {
	return len(p.slides)
}

// FullyProcessed reports whether every chunk is done.
func (p *ChunkedProcessor) FullyProcessed() bool {
	return p.processed >= len(p.chunks)
}

// ChunkCount returns the fixed number of chunks for this document.
func (p *ChunkedProcessor) ChunkCount() int {
	return len(p.chunks)
}

// Slides exposes the flat processed slide array. The caller may mutate
// slide durations and offsets in place (WPM rescale, font change) but
// must not reorder or replace entries.
func (p *ChunkedProcessor) Slides() []*Slide {
	return p.slides
}

// SetWPM applies a live WPM change: processed slides are rescaled in
// place and chunks processed from here on use the new value.
func (p *ChunkedProcessor) SetWPM(wpm int) {
	if wpm <= 0 || wpm == p.settings.WPM {
		return
	}
	RescaleByWPM(p.slides, p.settings.WPM, wpm)
	p.settings.WPM = wpm
}

// SetFont recomputes pixel offsets in place and updates the font used
// for chunks processed from here on.
func (p *ChunkedProcessor) SetFont(font string, size float64, m FontMetrics) {
	p.settings.Font = font
	p.settings.FontSize = size
	p.settings.Metrics = m
	RecalculatePixelOffsets(p.slides, font, size, m)
}
