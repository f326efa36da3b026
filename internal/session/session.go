// Package session ties one loaded document to one chunked processor
// and tracks the reading position. A session is owned by a single
// host; loading a new document means discarding the session and
// building a fresh one, never rebuilding in place.
package session

import (
	"unicode/utf8"

	"github.com/metcalfc/skim/internal/rsvp"
)

// Session is the explicit per-document reading context. All operations
// are synchronous; background completion happens only when the host
// chooses to call Drain between its other work.
type Session struct {
	proc  *rsvp.ChunkedProcessor
	wpm   int
	index int
}

// New builds a session over text with the given settings. Construction
// cost is bounded: large documents process only their first chunk.
func New(text string, settings rsvp.ReaderSettings, info rsvp.InfoSource) *Session {
	return &Session{
		proc: rsvp.NewChunkedProcessor(text, settings, info),
		wpm:  settings.WPM,
	}
}

// NewFromBlocks builds a fully processed session over structured
// content blocks. Block documents arrive pre-parsed and bounded, so
// they skip chunking.
func NewFromBlocks(blocks []rsvp.ContentBlock, settings rsvp.ReaderSettings, info rsvp.InfoSource) (*Session, []int) {
	slides, starts := rsvp.BlocksToSlides(blocks, settings, info)
	s := &Session{
		proc: rsvp.NewProcessedProcessor(slides, settings),
		wpm:  settings.WPM,
	}
	return s, starts
}

// Current returns the slide at the reading position, nil when the
// document is empty.
func (s *Session) Current() *rsvp.Slide {
	return s.proc.GetSlide(s.index)
}

// Index returns the current slide index.
func (s *Session) Index() int {
	return s.index
}

// Advance moves to the next slide, processing ahead as needed.
// Returns false at the end of the document.
func (s *Session) Advance() bool {
	if s.proc.GetSlide(s.index+1) == nil {
		return false
	}
	s.index++
	return true
}

// Seek jumps to the given slide index, clamped to the document.
func (s *Session) Seek(index int) {
	if index < 0 {
		index = 0
	}
	if s.proc.GetSlide(index) == nil {
		s.proc.ProcessAll()
		if n := s.proc.ProcessedSlideCount(); index >= n {
			index = n - 1
		}
		if index < 0 {
			index = 0
		}
	}
	s.index = index
}

// SeekEnd drains the processor and jumps to the final slide.
func (s *Session) SeekEnd() {
	s.proc.ProcessAll()
	if n := s.proc.ProcessedSlideCount(); n > 0 {
		s.index = n - 1
	}
}

// JumpToPrevSentence moves to the start of the previous sentence.
func (s *Session) JumpToPrevSentence() {
	starts := sentenceStarts(s.proc.Slides())
	for i := len(starts) - 1; i >= 0; i-- {
		if starts[i] < s.index {
			s.index = starts[i]
			return
		}
	}
	s.index = 0
}

// JumpToNextSentence moves to the start of the next sentence among the
// slides processed so far.
func (s *Session) JumpToNextSentence() {
	slides := s.proc.Slides()
	for _, start := range sentenceStarts(slides) {
		if start > s.index {
			s.index = start
			return
		}
	}
	if len(slides) > 0 {
		s.index = len(slides) - 1
	}
}

// sentenceStarts returns the indices of slides that begin sentences.
func sentenceStarts(slides []*rsvp.Slide) []int {
	starts := []int{0}
	for i, sl := range slides {
		if i+1 < len(slides) && endsSentence(sl.Text) {
			starts = append(starts, i+1)
		}
	}
	return starts
}

func endsSentence(text string) bool {
	switch r, _ := utf8.DecodeLastRuneInString(text); r {
	case '.', '!', '?':
		return true
	}
	return false
}

// Drain processes one more chunk and reports whether any work
// remains. The host decides when to call this; typically between
// playback ticks so slide advancement is never starved.
func (s *Session) Drain() bool {
	return s.proc.ProcessMore()
}

// Done reports whether the whole document has been processed.
func (s *Session) Done() bool {
	return s.proc.FullyProcessed()
}

// Progress returns the 1-based position and the total slide count,
// estimated until the document is fully processed.
func (s *Session) Progress() (current, total int) {
	return s.index + 1, s.proc.TotalEstimatedSlides()
}

// Stats aggregates over the slides known so far.
func (s *Session) Stats() rsvp.SlideShowData {
	return s.proc.Stats()
}

// WPM returns the speed currently in effect.
func (s *Session) WPM() int {
	return s.wpm
}

// SetWPM applies a live speed change by rescaling durations in place;
// the pacing shape of the selected algorithm is preserved.
func (s *Session) SetWPM(wpm int) {
	if wpm <= 0 {
		return
	}
	s.proc.SetWPM(wpm)
	s.wpm = wpm
}

// SetFont recomputes pixel offsets in place for a font change.
func (s *Session) SetFont(font string, size float64, m rsvp.FontMetrics) {
	s.proc.SetFont(font, size, m)
}
