package rsvp

import "strings"

// Block slide durations, in ms. Code and tables get reading time
// proportional to their line count within fixed bounds; headings and
// images get flat durations.
const (
	blockLineDuration    = 500
	blockMinDuration     = 3000
	blockMaxDuration     = 15000
	headingSlideDuration = 1500
	imageSlideDuration   = 3000
)

// BlocksToSlides converts an ordered list of content blocks into one
// slide sequence. Prose-like blocks (text, blockquote, list) are
// tokenized and timed normally, with each slide tagged by its
// originating block type. Code, table, heading and image blocks become
// exactly one verbatim slide each; hr emits nothing.
//
// The returned starts slice has one entry per input block: the index
// of the block's first slide in the output (or the position it would
// occupy, for blocks that emit none).
func BlocksToSlides(blocks []ContentBlock, settings ReaderSettings, info InfoSource) (slides []*Slide, starts []int) {
	starts = make([]int, 0, len(blocks))
	nextNumber := 1

	for _, b := range blocks {
		starts = append(starts, len(slides))

		switch b.Type {
		case BlockText, BlockBlockquote, BlockList:
			run, words := tokenizeSlides(b.Content, settings)
			ApplyTiming(run, settings, info)
			for _, s := range run {
				s.Number += nextNumber - 1
				s.Block = b.Type
				s.Metadata = b.Metadata
			}
			nextNumber += words
			slides = append(slides, run...)

		case BlockCode, BlockTable:
			lines := strings.Count(b.Content, "\n") + 1
			d := float64(lines * blockLineDuration)
			if d < blockMinDuration {
				d = blockMinDuration
			}
			if d > blockMaxDuration {
				d = blockMaxDuration
			}
			slides = append(slides, blockSlide(b, d, settings, &nextNumber))

		case BlockHeading:
			slides = append(slides, blockSlide(b, headingSlideDuration, settings, &nextNumber))

		case BlockImage:
			slides = append(slides, blockSlide(b, imageSlideDuration, settings, &nextNumber))

		case BlockHR:
			// No slide; a rule is pure decoration.
		}
	}

	if n := len(slides); n > 0 {
		slides[n-1].PostDelay = 0
	}
	return slides, starts
}

// blockSlide builds the single verbatim slide for a non-prose block.
// Verbatim content is not RSVP text, so the fixation point is pinned
// to the first character.
func blockSlide(b ContentBlock, duration float64, settings ReaderSettings, nextNumber *int) *Slide {
	s := &Slide{
		Text:      b.Content,
		Original:  b.Content,
		Duration:  duration,
		WPM:       settings.WPM,
		Fixation:  1,
		Number:    *nextNumber,
		WordCount: len(strings.Fields(b.Content)),
		Block:     b.Type,
		Metadata:  b.Metadata,
	}
	if s.Duration < settings.MinSlideDuration {
		s.Duration = settings.MinSlideDuration
	}
	*nextNumber++
	return s
}
