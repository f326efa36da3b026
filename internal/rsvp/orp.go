package rsvp

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// FixationIndex returns the 1-based optimal recognition point for the
// given display text: the character the eye should land on.
func FixationIndex(text string) int {
	switch n := utf8.RuneCountInString(text); {
	case n <= 1:
		return 1
	case n <= 4:
		return 2
	case n <= 9:
		return 3
	default:
		return 4
	}
}

// FontMetrics measures rendered text for a host that can. Width
// reports the advance width of a single rune in the given font and
// size, in the host's pixel-like unit.
type FontMetrics interface {
	Width(r rune, font string, size float64) float64
}

// PixelOffset maps (text, fixation, font, size) to the horizontal
// distance from the start of the text to the middle of the fixation
// character. With metrics available it sums exact rune widths; without,
// it approximates every character as 0.6 of the font size. Purely a
// presentation hint: non-negative and monotonic in the fixation index,
// nothing more.
func PixelOffset(text string, fixation int, font string, size float64, m FontMetrics) float64 {
	if fixation < 1 {
		fixation = 1
	}
	if m == nil {
		avg := size * 0.6
		return (float64(fixation) - 0.5) * avg
	}
	var offset float64
	i := 1
	for _, r := range text {
		w := m.Width(r, font, size)
		if i == fixation {
			return offset + w/2
		}
		offset += w
		i++
	}
	return offset
}

// RecalculatePixelOffsets recomputes every slide's alignment offset in
// place for a new font and size, without retokenizing.
func RecalculatePixelOffsets(slides []*Slide, font string, size float64, m FontMetrics) {
	for _, s := range slides {
		s.PixelOffset = PixelOffset(s.Text, s.Fixation, font, size, m)
	}
}

// TerminalMetrics measures text in terminal cells, honoring wide
// runes. CellWidth converts cells to the caller's unit; use 1 to get
// plain cell counts.
type TerminalMetrics struct {
	CellWidth float64
}

func (t TerminalMetrics) Width(r rune, _ string, _ float64) float64 {
	return float64(runewidth.RuneWidth(r)) * t.CellWidth
}
