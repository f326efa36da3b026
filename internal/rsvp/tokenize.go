package rsvp

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// hyphenKeepMaxLen: a two-part hyphenated word up to this length
	// reads fine as a single slide and stays intact.
	hyphenKeepMaxLen = 12
	// longWordLen: anything longer gets fragmented for display.
	longWordLen = 17
	// fragmentMaxLen: target size of long-word fragments, before the
	// continuity hyphen is appended.
	fragmentMaxLen = 10
)

// Tokenize splits text into timed-display slides per the settings.
// Pure and deterministic: the same (text, settings) always yields the
// same sequence. Durations are not assigned here; run ApplyTiming on
// the result. Empty or letterless input yields an empty sequence.
func Tokenize(text string, settings ReaderSettings) []*Slide {
	slides, _ := tokenizeSlides(text, settings)
	if n := len(slides); n > 0 {
		slides[n-1].PostDelay = 0
	}
	return slides
}

// tokenizeSlides is Tokenize without the final-slide pause reset, for
// callers assembling a larger sequence out of partial runs (chunked
// processing, block adaptation) where the document end comes later.
// It also reports how many word numbers the text consumed, which can
// exceed the last slide's number when a group holds several words.
func tokenizeSlides(text string, settings ReaderSettings) ([]*Slide, int) {
	units := splitUnits(text)
	if settings.WordsPerSlide <= 1 {
		units = fragmentUnits(units)
	}
	units = filterUnits(units)
	words := numberUnits(units)
	return groupUnits(units, settings), words
}

// splitUnits decodes HTML entities, re-spaces glued punctuation and
// splits on whitespace. A unit followed by whitespace containing a
// newline is flagged so paragraph pauses survive the split.
func splitUnits(text string) []wordUnit {
	spaced := spacePunctuation(html.UnescapeString(text))
	runes := []rune(spaced)

	var units []wordUnit
	i := 0
	for i < len(runes) {
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			i++
		}
		if i >= len(runes) {
			break
		}
		start := i
		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			i++
		}
		word := string(runes[start:i])

		hard := false
		for j := i; j < len(runes) && unicode.IsSpace(runes[j]); j++ {
			if runes[j] == '\n' {
				hard = true
				break
			}
		}
		units = append(units, wordUnit{text: word, original: word, hardBreak: hard})
	}
	return units
}

// spacePunctuation inserts a space after sentence punctuation that is
// glued to the next word, so the punctuation stays attached to its own
// word when splitting.
func spacePunctuation(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i, r := range runes {
		b.WriteRune(r)
		if isPauseRune(r) && i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			b.WriteRune(' ')
		}
	}
	return b.String()
}

func isPauseRune(r rune) bool {
	switch r {
	case '.', ',', '?', '!', ':', ';':
		return true
	}
	return false
}

// fragmentUnits applies the hyphen and long-word rules. All fragments
// of one word share its original text; only the first is a fresh word,
// the rest are continuations.
func fragmentUnits(units []wordUnit) []wordUnit {
	out := make([]wordUnit, 0, len(units))
	for _, u := range units {
		frags := fragmentWord(u.text)
		if len(frags) == 1 {
			u.text = frags[0]
			out = append(out, u)
			continue
		}
		for i, f := range frags {
			fu := wordUnit{text: f, original: u.original, continuation: i > 0}
			if i == len(frags)-1 {
				fu.hardBreak = u.hardBreak
			}
			out = append(out, fu)
		}
	}
	return out
}

// fragmentWord returns the display fragments for a single word. A
// two-part hyphenation short enough to read at a glance stays whole;
// other hyphenations split at each hyphen; anything still over
// longWordLen is cut into fragmentMaxLen pieces.
func fragmentWord(word string) []string {
	parts := strings.Split(word, "-")

	var base []string
	switch {
	case len(parts) == 2 && utf8.RuneCountInString(word) <= hyphenKeepMaxLen:
		base = []string{word}
	case len(parts) > 1:
		for i, p := range parts {
			if i < len(parts)-1 {
				p += "-"
			}
			if p != "" {
				base = append(base, p)
			}
		}
	default:
		base = []string{word}
	}

	var out []string
	for _, b := range base {
		if utf8.RuneCountInString(b) > longWordLen {
			out = append(out, splitLongWord(b)...)
		} else {
			out = append(out, b)
		}
	}
	return out
}

// splitLongWord cuts a word into fragmentMaxLen-sized pieces, each
// non-final piece ending in a continuity hyphen.
func splitLongWord(word string) []string {
	runes := []rune(word)
	var pieces []string
	for len(runes) > fragmentMaxLen {
		cut := breakPoint(runes)
		pieces = append(pieces, string(runes[:cut])+"-")
		runes = runes[cut:]
	}
	return append(pieces, string(runes))
}

// breakPoint scans backward from the fragment cap toward the midpoint
// of the remaining word, cutting right after a vowel that precedes a
// consonant; with no such point it cuts at the cap.
func breakPoint(runes []rune) int {
	mid := len(runes) / 2
	for i := fragmentMaxLen; i > mid && i > 1; i-- {
		if isVowel(runes[i-1]) && !isVowel(runes[i]) && unicode.IsLetter(runes[i]) {
			return i
		}
	}
	return fragmentMaxLen
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

// filterUnits drops units with no letters or digits: stray punctuation,
// dashes, decoration.
func filterUnits(units []wordUnit) []wordUnit {
	out := units[:0]
	for _, u := range units {
		if strings.ContainsFunc(u.text, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) {
			out = append(out, u)
		}
	}
	return out
}

// numberUnits assigns monotonically non-decreasing word numbers and
// returns the last number used; continuation fragments reuse their
// word's number.
func numberUnits(units []wordUnit) int {
	n := 0
	for i := range units {
		if !units[i].continuation {
			n++
		}
		units[i].number = n
	}
	return n
}

// groupUnits packs units into slides of up to WordsPerSlide words,
// closing a group early at clause punctuation or a paragraph break.
func groupUnits(units []wordUnit, settings ReaderSettings) []*Slide {
	size := settings.WordsPerSlide
	if size < 1 {
		size = 1
	}

	var slides []*Slide
	i := 0
	for i < len(units) {
		var group []wordUnit
		for i < len(units) && len(group) < size {
			u := units[i]
			group = append(group, u)
			i++
			if endsWithPause(u.text) || u.hardBreak {
				break
			}
		}
		slides = append(slides, buildSlide(group, settings))
	}
	return slides
}

func endsWithPause(text string) bool {
	r, _ := utf8.DecodeLastRuneInString(text)
	return isPauseRune(r)
}

func buildSlide(group []wordUnit, settings ReaderSettings) *Slide {
	texts := make([]string, len(group))
	origs := make([]string, len(group))
	hard := false
	for i, u := range group {
		texts[i] = u.text
		origs[i] = u.original
		hard = hard || u.hardBreak
	}

	text := strings.TrimSpace(strings.Join(texts, " "))
	fix := FixationIndex(text)
	return &Slide{
		Text:         text,
		Original:     strings.Join(origs, " "),
		Fixation:     fix,
		PixelOffset:  PixelOffset(text, fix, settings.Font, settings.FontSize, settings.Metrics),
		Number:       group[0].number,
		WordCount:    len(group),
		Continuation: group[0].continuation,
		PostDelay:    postDelay(text, hard, settings),
	}
}

// postDelay derives the pause after a slide from its trailing
// punctuation and any paragraph break it spans. Sentence punctuation
// outranks clause punctuation; a paragraph break raises the pause to
// at least the paragraph delay.
func postDelay(text string, hard bool, st ReaderSettings) float64 {
	var d float64
	if text != "" {
		last, _ := utf8.DecodeLastRuneInString(text)
		switch last {
		case ',', ';', ':':
			if st.PauseAfterComma {
				d = st.PauseAfterCommaDelay
			}
		case '.', '?', '!':
			if st.PauseAfterPeriod {
				d = st.PauseAfterPeriodDelay
			}
		}
	}
	if hard && st.PauseAfterParagraph && st.PauseAfterParagraphDelay > d {
		d = st.PauseAfterParagraphDelay
	}
	return d
}
