package rsvp

// Algorithm selects how slide durations are assigned.
type Algorithm string

const (
	// AlgorithmBasic gives every word the same share of a minute.
	AlgorithmBasic Algorithm = "basic"
	// AlgorithmWordLength distributes a slide-count time budget by text length.
	AlgorithmWordLength Algorithm = "wordLength"
	// AlgorithmWordFrequency paces by information content: rare words
	// stay on screen longer.
	AlgorithmWordFrequency Algorithm = "wordFrequency"
)

// InfoSource supplies per-word information content in bits for the
// wordFrequency algorithm. Higher means rarer. Implementations must be
// deterministic for a given word and resolve unknown words to the high
// bound returned by Bounds.
type InfoSource interface {
	Information(word string) float64
	Bounds() (low, high float64)
}

// ReaderSettings holds everything that influences tokenization and
// timing. Validity of the values (WPM > 0, WordsPerSlide in 1..5) is a
// caller precondition; only MinSlideDuration is enforced post hoc.
type ReaderSettings struct {
	WPM           int
	WordsPerSlide int
	Algorithm     Algorithm

	PauseAfterComma          bool
	PauseAfterCommaDelay     float64 // ms
	PauseAfterPeriod         bool
	PauseAfterPeriodDelay    float64 // ms
	PauseAfterParagraph      bool
	PauseAfterParagraphDelay float64 // ms

	// Duration bounds for the wordFrequency algorithm: a slide of
	// minimum-information words gets WordFreqShortDuration per word,
	// maximum-information words get WordFreqLongDuration per word.
	WordFreqShortDuration float64 // ms
	WordFreqLongDuration  float64 // ms

	// Font and size affect only the pixel alignment offset.
	Font     string
	FontSize float64

	// Metrics, when non-nil, provides exact text measurement for the
	// pixel offset. Nil falls back to a width approximation.
	Metrics FontMetrics

	MinSlideDuration float64 // ms
}

// DefaultSettings returns the settings a fresh reading session starts with.
func DefaultSettings() ReaderSettings {
	return ReaderSettings{
		WPM:                      300,
		WordsPerSlide:            1,
		Algorithm:                AlgorithmBasic,
		PauseAfterComma:          true,
		PauseAfterCommaDelay:     200,
		PauseAfterPeriod:         true,
		PauseAfterPeriodDelay:    400,
		PauseAfterParagraph:      true,
		PauseAfterParagraphDelay: 600,
		WordFreqShortDuration:    100,
		WordFreqLongDuration:     400,
		Font:                     "monospace",
		FontSize:                 48,
		MinSlideDuration:         40,
	}
}
