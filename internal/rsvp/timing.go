package rsvp

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ApplyTiming assigns a duration to every slide in place, per the
// algorithm selected in settings. info is consulted only by the
// wordFrequency algorithm; with a nil info source that algorithm falls
// back to basic pacing. Every duration is clamped to
// settings.MinSlideDuration afterwards.
func ApplyTiming(slides []*Slide, settings ReaderSettings, info InfoSource) {
	switch {
	case settings.Algorithm == AlgorithmWordLength:
		applyWordLength(slides, settings)
	case settings.Algorithm == AlgorithmWordFrequency && info != nil:
		applyWordFrequency(slides, settings, info)
	default:
		applyBasic(slides, settings)
	}

	for _, s := range slides {
		if s.Duration < settings.MinSlideDuration {
			s.Duration = settings.MinSlideDuration
		}
		s.WPM = settings.WPM
	}
}

// applyBasic gives every word an equal share of the minute.
func applyBasic(slides []*Slide, settings ReaderSettings) {
	perWord := 60.0 / float64(settings.WPM) * 1000
	for _, s := range slides {
		s.Duration = perWord * float64(s.WordCount)
	}
}

// applyWordLength distributes a total time budget proportionally to
// each slide's text length. The budget is based on the slide count,
// not the word count, so with more than one word per slide the overall
// pace differs from the other algorithms. Keep it that way: tuned
// settings depend on the observed pacing.
func applyWordLength(slides []*Slide, settings ReaderSettings) {
	totalChars := 0
	for _, s := range slides {
		totalChars += utf8.RuneCountInString(s.Text)
	}
	if totalChars == 0 {
		applyBasic(slides, settings)
		return
	}
	totalTarget := float64(len(slides)) / float64(settings.WPM) * 60000
	perChar := totalTarget / float64(totalChars)
	for _, s := range slides {
		s.Duration = perChar * float64(utf8.RuneCountInString(s.Text))
	}
}

// applyWordFrequency paces by information content: the average bits of
// surprise across a slide's words interpolates linearly between the
// short duration at the source's low bound and the long duration at
// its high bound.
func applyWordFrequency(slides []*Slide, settings ReaderSettings, info InfoSource) {
	low, high := info.Bounds()
	if high <= low {
		applyBasic(slides, settings)
		return
	}
	a := (settings.WordFreqLongDuration - settings.WordFreqShortDuration) / (high - low)
	b := settings.WordFreqShortDuration - low*a

	for _, s := range slides {
		words := strings.Fields(s.Text)
		var sum float64
		var n int
		for _, w := range words {
			w = strings.TrimFunc(w, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})
			if w == "" {
				continue
			}
			sum += info.Information(w)
			n++
		}
		avg := high
		if n > 0 {
			avg = sum / float64(n)
		}
		s.Duration = (a*avg + b) * float64(s.WordCount)
	}
}

// AggregateStats computes summary statistics over a slide sequence.
// Pure; safe to call on a partially processed sequence, in which case
// the numbers cover only the slides given.
func AggregateStats(slides []*Slide, settings ReaderSettings) SlideShowData {
	stats := SlideShowData{SlideCount: len(slides)}

	var words int
	for i, s := range slides {
		stats.TotalDuration += s.Duration
		stats.TotalDurationWithPauses += s.Duration + s.PreDelay + s.PostDelay
		words += s.WordCount
		if i == 0 || s.Duration < stats.MinDuration {
			stats.MinDuration = s.Duration
		}
		if s.Duration > stats.MaxDuration {
			stats.MaxDuration = s.Duration
		}
	}

	if stats.TotalDuration > 0 {
		stats.RealizedWPM = int(math.Round(float64(words) / stats.TotalDuration * 60000))
	} else {
		stats.RealizedWPM = settings.WPM
	}
	return stats
}

// RescaleByWPM rescales every slide's duration in place for a live WPM
// change, multiplying by oldWPM/newWPM and retagging the stored WPM.
// The selected algorithm is not rerun, so the relative pacing shape is
// preserved rather than re-derived.
func RescaleByWPM(slides []*Slide, oldWPM, newWPM int) {
	if oldWPM <= 0 || newWPM <= 0 {
		return
	}
	factor := float64(oldWPM) / float64(newWPM)
	for _, s := range slides {
		s.Duration *= factor
		s.WPM = newWPM
	}
}
