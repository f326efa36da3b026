package rsvp

import (
	"strings"
	"testing"
)

func TestTokenizeBasicWords(t *testing.T) {
	slides := Tokenize("the quick brown fox jumps", DefaultSettings())

	want := []string{"the", "quick", "brown", "fox", "jumps"}
	if len(slides) != len(want) {
		t.Fatalf("expected %d slides, got %d", len(want), len(slides))
	}
	for i, s := range slides {
		if s.Text != want[i] {
			t.Errorf("slide %d: expected %q, got %q", i, want[i], s.Text)
		}
		if s.Number != i+1 {
			t.Errorf("slide %d: expected number %d, got %d", i, i+1, s.Number)
		}
		if s.WordCount != 1 {
			t.Errorf("slide %d: expected word count 1, got %d", i, s.WordCount)
		}
	}
	if last := slides[len(slides)-1]; last.PostDelay != 0 {
		t.Errorf("final slide should have no post delay, got %v", last.PostDelay)
	}
}

func TestTokenizeEmptyAndLetterless(t *testing.T) {
	for _, input := range []string{"", "   \n\t ", "--- ... !!!", "& *"} {
		if slides := Tokenize(input, DefaultSettings()); len(slides) != 0 {
			t.Errorf("Tokenize(%q): expected no slides, got %d", input, len(slides))
		}
	}
}

func TestTokenizeHTMLEntities(t *testing.T) {
	slides := Tokenize("fish &amp; chips", DefaultSettings())
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].Text != "fish" || slides[1].Text != "chips" {
		t.Errorf("expected [fish chips], got [%s %s]", slides[0].Text, slides[1].Text)
	}
	if slides[1].Number != 2 {
		t.Errorf("numbering should skip dropped units, got %d", slides[1].Number)
	}
}

func TestTokenizeGluedPunctuation(t *testing.T) {
	slides := Tokenize("end.Next", DefaultSettings())
	if len(slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(slides))
	}
	if slides[0].Text != "end." || slides[1].Text != "Next" {
		t.Errorf("expected [end. Next], got [%s %s]", slides[0].Text, slides[1].Text)
	}
}

func TestTokenizeHyphenation(t *testing.T) {
	t.Run("short two-part word stays whole", func(t *testing.T) {
		slides := Tokenize("co-founder", DefaultSettings())
		if len(slides) != 1 {
			t.Fatalf("expected 1 slide, got %d", len(slides))
		}
		if slides[0].Text != "co-founder" {
			t.Errorf("expected intact word, got %q", slides[0].Text)
		}
		if slides[0].Continuation {
			t.Error("single slide must not be a continuation")
		}
	})

	t.Run("three-part word splits at hyphens", func(t *testing.T) {
		slides := Tokenize("well-known-author", DefaultSettings())
		want := []string{"well-", "known-", "author"}
		if len(slides) != len(want) {
			t.Fatalf("expected %d slides, got %d", len(want), len(slides))
		}
		for i, s := range slides {
			if s.Text != want[i] {
				t.Errorf("fragment %d: expected %q, got %q", i, want[i], s.Text)
			}
			if s.Number != 1 {
				t.Errorf("fragment %d: expected shared number 1, got %d", i, s.Number)
			}
			if s.Original != "well-known-author" {
				t.Errorf("fragment %d: expected full original, got %q", i, s.Original)
			}
			if got, want := s.Continuation, i > 0; got != want {
				t.Errorf("fragment %d: continuation = %v, want %v", i, got, want)
			}
		}
	})
}

func TestTokenizeLongWordFragmentation(t *testing.T) {
	slides := Tokenize("abcdefghijklmnopqrstuvwxy", DefaultSettings())
	want := []string{"abcdefghij-", "klmnopqrst-", "uvwxy"}
	if len(slides) != len(want) {
		t.Fatalf("expected %d fragments, got %d", len(want), len(slides))
	}
	for i, s := range slides {
		if s.Text != want[i] {
			t.Errorf("fragment %d: expected %q, got %q", i, want[i], s.Text)
		}
		if s.Number != 1 {
			t.Errorf("fragment %d: expected shared number, got %d", i, s.Number)
		}
	}
	for i, s := range slides[:len(slides)-1] {
		if !strings.HasSuffix(s.Text, "-") {
			t.Errorf("non-final fragment %d missing continuity hyphen: %q", i, s.Text)
		}
	}
	if strings.HasSuffix(slides[len(slides)-1].Text, "-") {
		t.Error("final fragment should not carry a continuity hyphen")
	}
}

func TestBreakPointPrefersVowelBoundary(t *testing.T) {
	got := fragmentWord("understandabilities")
	want := []string{"understand-", "abilities"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTokenizePostDelays(t *testing.T) {
	st := DefaultSettings()

	tests := []struct {
		name  string
		input string
		want  []float64
	}{
		{"comma", "Hello, world", []float64{200, 0}},
		{"period mid-text", "Stop. Go on", []float64{400, 0, 0}},
		{"paragraph break", "one\n\ntwo", []float64{600, 0}},
		{"period at paragraph break takes the larger pause", "End.\nNext", []float64{600, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slides := Tokenize(tt.input, st)
			if len(slides) != len(tt.want) {
				t.Fatalf("expected %d slides, got %d", len(tt.want), len(slides))
			}
			for i, s := range slides {
				if s.PostDelay != tt.want[i] {
					t.Errorf("slide %d (%q): post delay %v, want %v", i, s.Text, s.PostDelay, tt.want[i])
				}
			}
		})
	}
}

func TestTokenizePausesDisabled(t *testing.T) {
	st := DefaultSettings()
	st.PauseAfterComma = false
	st.PauseAfterPeriod = false
	st.PauseAfterParagraph = false

	slides := Tokenize("One, two.\nThree four", st)
	for i, s := range slides {
		if s.PostDelay != 0 {
			t.Errorf("slide %d (%q): expected no pause, got %v", i, s.Text, s.PostDelay)
		}
	}
}

func TestTokenizeGrouping(t *testing.T) {
	st := DefaultSettings()
	st.WordsPerSlide = 3

	t.Run("clause punctuation closes a group early", func(t *testing.T) {
		slides := Tokenize("a1 b2, c3 d4 e5 f6", st)
		want := []struct {
			text  string
			words int
		}{
			{"a1 b2,", 2},
			{"c3 d4 e5", 3},
			{"f6", 1},
		}
		if len(slides) != len(want) {
			t.Fatalf("expected %d slides, got %d", len(want), len(slides))
		}
		for i, s := range slides {
			if s.Text != want[i].text {
				t.Errorf("slide %d: expected %q, got %q", i, want[i].text, s.Text)
			}
			if s.WordCount != want[i].words {
				t.Errorf("slide %d: word count %d, want %d", i, s.WordCount, want[i].words)
			}
		}
	})

	t.Run("paragraph break closes a group", func(t *testing.T) {
		slides := Tokenize("x1 y2\nz3 w4", st)
		if len(slides) != 2 {
			t.Fatalf("expected 2 slides, got %d", len(slides))
		}
		if slides[0].Text != "x1 y2" || slides[1].Text != "z3 w4" {
			t.Errorf("expected [x1 y2][z3 w4], got [%s][%s]", slides[0].Text, slides[1].Text)
		}
		if slides[0].PostDelay != st.PauseAfterParagraphDelay {
			t.Errorf("first slide should carry the paragraph pause, got %v", slides[0].PostDelay)
		}
	})

	t.Run("no fragmentation above one word per slide", func(t *testing.T) {
		slides := Tokenize("well-known-author", st)
		if len(slides) != 1 || slides[0].Text != "well-known-author" {
			t.Fatalf("expected the hyphenated word intact, got %v", slides)
		}
	})
}

func BenchmarkTokenize(b *testing.B) {
	st := DefaultSettings()
	text := strings.Repeat("the quick brown fox jumps over the lazy dog, again and again. ", 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Tokenize(text, st)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	st := DefaultSettings()
	text := "Same input, same slides. Every time.\nNo exceptions."

	a := Tokenize(text, st)
	b := Tokenize(text, st)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if *a[i] != *b[i] {
			t.Errorf("slide %d differs between runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}
