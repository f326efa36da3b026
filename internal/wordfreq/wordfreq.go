// Package wordfreq supplies Shannon information content for English
// words, backed by an embedded frequency table. Rarer words carry more
// bits; the wordFrequency pacing algorithm uses this to keep rare
// words on screen longer.
package wordfreq

import (
	"bufio"
	_ "embed"
	"math"
	"strconv"
	"strings"
	"sync"
)

// Information bounds in bits. InfoLow is roughly "the" (about one word
// in 25); InfoHigh is a one-in-two-million word, which is also the
// estimate every unknown word resolves to.
const (
	InfoLow  = 5.0
	InfoHigh = 21.0
)

// corpusTokens is the token count the embedded counts are normalized
// against (counts per billion).
const corpusTokens = 1e9

//go:embed frequencies.txt
var rawTable string

// Table maps lowercase words to their information content in bits.
// Lookups are deterministic and read-only after construction.
type Table struct {
	bits map[string]float64
}

var (
	once   sync.Once
	shared *Table
)

// Default returns the process-wide table parsed from the embedded
// frequency list.
func Default() *Table {
	once.Do(func() {
		shared = parse(rawTable)
	})
	return shared
}

func parse(raw string) *Table {
	t := &Table{bits: make(map[string]float64)}
	sc := bufio.NewScanner(strings.NewReader(raw))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		count, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || count <= 0 {
			continue
		}
		bits := math.Log2(corpusTokens / count)
		if bits < InfoLow {
			bits = InfoLow
		}
		if bits > InfoHigh {
			bits = InfoHigh
		}
		t.bits[strings.ToLower(fields[0])] = bits
	}
	return t
}

// Information returns the word's information content in bits,
// case-insensitive. Unrecognized words resolve to InfoHigh.
func (t *Table) Information(word string) float64 {
	if b, ok := t.bits[strings.ToLower(word)]; ok {
		return b
	}
	return InfoHigh
}

// Bounds returns the documented low and high information bounds.
func (t *Table) Bounds() (low, high float64) {
	return InfoLow, InfoHigh
}

// Len reports how many words the table covers.
func (t *Table) Len() int {
	return len(t.bits)
}
