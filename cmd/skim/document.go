package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/metcalfc/skim/internal/extract"
	"github.com/metcalfc/skim/internal/rsvp"
	"github.com/metcalfc/skim/internal/session"
	"github.com/metcalfc/skim/internal/state"
	"github.com/metcalfc/skim/internal/wordfreq"
)

// loadedDoc is one document ready for playback.
type loadedDoc struct {
	sess *session.Session
	hash string
}

// loadDocument builds a session from a file argument or stdin.
// Structured formats go through block extraction; plain text goes
// through the chunked processor so large files start instantly.
func loadDocument(args []string, settings rsvp.ReaderSettings) (*loadedDoc, error) {
	info := wordfreq.Default()

	if len(args) == 0 {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) != 0 {
			return nil, fmt.Errorf("no input provided: give a file or pipe text to stdin")
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		text := string(data)
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("no text to read")
		}
		return &loadedDoc{sess: session.New(text, settings, info)}, nil
	}

	filename := args[0]
	doc := &loadedDoc{}
	if h, err := state.ComputeHash(filename); err == nil {
		doc.hash = h
	}

	format := extract.ForFile(filename)
	if be, ok := format.(extract.BlockExtractor); ok {
		blocks, err := be.ExtractBlocks(filename)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", filename, err)
		}
		slog.Debug("extracted blocks", "file", filename, "blocks", len(blocks))
		doc.sess, _ = session.NewFromBlocks(blocks, settings, info)
		return doc, nil
	}

	text, err := extract.ExtractText(filename)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", filename, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text to read in %s", filename)
	}
	doc.sess = session.New(text, settings, info)
	return doc, nil
}
