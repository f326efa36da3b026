// Package extract turns source files into raw text or ordered content
// blocks for the rsvp pipeline. Formats register themselves at init;
// unknown extensions fall back to a plain-text read.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/metcalfc/skim/internal/rsvp"
)

// Format defines a file format reader for extracting text.
type Format interface {
	Name() string
	Extensions() []string
	Extract(filename string) (string, error)
}

// BlockExtractor is an optional interface for formats that can produce
// structured content blocks instead of flat text.
type BlockExtractor interface {
	ExtractBlocks(filename string) ([]rsvp.ContentBlock, error)
}

// TOCProvider is an optional interface for formats that support TOC
// extraction.
type TOCProvider interface {
	TOC(filename string) ([]TOCEntry, error)
}

var registry []Format

// Register adds a format reader to the registry.
func Register(f Format) {
	registry = append(registry, f)
}

// ForFile returns the registered format matching the file's extension,
// or nil when none does.
func ForFile(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, f := range registry {
		for _, e := range f.Extensions() {
			if ext == e {
				return f
			}
		}
	}
	return nil
}

// ExtractText extracts text from a file, using a registered format or
// a plain read fallback.
func ExtractText(filename string) (string, error) {
	if f := ForFile(filename); f != nil {
		return f.Extract(filename)
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	return string(data), nil
}

// ExtractBlocks extracts structured content blocks from a file. A
// format without block support, and the plain-text fallback, yield a
// single text block.
func ExtractBlocks(filename string) ([]rsvp.ContentBlock, error) {
	if f := ForFile(filename); f != nil {
		if be, ok := f.(BlockExtractor); ok {
			return be.ExtractBlocks(filename)
		}
	}
	text, err := ExtractText(filename)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return []rsvp.ContentBlock{{Type: rsvp.BlockText, Content: text}}, nil
}

// SupportedFormats returns registered format names with their extensions.
func SupportedFormats() []string {
	var out []string
	for _, f := range registry {
		out = append(out, f.Name()+" ("+strings.Join(f.Extensions(), ", ")+")")
	}
	return out
}
