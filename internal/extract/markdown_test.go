package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/metcalfc/skim/internal/rsvp"
)

const sampleMarkdown = "# Title\n\n" +
	"Some intro paragraph.\n\n" +
	"## Section\n\n" +
	"- one\n- two\n\n" +
	"1. first\n2. second\n\n" +
	"> quoted text\n\n" +
	"```go\nfunc main() {}\n```\n\n" +
	"| a | b |\n|---|---|\n| 1 | 2 |\n\n" +
	"![alt text](img.png)\n\n" +
	"---\n\n" +
	"Final words.\n"

func TestParseMarkdown(t *testing.T) {
	blocks := ParseMarkdown([]byte(sampleMarkdown))

	want := []struct {
		typ     rsvp.BlockType
		content string
	}{
		{rsvp.BlockHeading, "Title"},
		{rsvp.BlockText, "Some intro paragraph."},
		{rsvp.BlockHeading, "Section"},
		{rsvp.BlockList, "- one\n- two"},
		{rsvp.BlockList, "1. first\n2. second"},
		{rsvp.BlockBlockquote, "quoted text"},
		{rsvp.BlockCode, "func main() {}"},
		{rsvp.BlockTable, "a | b\n1 | 2"},
		{rsvp.BlockImage, "alt text"},
		{rsvp.BlockHR, ""},
		{rsvp.BlockText, "Final words."},
	}
	if len(blocks) != len(want) {
		for i, b := range blocks {
			t.Logf("block %d: %s %q", i, b.Type, b.Content)
		}
		t.Fatalf("expected %d blocks, got %d", len(want), len(blocks))
	}
	for i, w := range want {
		if blocks[i].Type != w.typ {
			t.Errorf("block %d: type %s, want %s", i, blocks[i].Type, w.typ)
		}
		if blocks[i].Content != w.content {
			t.Errorf("block %d: content %q, want %q", i, blocks[i].Content, w.content)
		}
	}
}

func TestParseMarkdownMetadata(t *testing.T) {
	blocks := ParseMarkdown([]byte(sampleMarkdown))
	if len(blocks) < 9 {
		t.Fatalf("unexpected block count %d", len(blocks))
	}

	if blocks[0].Metadata.Level != 1 {
		t.Errorf("h1 level %d, want 1", blocks[0].Metadata.Level)
	}
	if blocks[2].Metadata.Level != 2 {
		t.Errorf("h2 level %d, want 2", blocks[2].Metadata.Level)
	}
	if blocks[3].Metadata.Ordered {
		t.Error("bullet list should not be ordered")
	}
	if !blocks[4].Metadata.Ordered {
		t.Error("numbered list should be ordered")
	}
	if blocks[6].Metadata.Language != "go" {
		t.Errorf("code language %q, want go", blocks[6].Metadata.Language)
	}
	if blocks[8].Metadata.Source != "img.png" || blocks[8].Metadata.Alt != "alt text" {
		t.Errorf("image metadata %+v", blocks[8].Metadata)
	}
}

func TestParseMarkdownMultilineCode(t *testing.T) {
	src := "```python\ndef f(x):\n    return x + 1\n```\n"
	blocks := ParseMarkdown([]byte(src))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Type != rsvp.BlockCode {
		t.Fatalf("type %s, want code", blocks[0].Type)
	}
	if blocks[0].Content != "def f(x):\n    return x + 1" {
		t.Errorf("raw content %q, want the fence body with indentation kept", blocks[0].Content)
	}
	if blocks[0].Metadata.Language != "python" {
		t.Errorf("language %q, want python", blocks[0].Metadata.Language)
	}
}

func TestParseMarkdownEmpty(t *testing.T) {
	if blocks := ParseMarkdown(nil); len(blocks) != 0 {
		t.Errorf("expected no blocks, got %d", len(blocks))
	}
}

func TestMarkdownParagraphWithInlineImage(t *testing.T) {
	// An image inside running text stays part of the paragraph.
	blocks := ParseMarkdown([]byte("See ![fig](a.png) for details.\n"))
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Type != rsvp.BlockText {
		t.Errorf("type %s, want text", blocks[0].Type)
	}
}

func TestMarkdownFormatTOC(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.md")
	if err := os.WriteFile(path, []byte(sampleMarkdown), 0644); err != nil {
		t.Fatal(err)
	}

	f := &MarkdownFormat{}
	entries, err := f.TOC(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Title != "Title" || entries[0].Level != 0 || entries[0].BlockIndex != 0 {
		t.Errorf("entry 0: %+v", entries[0])
	}
	if entries[1].Title != "Section" || entries[1].Level != 1 || entries[1].BlockIndex != 2 {
		t.Errorf("entry 1: %+v", entries[1])
	}
}

func TestMarkdownFormatRegistration(t *testing.T) {
	for _, name := range []string{"notes.md", "NOTES.MD", "readme.markdown"} {
		f := ForFile(name)
		if f == nil {
			t.Fatalf("no format registered for %s", name)
		}
		if f.Name() != "Markdown" {
			t.Errorf("ForFile(%s) = %s, want Markdown", name, f.Name())
		}
	}
}
