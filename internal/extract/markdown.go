package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"

	"github.com/metcalfc/skim/internal/rsvp"
)

// MarkdownFormat implements Format for Markdown files.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

func (f *MarkdownFormat) Extract(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read markdown: %w", err)
	}
	return string(data), nil
}

// ExtractBlocks parses the file into ordered content blocks.
func (f *MarkdownFormat) ExtractBlocks(filename string) ([]rsvp.ContentBlock, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}
	return ParseMarkdown(src), nil
}

// TOC extracts the table of contents from the document's headings.
func (f *MarkdownFormat) TOC(filename string) ([]TOCEntry, error) {
	blocks, err := f.ExtractBlocks(filename)
	if err != nil {
		return nil, err
	}
	return TOCFromBlocks(blocks), nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// ParseMarkdown converts markdown source into ordered content blocks,
// walking the top level of the goldmark AST.
func ParseMarkdown(src []byte) []rsvp.ContentBlock {
	doc := markdown.Parser().Parse(gtext.NewReader(src))

	var blocks []rsvp.ContentBlock
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if b, ok := nodeToBlock(n, src); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

func nodeToBlock(n ast.Node, src []byte) (rsvp.ContentBlock, bool) {
	switch v := n.(type) {
	case *ast.Heading:
		return rsvp.ContentBlock{
			Type:     rsvp.BlockHeading,
			Content:  nodeText(v, src),
			Metadata: rsvp.BlockMetadata{Level: v.Level},
		}, true

	case *ast.FencedCodeBlock:
		return rsvp.ContentBlock{
			Type:     rsvp.BlockCode,
			Content:  rawLines(v, src),
			Metadata: rsvp.BlockMetadata{Language: string(v.Language(src))},
		}, true

	case *ast.CodeBlock:
		return rsvp.ContentBlock{
			Type:    rsvp.BlockCode,
			Content: rawLines(v, src),
		}, true

	case *ast.Blockquote:
		return rsvp.ContentBlock{
			Type:    rsvp.BlockBlockquote,
			Content: nodeText(v, src),
		}, true

	case *ast.List:
		return rsvp.ContentBlock{
			Type:     rsvp.BlockList,
			Content:  listText(v, src),
			Metadata: rsvp.BlockMetadata{Ordered: v.IsOrdered()},
		}, true

	case *ast.ThematicBreak:
		return rsvp.ContentBlock{Type: rsvp.BlockHR}, true

	case *east.Table:
		return rsvp.ContentBlock{
			Type:    rsvp.BlockTable,
			Content: tableText(v, src),
		}, true

	case *ast.Paragraph:
		if img := soleImage(v, src); img != nil {
			return rsvp.ContentBlock{
				Type:    rsvp.BlockImage,
				Content: nodeText(img, src),
				Metadata: rsvp.BlockMetadata{
					Source: string(img.Destination),
					Alt:    nodeText(img, src),
				},
			}, true
		}
		return rsvp.ContentBlock{
			Type:    rsvp.BlockText,
			Content: nodeText(v, src),
		}, true

	default:
		t := nodeText(n, src)
		if strings.TrimSpace(t) == "" {
			return rsvp.ContentBlock{}, false
		}
		return rsvp.ContentBlock{Type: rsvp.BlockText, Content: t}, true
	}
}

// nodeText flattens the inline text content of a node, preserving line
// breaks within it.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// rawLines returns a block node's raw source lines, used for code
// blocks where formatting matters.
func rawLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimRight(b.String(), "\n")
}

func listText(l *ast.List, src []byte) string {
	var lines []string
	i := 1
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		t := nodeText(item, src)
		if t == "" {
			continue
		}
		if l.IsOrdered() {
			lines = append(lines, fmt.Sprintf("%d. %s", i, t))
			i++
		} else {
			lines = append(lines, "- "+t)
		}
	}
	return strings.Join(lines, "\n")
}

func tableText(t *east.Table, src []byte) string {
	var rows []string
	for r := t.FirstChild(); r != nil; r = r.NextSibling() {
		var cells []string
		for c := r.FirstChild(); c != nil; c = c.NextSibling() {
			cells = append(cells, nodeText(c, src))
		}
		if len(cells) > 0 {
			rows = append(rows, strings.Join(cells, " | "))
		}
	}
	return strings.Join(rows, "\n")
}

// soleImage returns the paragraph's image when the paragraph consists
// of exactly one image and nothing else.
func soleImage(p *ast.Paragraph, src []byte) *ast.Image {
	var img *ast.Image
	for c := p.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Image:
			if img != nil {
				return nil
			}
			img = v
		case *ast.Text:
			if len(strings.TrimSpace(string(v.Segment.Value(src)))) > 0 {
				return nil
			}
		default:
			return nil
		}
	}
	return img
}
