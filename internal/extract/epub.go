package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"

	"github.com/metcalfc/skim/internal/rsvp"
)

// EPUBFormat implements Format for EPUB files.
type EPUBFormat struct{}

func init() {
	Register(&EPUBFormat{})
}

func (f *EPUBFormat) Name() string         { return "EPUB" }
func (f *EPUBFormat) Extensions() []string { return []string{".epub"} }

func (f *EPUBFormat) Extract(filename string) (string, error) {
	blocks, err := f.ExtractBlocks(filename)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for _, b := range blocks {
		if b.Type == rsvp.BlockHR || b.Content == "" {
			continue
		}
		out.WriteString(b.Content)
		out.WriteString("\n\n")
	}
	return out.String(), nil
}

// ExtractBlocks walks the EPUB spine in order and converts each XHTML
// item into content blocks. Unreadable spine items are skipped rather
// than failing the whole book.
func (f *EPUBFormat) ExtractBlocks(filename string) ([]rsvp.ContentBlock, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("open epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	var blocks []rsvp.ContentBlock
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		blocks = append(blocks, htmlToBlocks(string(data))...)
	}
	return blocks, nil
}

// TOC derives the table of contents from heading blocks.
func (f *EPUBFormat) TOC(filename string) ([]TOCEntry, error) {
	blocks, err := f.ExtractBlocks(filename)
	if err != nil {
		return nil, err
	}
	return TOCFromBlocks(blocks), nil
}

// htmlToBlocks parses an XHTML document and flattens its body into
// ordered content blocks. Text outside any structural element is
// gathered into plain text blocks.
func htmlToBlocks(src string) []rsvp.ContentBlock {
	doc, err := html.Parse(strings.NewReader(src))
	if err != nil {
		return nil
	}
	p := &htmlBlockWalker{}
	p.walk(doc)
	p.flush()
	return p.blocks
}

type htmlBlockWalker struct {
	blocks  []rsvp.ContentBlock
	pending strings.Builder
}

func (p *htmlBlockWalker) flush() {
	t := collapseSpace(p.pending.String())
	p.pending.Reset()
	if t != "" {
		p.blocks = append(p.blocks, rsvp.ContentBlock{Type: rsvp.BlockText, Content: t})
	}
}

func (p *htmlBlockWalker) add(b rsvp.ContentBlock) {
	p.flush()
	if b.Type == rsvp.BlockHR || strings.TrimSpace(b.Content) != "" {
		p.blocks = append(p.blocks, b)
	}
}

func (p *htmlBlockWalker) walk(n *html.Node) {
	if n.Type == html.TextNode {
		p.pending.WriteString(n.Data)
		p.pending.WriteString(" ")
		return
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "head":
			return

		case "h1", "h2", "h3", "h4", "h5", "h6":
			p.add(rsvp.ContentBlock{
				Type:     rsvp.BlockHeading,
				Content:  textContent(n),
				Metadata: rsvp.BlockMetadata{Level: int(n.Data[1] - '0')},
			})
			return

		case "p", "div":
			// Divs with nested structure recurse; treat leaf divs and
			// paragraphs as prose.
			if n.Data == "div" && hasStructuralChild(n) {
				break
			}
			p.add(rsvp.ContentBlock{Type: rsvp.BlockText, Content: textContent(n)})
			return

		case "pre":
			p.add(rsvp.ContentBlock{Type: rsvp.BlockCode, Content: rawText(n)})
			return

		case "blockquote":
			p.add(rsvp.ContentBlock{Type: rsvp.BlockBlockquote, Content: textContent(n)})
			return

		case "ul", "ol":
			p.add(rsvp.ContentBlock{
				Type:     rsvp.BlockList,
				Content:  htmlListText(n),
				Metadata: rsvp.BlockMetadata{Ordered: n.Data == "ol"},
			})
			return

		case "table":
			p.add(rsvp.ContentBlock{Type: rsvp.BlockTable, Content: htmlTableText(n)})
			return

		case "img", "image":
			p.add(rsvp.ContentBlock{
				Type:    rsvp.BlockImage,
				Content: attr(n, "alt"),
				Metadata: rsvp.BlockMetadata{
					Source: attr(n, "src"),
					Alt:    attr(n, "alt"),
				},
			})
			return

		case "hr":
			p.add(rsvp.ContentBlock{Type: rsvp.BlockHR})
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

var structuralTags = map[string]bool{
	"p": true, "div": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "pre": true, "blockquote": true,
	"ul": true, "ol": true, "table": true, "hr": true,
}

func hasStructuralChild(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && structuralTags[c.Data] {
			return true
		}
	}
	return false
}

// textContent flattens an element to whitespace-collapsed text.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
			b.WriteString(" ")
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return collapseSpace(b.String())
}

// rawText keeps the node's text as written, for code where line
// structure matters.
func rawText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return strings.Trim(b.String(), "\n")
}

func htmlListText(n *html.Node) string {
	var lines []string
	i := 1
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "li" {
			continue
		}
		t := textContent(c)
		if t == "" {
			continue
		}
		if n.Data == "ol" {
			lines = append(lines, fmt.Sprintf("%d. %s", i, t))
			i++
		} else {
			lines = append(lines, "- "+t)
		}
	}
	return strings.Join(lines, "\n")
}

func htmlTableText(n *html.Node) string {
	var rows []string
	var walk func(*html.Node)
	walk = func(c *html.Node) {
		if c.Type == html.ElementNode && c.Data == "tr" {
			var cells []string
			for cell := c.FirstChild; cell != nil; cell = cell.NextSibling {
				if cell.Type == html.ElementNode && (cell.Data == "td" || cell.Data == "th") {
					cells = append(cells, textContent(cell))
				}
			}
			if len(cells) > 0 {
				rows = append(rows, strings.Join(cells, " | "))
			}
			return
		}
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			walk(gc)
		}
	}
	walk(n)
	return strings.Join(rows, "\n")
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
