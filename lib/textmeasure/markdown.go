package textmeasure

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdownParser goldmark.Markdown

func init() {
	markdownParser = goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Table,
		),
	)
}

// Block is a top level markdown block flattened to plain text.
type Block struct {
	Text string
	// Language is set for fenced code blocks. Code is true for any code block.
	Language string
	Code     bool
}

// ParseBlocks flattens markdown into plain text blocks, keeping code blocks
// verbatim so they can be highlighted.
func ParseBlocks(md string) []Block {
	if strings.TrimSpace(md) == "" {
		return nil
	}
	src := []byte(md)
	doc := markdownParser.Parser().Parse(text.NewReader(src))

	var blocks []Block
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.Kind() {
		case ast.KindFencedCodeBlock:
			fcb := n.(*ast.FencedCodeBlock)
			blocks = append(blocks, Block{
				Text:     linesOf(n, src),
				Language: string(fcb.Language(src)),
				Code:     true,
			})
		case ast.KindCodeBlock:
			blocks = append(blocks, Block{Text: linesOf(n, src), Code: true})
		case ast.KindList:
			var items []string
			for item := n.FirstChild(); item != nil; item = item.NextSibling() {
				items = append(items, "• "+plainText(item, src))
			}
			blocks = append(blocks, Block{Text: strings.Join(items, "\n")})
		case ast.KindThematicBreak:
			continue
		default:
			blocks = append(blocks, Block{Text: plainText(n, src)})
		}
	}
	return blocks
}

func linesOf(n ast.Node, src []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func plainText(n ast.Node, src []byte) string {
	var sb strings.Builder
	writeText(&sb, n, n, src)
	return strings.TrimRight(sb.String(), "\n")
}

// writeText appends the text of c and its descendants. Blocks nested in root
// are separated by newlines.
func writeText(sb *strings.Builder, root, c ast.Node, src []byte) {
	switch c := c.(type) {
	case *ast.Text:
		sb.Write(c.Segment.Value(src))
		if c.SoftLineBreak() || c.HardLineBreak() {
			sb.WriteString("\n")
		}
	case *ast.String:
		sb.Write(c.Value)
	case *ast.AutoLink:
		sb.Write(c.Label(src))
		return
	}
	for child := c.FirstChild(); child != nil; child = child.NextSibling() {
		writeText(sb, root, child, src)
	}
	if c.Type() == ast.TypeBlock && c != root && c.NextSibling() != nil {
		sb.WriteString("\n")
	}
}
