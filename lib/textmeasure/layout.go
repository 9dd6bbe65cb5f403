package textmeasure

import (
	"fmt"
	"math"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// CodeStyle is the chroma style used for fenced code in descriptions.
const CodeStyle = "github"

type SpanKind int

const (
	SpanLabel SpanKind = iota
	SpanDesc
	SpanCode
)

func (k SpanKind) String() string {
	switch k {
	case SpanLabel:
		return "label"
	case SpanDesc:
		return "desc"
	default:
		return "code"
	}
}

// Span is a run of text positioned relative to the top left of its text box.
// Y is the baseline.
type Span struct {
	Text string
	X    float64
	Y    float64
	// Fill is only set for highlighted code tokens.
	Fill string
	Kind SpanKind
}

// TextLayout is the result of laying out a node's label and description.
type TextLayout struct {
	Width      float64
	Height     float64
	Spans      []Span
	HardBreaks int
}

// LayoutText wraps label and the markdown desc to maxWidth and positions
// every run. Code blocks are never wrapped.
func (r *Ruler) LayoutText(label, desc string, maxWidth *float64) (*TextLayout, error) {
	tl := &TextLayout{}
	line := 0
	emit := func(s Span) {
		s.Y = float64(line)*r.LineHeight + r.FontSize
		tl.Spans = append(tl.Spans, s)
	}
	addWrapped := func(text string, kind SpanKind) {
		res := WrapText(text, r.CharWidth, maxWidth)
		tl.HardBreaks += res.HardBreaks
		for _, l := range res.Lines {
			if l != "" {
				emit(Span{Text: l, Kind: kind})
				tl.Width = math.Max(tl.Width, LineWidth(l, r.CharWidth))
			}
			line++
		}
	}

	if label != "" {
		addWrapped(label, SpanLabel)
	}

	for _, b := range ParseBlocks(desc) {
		if !b.Code {
			addWrapped(b.Text, SpanDesc)
			continue
		}
		codeLines, err := Highlight(b.Text, b.Language)
		if err != nil {
			return nil, err
		}
		for _, tokens := range codeLines {
			var lineText strings.Builder
			for _, tok := range tokens {
				if strings.TrimSpace(tok.Text) != "" {
					emit(Span{
						Text: tok.Text,
						X:    graphemesWidth(graphemes(lineText.String()), r.CharWidth),
						Fill: tok.Fill,
						Kind: SpanCode,
					})
				}
				lineText.WriteString(tok.Text)
			}
			tl.Width = math.Max(tl.Width, LineWidth(lineText.String(), r.CharWidth))
			line++
		}
	}

	tl.Height = float64(line) * r.LineHeight
	return tl, nil
}

// Token is a highlighted run within one line of code.
type Token struct {
	Text string
	Fill string
}

// Highlight tokenises code with chroma and returns one slice of tokens per line.
func Highlight(code, language string) ([][]Token, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get(CodeStyle)
	if style == nil {
		return nil, fmt.Errorf("code style %q not found", CodeStyle)
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenise %s code: %w", language, err)
	}

	var out [][]Token
	for _, tokens := range chroma.SplitTokensIntoLines(iterator.Tokens()) {
		var line []Token
		for _, token := range tokens {
			s := strings.TrimRight(token.Value, "\n")
			if s == "" {
				continue
			}
			fill := ""
			if entry := style.Get(token.Type); entry.Colour.IsSet() {
				fill = entry.Colour.String()
			}
			line = append(line, Token{Text: s, Fill: fill})
		}
		out = append(out, line)
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}
