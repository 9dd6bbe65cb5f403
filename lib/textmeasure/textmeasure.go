// Package textmeasure measures and wraps monospace text.
//
// Widths are derived from grapheme clusters rather than glyph metrics: every
// grapheme is one character wide except emoji, which render roughly
// EmojiWidthFactor characters wide in the monospace fonts the output uses.
package textmeasure

import (
	"math"
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

const (
	// CharWidthFactor is the advance of one monospace character relative to the font size.
	CharWidthFactor = 0.6
	// LineHeightFactor is the line pitch relative to the font size.
	LineHeightFactor = 1.2
	// EmojiWidthFactor is the width of an emoji grapheme in characters.
	EmojiWidthFactor = 2.29

	DefaultFontSize = 11.
)

// Ruler measures text for one font size.
type Ruler struct {
	FontSize   float64
	CharWidth  float64
	LineHeight float64
}

func NewRuler(fontSize float64) *Ruler {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return &Ruler{
		FontSize:   fontSize,
		CharWidth:  fontSize * CharWidthFactor,
		LineHeight: fontSize * LineHeightFactor,
	}
}

// LineWidth returns the rendered width of a single line.
// One extra character of slack is added so the last character never wraps.
func LineWidth(line string, charWidth float64) float64 {
	if line == "" {
		return 0
	}
	return graphemesWidth(graphemes(line), charWidth) + charWidth
}

func graphemesWidth(gs []string, charWidth float64) float64 {
	w := 0.
	for _, g := range gs {
		if isEmoji(g) {
			w += EmojiWidthFactor * charWidth
		} else {
			w += charWidth
		}
	}
	return w
}

func graphemes(s string) []string {
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

func isEmoji(g string) bool {
	for _, r := range g {
		switch {
		case r == 0xFE0F, r == 0x200D:
			return true
		case r >= 0x1F000 && r <= 0x1FAFF:
			return true
		case r >= 0x2600 && r <= 0x27BF:
			return true
		case r >= 0x2B00 && r <= 0x2BFF:
			return true
		}
	}
	return false
}

func isSpace(g string) bool {
	for _, r := range g {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return g != ""
}

// WrapResult is the output of WrapText.
type WrapResult struct {
	Lines []string
	// HardBreaks counts lines that were split mid-word.
	HardBreaks int
}

// WrapText splits text on newlines, then wraps each line to at most
// floor(maxWidth / charWidth) graphemes. A nil maxWidth disables wrapping.
//
// Breaks prefer the last whitespace in the second half of the limit and fall
// back to breaking between graphemes. Continuation lines have their leading
// whitespace trimmed.
func WrapText(text string, charWidth float64, maxWidth *float64) WrapResult {
	var res WrapResult
	limit := -1
	if maxWidth != nil && charWidth > 0 {
		limit = int(math.Floor(*maxWidth / charWidth))
		if limit < 1 {
			limit = 1
		}
	}

	for _, line := range strings.Split(text, "\n") {
		gs := graphemes(line)
		if limit < 0 || len(gs) <= limit {
			res.Lines = append(res.Lines, line)
			continue
		}
		for len(gs) > limit {
			brk := -1
			for i := limit; i >= (limit+1)/2 && i > 0; i-- {
				if isSpace(gs[i]) {
					brk = i
					break
				}
			}
			var head []string
			if brk > 0 {
				head = gs[:brk]
				gs = gs[brk:]
			} else {
				head = gs[:limit]
				gs = gs[limit:]
				res.HardBreaks++
			}
			res.Lines = append(res.Lines, strings.TrimRightFunc(strings.Join(head, ""), unicode.IsSpace))
			for len(gs) > 0 && isSpace(gs[0]) {
				gs = gs[1:]
			}
		}
		if len(gs) > 0 {
			res.Lines = append(res.Lines, strings.Join(gs, ""))
		}
	}
	return res
}

// MaxLineWidth returns the widest of lines.
func MaxLineWidth(lines []string, charWidth float64) float64 {
	w := 0.
	for _, l := range lines {
		w = math.Max(w, LineWidth(l, charWidth))
	}
	return w
}

// Measure wraps text and returns its bounding size.
func (r *Ruler) Measure(text string, maxWidth *float64) (width, height float64, res WrapResult) {
	res = WrapText(text, r.CharWidth, maxWidth)
	if text == "" {
		return 0, 0, res
	}
	return MaxLineWidth(res.Lines, r.CharWidth), float64(len(res.Lines)) * r.LineHeight, res
}
