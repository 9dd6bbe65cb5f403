package textmeasure_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oss.terrastruct.com/util-go/go2"

	"github.com/azriel91/disposition-sub001/lib/textmeasure"
)

func TestLineWidth(t *testing.T) {
	t.Parallel()

	cw := textmeasure.NewRuler(11).CharWidth
	assert.InDelta(t, 6.6, cw, 1e-9)

	assert.Equal(t, 0., textmeasure.LineWidth("", cw))
	assert.InDelta(t, 4*cw, textmeasure.LineWidth("abc", cw), 1e-9)
	// e + combining acute is one grapheme
	assert.InDelta(t, 2*cw, textmeasure.LineWidth("é", cw), 1e-9)
	assert.InDelta(t, (1+textmeasure.EmojiWidthFactor+1)*cw, textmeasure.LineWidth("a🚀", cw), 1e-9)
	// family emoji joined with ZWJ counts once
	assert.InDelta(t, (textmeasure.EmojiWidthFactor+1)*cw, textmeasure.LineWidth("👨‍👩‍👧", cw), 1e-9)
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		text       string
		limit      *float64
		exp        []string
		hardBreaks int
	}{
		{
			name: "no_limit",
			text: "hello world",
			exp:  []string{"hello world"},
		},
		{
			name:  "fits",
			text:  "hello",
			limit: go2.Pointer(5.),
			exp:   []string{"hello"},
		},
		{
			name:  "break_at_space",
			text:  "hello world again",
			limit: go2.Pointer(11.),
			exp:   []string{"hello world", "again"},
		},
		{
			name:       "space_in_first_half_is_ignored",
			text:       "a bcdefghij",
			limit:      go2.Pointer(6.),
			exp:        []string{"a bcde", "fghij"},
			hardBreaks: 1,
		},
		{
			name:       "hard_break",
			text:       "abcdefghij",
			limit:      go2.Pointer(4.),
			exp:        []string{"abcd", "efgh", "ij"},
			hardBreaks: 2,
		},
		{
			name:  "newlines_and_leading_whitespace",
			text:  "one two   three\nfour",
			limit: go2.Pointer(8.),
			exp:   []string{"one two", "three", "four"},
		},
		{
			name:       "min_content",
			text:       "ab",
			limit:      go2.Pointer(0.),
			exp:        []string{"a", "b"},
			hardBreaks: 1,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// char width 1 makes limits read as grapheme counts
			res := textmeasure.WrapText(tc.text, 1, tc.limit)
			assert.Equal(t, tc.exp, res.Lines)
			assert.Equal(t, tc.hardBreaks, res.HardBreaks)
		})
	}
}

func TestWrapTextNeverExceedsLimit(t *testing.T) {
	t.Parallel()

	text := "The computing field is always in need of new cliches. Baseball is a skilled game."
	for limit := 1; limit < 40; limit++ {
		res := textmeasure.WrapText(text, 1, go2.Pointer(float64(limit)))
		for _, l := range res.Lines {
			assert.LessOrEqual(t, len([]rune(l)), limit, l)
			assert.False(t, strings.HasPrefix(l, " "), l)
		}
	}
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	r := textmeasure.NewRuler(10)
	w, h, res := r.Measure("ab\nabcd", nil)
	assert.Len(t, res.Lines, 2)
	assert.InDelta(t, 30, w, 1e-9)
	assert.InDelta(t, 24, h, 1e-9)

	w, h, _ = r.Measure("", nil)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestLayoutText(t *testing.T) {
	t.Parallel()

	r := textmeasure.NewRuler(10)
	desc := "Some *words* here.\n\n```go\nfunc main() {}\n```\n"
	tl, err := r.LayoutText("Label", desc, nil)
	require.NoError(t, err)

	require.NotEmpty(t, tl.Spans)
	assert.Equal(t, textmeasure.Span{Text: "Label", Y: 10, Kind: textmeasure.SpanLabel}, tl.Spans[0])
	assert.Equal(t, "Some words here.", tl.Spans[1].Text)
	assert.Equal(t, textmeasure.SpanDesc, tl.Spans[1].Kind)

	var code []textmeasure.Span
	for _, s := range tl.Spans {
		if s.Kind == textmeasure.SpanCode {
			code = append(code, s)
		}
	}
	require.NotEmpty(t, code)
	assert.Equal(t, "func", code[0].Text)
	assert.Zero(t, code[0].X)
	assert.NotEmpty(t, code[0].Fill)
	assert.InDelta(t, 2*12+10, code[0].Y, 1e-9)
	assert.InDelta(t, 3*12, tl.Height, 1e-9)
}

func TestParseBlocks(t *testing.T) {
	t.Parallel()

	blocks := textmeasure.ParseBlocks("# Title\n\n- one\n- two\n\n```yaml\na: 1\n```")
	require.Len(t, blocks, 3)
	assert.Equal(t, "Title", blocks[0].Text)
	assert.Equal(t, "• one\n• two", blocks[1].Text)
	assert.Equal(t, textmeasure.Block{Text: "a: 1", Language: "yaml", Code: true}, blocks[2])

	blocks = textmeasure.ParseBlocks("line one\nline two\n\n> quoted *text*\n>\n> <https://x.io> after")
	require.Len(t, blocks, 2)
	assert.Equal(t, "line one\nline two", blocks[0].Text)
	assert.Equal(t, "quoted text\nhttps://x.io after", blocks[1].Text)

	assert.Nil(t, textmeasure.ParseBlocks("  "))
}
