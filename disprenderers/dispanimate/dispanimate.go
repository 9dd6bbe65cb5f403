// Package dispanimate synthesizes the looping dash animation of interaction
// edge groups.
//
// Each edge of a group gets a stroke-dasharray of shrinking (or, for
// responses, growing) dashes followed by a gap long enough to hide the
// whole edge, and a keyframe rule that slides the dashes along the edge
// during the edge's slot of the group's cycle. Slots follow edge order, so
// the group plays as one request/response sequence.
package dispanimate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/lib/geo"
)

type Options struct {
	// VisibleLength is the length of dashes and gaps between them on every
	// edge.
	VisibleLength float64
	SegmentCount  int
	// Ratio is the length of each dash relative to the one before it.
	Ratio float64
	Gap   float64
	// PixelsPerSecond turns the group's cycle length into a duration.
	PixelsPerSecond float64
}

var DefaultOptions = Options{
	VisibleLength:   36,
	SegmentCount:    4,
	Ratio:           .6,
	Gap:             2,
	PixelsPerSecond: 80,
}

// EdgePath is an edge's input to the animation.
type EdgePath struct {
	ID     dispmodel.EdgeID
	Length float64
	// Response edges grow their dashes instead of shrinking them.
	Response bool
}

type Animation struct {
	Name      string
	Segments  []float64
	Gap       float64
	Trailing  float64
	Dasharray string
	StartPct  float64
	EndPct    float64
	Keyframes string

	ArrowHeadName      string
	ArrowHeadKeyframes string

	DurationS float64
}

// Name turns an edge id into a CSS identifier.
func Name(id dispmodel.EdgeID) string {
	return strings.ReplaceAll(string(id), "_", "-")
}

// Segments solves a(1-r^n)/(1-r) + (n-1)gap = visible for a and returns
// a, ar, ar^2, ... When the gaps alone exceed visible they are dropped.
func Segments(visible float64, n int, ratio, gap float64) ([]float64, float64) {
	if n < 1 {
		n = 1
	}
	if visible-float64(n-1)*gap <= 0 {
		gap = 0
	}
	sum := float64(n)
	if math.Abs(1-ratio) > geo.Epsilon {
		sum = (1 - math.Pow(ratio, float64(n))) / (1 - ratio)
	}
	a := (visible - float64(n-1)*gap) / sum
	segs := make([]float64, n)
	for i := range segs {
		segs[i] = a * math.Pow(ratio, float64(i))
	}
	return segs, gap
}

func num(v float64) string {
	return strconv.FormatFloat(geo.Round(v), 'f', -1, 64)
}

func pct(v float64) string {
	return num(v) + "%"
}

// Group animates the edges of one group.
func Group(edges []EdgePath, opts *Options) []Animation {
	if opts == nil {
		opts = &DefaultOptions
	}
	if len(edges) == 0 {
		return nil
	}

	pathTotal, visibleTotal := 0., 0.
	for _, e := range edges {
		pathTotal += e.Length
		visibleTotal += opts.VisibleLength
	}
	cycle := math.Max(pathTotal, visibleTotal)
	if cycle <= 0 {
		return nil
	}
	duration := 1.
	if opts.PixelsPerSecond > 0 {
		duration = math.Round(cycle/opts.PixelsPerSecond*100) / 100
	}

	out := make([]Animation, len(edges))
	acc := 0.
	for i, e := range edges {
		segs, gap := Segments(opts.VisibleLength, opts.SegmentCount, opts.Ratio, opts.Gap)
		if e.Response {
			for l, r := 0, len(segs)-1; l < r; l, r = l+1, r-1 {
				segs[l], segs[r] = segs[r], segs[l]
			}
		}
		trailing := math.Max(e.Length, opts.VisibleLength)

		var dash []string
		for j, s := range segs {
			if j > 0 {
				dash = append(dash, num(gap))
			}
			dash = append(dash, num(s))
		}
		dash = append(dash, num(trailing))

		a := Animation{
			Name:          Name(e.ID),
			Segments:      segs,
			Gap:           gap,
			Trailing:      trailing,
			Dasharray:     strings.Join(dash, ","),
			StartPct:      100 * acc / cycle,
			EndPct:        100 * (acc + opts.VisibleLength) / cycle,
			ArrowHeadName: Name(e.ID) + "-arrow-head",
			DurationS:     duration,
		}
		a.Keyframes = keyframes(a.Name, a.StartPct, a.EndPct,
			fmt.Sprintf("stroke-dashoffset:%s", num(-trailing)),
			fmt.Sprintf("stroke-dashoffset:%s", num(opts.VisibleLength)),
			"", "")
		a.ArrowHeadKeyframes = keyframes(a.ArrowHeadName, a.StartPct, a.EndPct,
			"offset-distance:100%;opacity:1",
			"offset-distance:0%;opacity:1",
			"offset-distance:100%;opacity:0",
			"offset-distance:0%;opacity:0")
		out[i] = a
		acc += opts.VisibleLength
	}
	return out
}

// keyframes holds from until start, moves to to by end and holds it. before
// and after replace the held values outside the slot when set. They are
// held with step timing so nothing is interpolated outside the slot.
func keyframes(name string, start, end float64, from, to, before, after string) string {
	holdBefore, holdAfter := before != "" && before != from, after != "" && after != to
	if !holdBefore {
		before = from
	}
	if !holdAfter {
		after = to
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "@keyframes %s{", name)
	if start > 0 {
		if holdBefore {
			before += ";animation-timing-function:step-end"
		}
		fmt.Fprintf(&sb, "0%%{%s}", before)
	}
	fmt.Fprintf(&sb, "%s{%s}", pct(start), from)
	if end < 100 {
		if holdAfter {
			to += ";animation-timing-function:step-start"
		}
		fmt.Fprintf(&sb, "%s{%s}", pct(end), to)
		fmt.Fprintf(&sb, "100%%{%s}", after)
	} else {
		fmt.Fprintf(&sb, "%s{%s}", pct(end), to)
	}
	sb.WriteByte('}')
	return sb.String()
}
