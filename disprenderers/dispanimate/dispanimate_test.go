package dispanimate_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/util-go/assert"

	"github.com/azriel91/disposition-sub001/disprenderers/dispanimate"
)

func TestSegments(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		visible float64
		n       int
		ratio   float64
		gap     float64

		exp    []float64
		expGap float64
	}{
		{
			name:    "halving",
			visible: 30,
			n:       2,
			ratio:   .5,
			exp:     []float64{20, 10},
		},
		{
			name:    "ratio_one",
			visible: 32,
			n:       3,
			ratio:   1,
			gap:     1,
			exp:     []float64{10, 10, 10},
			expGap:  1,
		},
		{
			name:    "gaps_too_wide",
			visible: 4,
			n:       3,
			ratio:   1,
			gap:     5,
			exp:     []float64{4. / 3, 4. / 3, 4. / 3},
		},
		{
			name:    "single",
			visible: 36,
			n:       1,
			ratio:   .6,
			gap:     2,
			exp:     []float64{36},
			expGap:  2,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			segs, gap := dispanimate.Segments(tc.visible, tc.n, tc.ratio, tc.gap)
			require.Len(t, segs, len(tc.exp))
			for i := range segs {
				tassert.InDelta(t, tc.exp[i], segs[i], 1e-9)
			}
			tassert.Equal(t, tc.expGap, gap)

			total := gap * float64(len(segs)-1)
			for _, s := range segs {
				total += s
			}
			tassert.InDelta(t, tc.visible, total, 1e-9)
		})
	}
}

func TestSingleEdge(t *testing.T) {
	t.Parallel()

	anims := dispanimate.Group([]dispanimate.EdgePath{{ID: "edge_a__0", Length: 100}}, nil)
	require.Len(t, anims, 1)
	a := anims[0]

	tassert.Equal(t, "edge-a--0", a.Name)
	tassert.Equal(t, 0., a.StartPct)
	tassert.Equal(t, 36., a.EndPct)
	tassert.Equal(t, 100., a.Trailing)
	assert.String(t, "@keyframes edge-a--0{0%{stroke-dashoffset:-100}36%{stroke-dashoffset:36}100%{stroke-dashoffset:36}}", a.Keyframes)
	tassert.Equal(t, 1.25, a.DurationS)
	tassert.True(t, strings.HasSuffix(a.Dasharray, ",100"), a.Dasharray)
	tassert.Equal(t, "edge-a--0-arrow-head", a.ArrowHeadName)
}

func TestSymmetricPair(t *testing.T) {
	t.Parallel()

	anims := dispanimate.Group([]dispanimate.EdgePath{
		{ID: "edge_r__0", Length: 20},
		{ID: "edge_r__1", Length: 20, Response: true},
	}, nil)
	require.Len(t, anims, 2)

	req, resp := anims[0].Segments, anims[1].Segments
	for i := 1; i < len(req); i++ {
		tassert.Less(t, req[i], req[i-1])
		tassert.Greater(t, resp[i], resp[i-1])
	}

	// Visible lengths exceed the paths, so the cycle is 72 and each edge
	// takes half.
	tassert.Equal(t, 0., anims[0].StartPct)
	tassert.Equal(t, 50., anims[0].EndPct)
	tassert.Equal(t, 50., anims[1].StartPct)
	tassert.Equal(t, 100., anims[1].EndPct)
	tassert.Equal(t, anims[0].DurationS, anims[1].DurationS)

	tassert.Contains(t, anims[1].Keyframes, "0%{stroke-dashoffset:-36}50%{stroke-dashoffset:-36}100%{stroke-dashoffset:36}}")
	tassert.Contains(t, anims[0].Keyframes, "50%{stroke-dashoffset:36}100%{stroke-dashoffset:36}}")
	tassert.Equal(t, 1, strings.Count(anims[1].Keyframes, "100%{"))
	tassert.Contains(t, anims[1].ArrowHeadKeyframes, "0%{offset-distance:100%;opacity:0;animation-timing-function:step-end}")
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	tassert.Nil(t, dispanimate.Group(nil, nil))
	tassert.Nil(t, dispanimate.Group([]dispanimate.EdgePath{{ID: "e__0"}}, &dispanimate.Options{SegmentCount: 2, Ratio: .5}))
}

var framePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%\{([^}]*)\}`)

type frame struct {
	at    float64
	decls map[string]string
}

func frames(t *testing.T, kf string) []frame {
	var out []frame
	for _, m := range framePattern.FindAllStringSubmatch(kf, -1) {
		at, err := strconv.ParseFloat(m[1], 64)
		require.NoError(t, err)
		decls := make(map[string]string)
		for _, d := range strings.Split(m[2], ";") {
			k, v, ok := strings.Cut(d, ":")
			require.True(t, ok, d)
			decls[k] = v
		}
		out = append(out, frame{at: at, decls: decls})
	}
	require.NotEmpty(t, out)
	return out
}

// opacityAt evaluates the opacity a keyframe rule gives at percentage p,
// honouring step timing between frames.
func opacityAt(t *testing.T, kf string, p float64) float64 {
	fs := frames(t, kf)
	value := func(f frame) float64 {
		v, err := strconv.ParseFloat(f.decls["opacity"], 64)
		require.NoError(t, err)
		return v
	}
	if p <= fs[0].at {
		return value(fs[0])
	}
	for i := 0; i+1 < len(fs); i++ {
		a, b := fs[i], fs[i+1]
		if p < a.at || p >= b.at {
			continue
		}
		switch a.decls["animation-timing-function"] {
		case "step-end":
			return value(a)
		case "step-start":
			return value(b)
		}
		return value(a) + (value(b)-value(a))*(p-a.at)/(b.at-a.at)
	}
	return value(fs[len(fs)-1])
}

func TestArrowHeadHiddenOutsideSlot(t *testing.T) {
	t.Parallel()

	anims := dispanimate.Group([]dispanimate.EdgePath{
		{ID: "ix__0", Length: 20},
		{ID: "ix__1", Length: 20},
		{ID: "ix__2", Length: 20, Response: true},
	}, nil)
	require.Len(t, anims, 3)

	mid := anims[1]
	assert.String(t, "@keyframes ix--1-arrow-head{"+
		"0%{offset-distance:100%;opacity:0;animation-timing-function:step-end}"+
		"33.3333%{offset-distance:100%;opacity:1}"+
		"66.6667%{offset-distance:0%;opacity:1;animation-timing-function:step-start}"+
		"100%{offset-distance:0%;opacity:0}}", mid.ArrowHeadKeyframes)

	for _, a := range anims {
		for p := 0.; p < 100; p += 2.5 {
			exp := 0.
			if p >= a.StartPct && p < a.EndPct {
				exp = 1
			}
			tassert.Equal(t, exp, opacityAt(t, a.ArrowHeadKeyframes, p), "%s at %v%%", a.Name, p)
		}
	}
}
