package tailwind_test

import (
	"testing"

	tassert "github.com/stretchr/testify/assert"

	"oss.terrastruct.com/util-go/assert"

	"github.com/azriel91/disposition-sub001/lib/tailwind"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		classes string
		exp     string
		unknown []string
	}{
		{
			name:    "palette",
			classes: "fill-slate-300 stroke-white stroke-2 stroke-none outline-[#aabbcc]",
			exp: `.fill-slate-300{fill:#cbd5e1}
.stroke-white{stroke:#ffffff}
.stroke-2{stroke-width:2}
.stroke-none{stroke:none}
.outline-\[\#aabbcc\]{outline-color:#aabbcc}
`,
		},
		{
			name:    "variants_sort_after_plain",
			classes: "hover:fill-slate-200 visible [&>text]:fill-neutral-900",
			exp: `.visible{visibility:visible}
.hover\:fill-slate-200:hover{fill:#e2e8f0}
.\[\&\>text\]\:fill-neutral-900>text{fill:#171717}
`,
		},
		{
			name:    "group_has",
			classes: `group group-has-[#step\_1:focus-within]:visible`,
			exp: `.group:has(#step_1:focus-within) .group-has-\[\#step\\_1\:focus-within\]\:visible{visibility:visible}
`,
		},
		{
			name:    "arbitrary_property",
			classes: `[&>path]:[d:path('M_4_0_H_96_Z')] [stroke-dasharray:3]`,
			exp: `.\[stroke-dasharray\:3\]{stroke-dasharray:3}
.\[\&\>path\]\:\[d\:path\(\'M_4_0_H_96_Z\'\)\]>path{d:path('M 4 0 H 96 Z')}
`,
		},
		{
			name:    "translate",
			classes: "translate-x-[10px] translate-y-[2.5px]",
			exp: `*{--tw-translate-x:0;--tw-translate-y:0}
.translate-x-\[10px\]{--tw-translate-x:10px;transform:translate(var(--tw-translate-x), var(--tw-translate-y))}
.translate-y-\[2\.5px\]{--tw-translate-y:2.5px;transform:translate(var(--tw-translate-x), var(--tw-translate-y))}
`,
		},
		{
			name:    "animation",
			classes: "animate-pulse animate-pulse animate-[dash_2s_linear_infinite] opacity-50",
			exp: `.animate-pulse{animation:pulse 2s cubic-bezier(0.4, 0, 0.6, 1) infinite}
.animate-\[dash_2s_linear_infinite\]{animation:dash 2s linear infinite}
.opacity-50{opacity:0.5}
@keyframes pulse{50%{opacity:.5}}
`,
		},
		{
			name:    "unknown",
			classes: "shadow-lg fill-notacolor-300 md:visible visible",
			exp: `.visible{visibility:visible}
`,
			unknown: []string{"shadow-lg", "fill-notacolor-300", "md:visible"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			css, unknown := tailwind.Compile(tc.classes)
			assert.String(t, tc.exp, css)
			tassert.Equal(t, tc.unknown, unknown)
		})
	}
}

func TestGroupHasFocus(t *testing.T) {
	t.Parallel()

	assert.String(t, `group-has-[#proc\_a:focus-within,#step:focus-within]:`, tailwind.GroupHasFocus("proc_a", "step"))
	assert.String(t, `path('M\_1_2')`, "path('"+tailwind.EscapeArbitrary("M_1")+"_2')")
	assert.String(t, `M_4_0_H_96`, tailwind.Arbitrary("M 4 0 H 96"))
}
