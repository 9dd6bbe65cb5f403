package dispmodel_test

import (
	"errors"
	"testing"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"oss.terrastruct.com/diff"
	"oss.terrastruct.com/util-go/assert"

	"github.com/azriel91/disposition-sub001/dispmodel"
)

const fullDiagram = `things:
  t_localhost: 🧑‍💻 Localhost
  t_github: GitHub
  t_aws: AWS
thing_copy_text:
  t_localhost: localhost
thing_hierarchy:
  t_aws:
    t_github: {}
  t_localhost: {}
thing_dependencies:
  edge_dep:
    kind: sequence
    things:
      - t_localhost
      - t_github
      - t_aws
thing_interactions:
  edge_push:
    kind: symmetric
    things:
      - t_localhost
      - t_github
processes:
  proc_app_dev:
    name: App Development
    desc: Build the app.
    steps:
      proc_app_dev_step_build: Build
      proc_app_dev_step_push: Push
    step_thing_interactions:
      proc_app_dev_step_push:
        - edge_push
tags:
  tag_app: Application
tag_things:
  tag_app:
    - t_localhost
    - t_github
entity_descs:
  t_aws: "Cloud provider\n\n` + "```yaml\\nkey: value\\n```" + `"
entity_tooltips:
  t_github: Hosts the code
entity_types:
  t_aws: type_organisation
theme_default:
  style_aliases:
    shade_custom:
      fill_shade_normal: "200"
  base_styles:
    node_defaults:
      style_aliases_applied:
        - shade_light
      stroke_width: "1"
    t_aws:
      fill_color: amber
theme_types_styles:
  type_organisation:
    node_defaults:
      style_aliases_applied:
        - shade_custom
theme_thing_dependencies_styles:
  edge_defaults:
    visibility: visible
theme_tag_things_focus:
  tag_defaults:
    node_defaults:
      fill_color: emerald
css: |
  .custom { opacity: 0.5; }
`

func TestParse(t *testing.T) {
	t.Parallel()

	d, err := dispmodel.Parse([]byte(fullDiagram))
	assert.Success(t, err)

	tassert.Equal(t, []dispmodel.ThingID{"t_localhost", "t_github", "t_aws"}, d.Things.Keys())
	label, ok := d.Things.Get("t_localhost")
	tassert.True(t, ok)
	assert.String(t, "🧑‍💻 Localhost", label)

	require.Len(t, d.ThingHierarchy, 2)
	tassert.Equal(t, dispmodel.ThingID("t_aws"), d.ThingHierarchy[0].ID)
	tassert.Equal(t, dispmodel.ThingID("t_github"), d.ThingHierarchy[0].Children[0].ID)

	dep, _ := d.ThingDependencies.Get("edge_dep")
	tassert.Equal(t, dispmodel.Sequence, dep.Kind)
	tassert.Equal(t, []dispmodel.ThingID{"t_localhost", "t_github", "t_aws"}, dep.Things)

	proc, _ := d.Processes.Get("proc_app_dev")
	assert.String(t, "App Development", proc.Name)
	tassert.Equal(t, 2, proc.Steps.Len())
	groups, _ := proc.StepThingInteractions.Get("proc_app_dev_step_push")
	tassert.Equal(t, []dispmodel.EdgeGroupID{"edge_push"}, groups.Items())

	tagged, _ := d.TagThings.Get("tag_app")
	tassert.True(t, tagged.Has("t_github"))
	tassert.False(t, tagged.Has("t_aws"))

	nodeDefaults, _ := d.ThemeDefault.BaseStyles.Get(dispmodel.NodeDefaults)
	tassert.Equal(t, []dispmodel.StyleAlias{"shade_light"}, nodeDefaults.StyleAliasesApplied)
	width, _ := nodeDefaults.Attrs.Get(dispmodel.AttrStrokeWidth)
	assert.String(t, "1", width)

	assert.String(t, ".custom { opacity: 0.5; }\n", d.Css)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	d, err := dispmodel.Parse([]byte(fullDiagram))
	assert.Success(t, err)
	first, err := d.Marshal()
	assert.Success(t, err)

	d2, err := dispmodel.Parse(first)
	assert.Success(t, err)
	second, err := d2.Marshal()
	assert.Success(t, err)

	diff.AssertStringEq(t, string(first), string(second))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	out, err := dispmodel.Format([]byte(`things: {b: B, a: A}
thing_hierarchy: {a: {b: {}}}
`))
	assert.Success(t, err)
	diff.AssertStringEq(t, `things:
  b: B
  a: A
thing_hierarchy:
  a:
    b: {}
`, string(out))
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"", "\n", "{}", "# just a comment\n"} {
		d, err := dispmodel.Parse([]byte(src))
		assert.Success(t, err)
		tassert.Zero(t, d.Things.Len())
		out, err := d.Marshal()
		assert.Success(t, err)
		tassert.Empty(t, out)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		text   string
		kind   dispmodel.ErrorKind
		expErr string
	}{
		{
			name:   "unknown_top_level_field",
			text:   "thingz:\n  a: A\n",
			kind:   dispmodel.ParseFailure,
			expErr: `1:1: unknown field "thingz" in diagram`,
		},
		{
			name:   "unknown_nested_field",
			text:   "processes:\n  p:\n    stepz: {}\n",
			kind:   dispmodel.ParseFailure,
			expErr: `3:5: unknown field "stepz" in process`,
		},
		{
			name:   "invalid_id",
			text:   "things:\n  1abc: A\n",
			kind:   dispmodel.InvalidId,
			expErr: `2:3: invalid id "1abc": ids may only contain ASCII letters, digits and underscores, and must not start with a digit`,
		},
		{
			name:   "invalid_id_in_edge",
			text:   "thing_dependencies:\n  e:\n    kind: cyclic\n    things: [a-b]\n",
			kind:   dispmodel.InvalidId,
			expErr: `3:5: invalid id "a-b": ids may only contain ASCII letters, digits and underscores, and must not start with a digit`,
		},
		{
			name:   "duplicate_key",
			text:   "things:\n  a: A\n  a: B\n",
			kind:   dispmodel.DuplicateKey,
			expErr: `3:3: duplicate key "a" in things`,
		},
		{
			name:   "duplicate_nested_key",
			text:   "processes:\n  p:\n    steps:\n      s: S\n      s: T\n",
			kind:   dispmodel.DuplicateKey,
			expErr: `5:7: duplicate key "s" in processes.p.steps`,
		},
		{
			name:   "bad_edge_kind",
			text:   "thing_interactions:\n  e:\n    kind: loop\n    things: [a]\n",
			kind:   dispmodel.ParseFailure,
			expErr: `3:5: unknown edge kind "loop": expected one of cyclic, sequence, symmetric`,
		},
		{
			name: "malformed_yaml",
			text: "things:\n  a: [\n",
			kind: dispmodel.ParseFailure,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := dispmodel.Parse([]byte(tc.text))
			require.Error(t, err)
			var e *dispmodel.Error
			require.True(t, errors.As(err, &e), err.Error())
			tassert.Equal(t, tc.kind, e.Kind)
			if tc.expErr != "" {
				assert.ErrorString(t, err, tc.expErr)
			}
		})
	}
}

func TestHierarchyCheck(t *testing.T) {
	t.Parallel()

	d, err := dispmodel.Parse([]byte("thing_hierarchy:\n  a:\n    b: {}\n  c:\n    b: {}\n"))
	assert.Success(t, err)
	h, issues, err := d.ThingHierarchy.Check()
	assert.Success(t, err)
	require.Len(t, issues, 1)
	tassert.Equal(t, dispmodel.DuplicateHierarchyEntry, issues[0].Kind)
	tassert.Equal(t, []string{"c", "b"}, issues[0].IDs)
	require.Len(t, h, 2)
	tassert.Empty(t, h[1].Children)

	cyclic := dispmodel.ThingHierarchy{{
		ID: "a",
		Children: dispmodel.ThingHierarchy{{
			ID:       "b",
			Children: dispmodel.ThingHierarchy{{ID: "a"}},
		}},
	}}
	_, _, err = cyclic.Check()
	var e *dispmodel.Error
	require.True(t, errors.As(err, &e))
	tassert.Equal(t, dispmodel.HierarchyCycle, e.Kind)
	tassert.Equal(t, "a", e.ID)
}

func TestMapOrder(t *testing.T) {
	t.Parallel()

	var m dispmodel.Map[dispmodel.ThingID, string]
	m.Set("z", "Z")
	m.Set("a", "A")
	m.Set("z", "ZZ")
	tassert.Equal(t, []dispmodel.ThingID{"z", "a"}, m.Keys())
	v, _ := m.Get("z")
	assert.String(t, "ZZ", v)

	m.Delete("z")
	tassert.Equal(t, []dispmodel.ThingID{"a"}, m.Keys())

	var empty dispmodel.Map[dispmodel.ThingID, string]
	tassert.True(t, empty.IsZero())
	_, ok := empty.Get("a")
	tassert.False(t, ok)
}

func TestEdgeIDFor(t *testing.T) {
	t.Parallel()

	tassert.Equal(t, dispmodel.EdgeID("edge_dep__12"), dispmodel.EdgeIDFor("edge_dep", 12))
}
