package dispmodel

import (
	"gopkg.in/yaml.v3"
)

// ThemeAttr is a presentational axis that theme styles can set.
type ThemeAttr string

const (
	AttrShapeColor ThemeAttr = "shape_color"

	AttrFillColor       ThemeAttr = "fill_color"
	AttrFillColorNormal ThemeAttr = "fill_color_normal"
	AttrFillColorHover  ThemeAttr = "fill_color_hover"
	AttrFillColorFocus  ThemeAttr = "fill_color_focus"
	AttrFillColorActive ThemeAttr = "fill_color_active"
	AttrFillShade       ThemeAttr = "fill_shade"
	AttrFillShadeNormal ThemeAttr = "fill_shade_normal"
	AttrFillShadeHover  ThemeAttr = "fill_shade_hover"
	AttrFillShadeFocus  ThemeAttr = "fill_shade_focus"
	AttrFillShadeActive ThemeAttr = "fill_shade_active"

	AttrStrokeColor       ThemeAttr = "stroke_color"
	AttrStrokeColorNormal ThemeAttr = "stroke_color_normal"
	AttrStrokeColorHover  ThemeAttr = "stroke_color_hover"
	AttrStrokeColorFocus  ThemeAttr = "stroke_color_focus"
	AttrStrokeColorActive ThemeAttr = "stroke_color_active"
	AttrStrokeShade       ThemeAttr = "stroke_shade"
	AttrStrokeShadeNormal ThemeAttr = "stroke_shade_normal"
	AttrStrokeShadeHover  ThemeAttr = "stroke_shade_hover"
	AttrStrokeShadeFocus  ThemeAttr = "stroke_shade_focus"
	AttrStrokeShadeActive ThemeAttr = "stroke_shade_active"
	AttrStrokeStyle       ThemeAttr = "stroke_style"
	AttrStrokeStyleNormal ThemeAttr = "stroke_style_normal"
	AttrStrokeStyleHover  ThemeAttr = "stroke_style_hover"
	AttrStrokeStyleFocus  ThemeAttr = "stroke_style_focus"
	AttrStrokeStyleActive ThemeAttr = "stroke_style_active"
	AttrStrokeWidth       ThemeAttr = "stroke_width"

	AttrOutlineColor ThemeAttr = "outline_color"
	AttrOutlineShade ThemeAttr = "outline_shade"
	AttrOutlineStyle ThemeAttr = "outline_style"
	AttrOutlineWidth ThemeAttr = "outline_width"

	AttrTextColor ThemeAttr = "text_color"
	AttrTextShade ThemeAttr = "text_shade"

	AttrPadding       ThemeAttr = "padding"
	AttrPaddingX      ThemeAttr = "padding_x"
	AttrPaddingY      ThemeAttr = "padding_y"
	AttrPaddingTop    ThemeAttr = "padding_top"
	AttrPaddingRight  ThemeAttr = "padding_right"
	AttrPaddingBottom ThemeAttr = "padding_bottom"
	AttrPaddingLeft   ThemeAttr = "padding_left"
	AttrMargin        ThemeAttr = "margin"
	AttrMarginX       ThemeAttr = "margin_x"
	AttrMarginY       ThemeAttr = "margin_y"
	AttrMarginTop     ThemeAttr = "margin_top"
	AttrMarginRight   ThemeAttr = "margin_right"
	AttrMarginBottom  ThemeAttr = "margin_bottom"
	AttrMarginLeft    ThemeAttr = "margin_left"
	AttrGap           ThemeAttr = "gap"

	AttrRadius            ThemeAttr = "radius"
	AttrRadiusTopLeft     ThemeAttr = "radius_top_left"
	AttrRadiusTopRight    ThemeAttr = "radius_top_right"
	AttrRadiusBottomLeft  ThemeAttr = "radius_bottom_left"
	AttrRadiusBottomRight ThemeAttr = "radius_bottom_right"
	AttrCircleRadius      ThemeAttr = "circle_radius"

	AttrOpacity    ThemeAttr = "opacity"
	AttrVisibility ThemeAttr = "visibility"
	AttrAnimate    ThemeAttr = "animate"
	AttrCursor     ThemeAttr = "cursor"
	// AttrExtra is appended to the class string verbatim.
	AttrExtra ThemeAttr = "extra"
)

var knownAttrs = map[ThemeAttr]struct{}{}

func init() {
	for _, a := range []ThemeAttr{
		AttrShapeColor,
		AttrFillColor, AttrFillColorNormal, AttrFillColorHover, AttrFillColorFocus, AttrFillColorActive,
		AttrFillShade, AttrFillShadeNormal, AttrFillShadeHover, AttrFillShadeFocus, AttrFillShadeActive,
		AttrStrokeColor, AttrStrokeColorNormal, AttrStrokeColorHover, AttrStrokeColorFocus, AttrStrokeColorActive,
		AttrStrokeShade, AttrStrokeShadeNormal, AttrStrokeShadeHover, AttrStrokeShadeFocus, AttrStrokeShadeActive,
		AttrStrokeStyle, AttrStrokeStyleNormal, AttrStrokeStyleHover, AttrStrokeStyleFocus, AttrStrokeStyleActive,
		AttrStrokeWidth,
		AttrOutlineColor, AttrOutlineShade, AttrOutlineStyle, AttrOutlineWidth,
		AttrTextColor, AttrTextShade,
		AttrPadding, AttrPaddingX, AttrPaddingY, AttrPaddingTop, AttrPaddingRight, AttrPaddingBottom, AttrPaddingLeft,
		AttrMargin, AttrMarginX, AttrMarginY, AttrMarginTop, AttrMarginRight, AttrMarginBottom, AttrMarginLeft,
		AttrGap,
		AttrRadius, AttrRadiusTopLeft, AttrRadiusTopRight, AttrRadiusBottomLeft, AttrRadiusBottomRight,
		AttrCircleRadius,
		AttrOpacity, AttrVisibility, AttrAnimate, AttrCursor, AttrExtra,
	} {
		knownAttrs[a] = struct{}{}
	}
}

// Known reports whether a is a recognised attribute.
func (a ThemeAttr) Known() bool {
	_, ok := knownAttrs[a]
	return ok
}

const styleAliasesAppliedKey = "style_aliases_applied"

// CssClassPartials is one entry of a theme: aliases to expand, then attrs
// that override them. In YAML the attrs sit beside style_aliases_applied.
type CssClassPartials struct {
	StyleAliasesApplied []StyleAlias
	Attrs               Map[ThemeAttr, string]
}

func (p CssClassPartials) IsZero() bool {
	return len(p.StyleAliasesApplied) == 0 && p.Attrs.Len() == 0
}

func (p *CssClassPartials) UnmarshalYAML(n *yaml.Node) error {
	*p = CssClassPartials{}
	n = deref(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return parseFailure(n, "expected a mapping of theme attributes, got %s", kindName(n))
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], deref(n.Content[i+1])
		if kn.Value == styleAliasesAppliedKey {
			aliases := NewSet[StyleAlias]()
			if err := aliases.UnmarshalYAML(vn); err != nil {
				return err
			}
			p.StyleAliasesApplied = aliases.Items()
			continue
		}
		attr := ThemeAttr(kn.Value)
		if p.Attrs.Has(attr) {
			return (&Error{Kind: DuplicateKey, ID: kn.Value}).at(kn)
		}
		if vn.Kind != yaml.ScalarNode {
			return parseFailure(vn, "theme attribute %q must be a scalar, got %s", kn.Value, kindName(vn))
		}
		p.Attrs.Set(attr, vn.Value)
	}
	return nil
}

func (p CssClassPartials) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(p.StyleAliasesApplied) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, a := range p.StyleAliasesApplied {
			seq.Content = append(seq.Content, strNode(string(a)))
		}
		n.Content = append(n.Content, strNode(styleAliasesAppliedKey), seq)
	}
	for _, pair := range p.Attrs.Pairs() {
		n.Content = append(n.Content, strNode(string(pair.Key)), strNode(pair.Value))
	}
	return n, nil
}

func strNode(s string) *yaml.Node {
	n := &yaml.Node{}
	_ = n.Encode(s)
	return n
}

// ThemeStyles maps node_defaults, edge_defaults or an entity id to the
// classes applied to it.
type ThemeStyles = Map[IdOrDefaults, CssClassPartials]

type ThemeDefault struct {
	StyleAliases              Map[StyleAlias, CssClassPartials] `yaml:"style_aliases,omitempty"`
	BaseStyles                ThemeStyles                       `yaml:"base_styles,omitempty"`
	ProcessStepSelectedStyles ThemeStyles                       `yaml:"process_step_selected_styles,omitempty"`
}

func (t ThemeDefault) IsZero() bool {
	return t.StyleAliases.Len() == 0 && t.BaseStyles.Len() == 0 && t.ProcessStepSelectedStyles.Len() == 0
}

func (t *ThemeDefault) UnmarshalYAML(n *yaml.Node) error {
	return decodeStruct(n, "theme_default", t)
}
