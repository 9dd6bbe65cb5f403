package dispcompiler

import (
	"strconv"
	"strings"

	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/lib/color"
)

type state struct {
	name    string
	variant string
}

var states = []state{
	{"normal", ""},
	{"hover", "hover:"},
	{"focus", "focus:"},
	{"active", "active:"},
}

const defaultShade = "500"

func first(a attrs, keys ...dispmodel.ThemeAttr) string {
	for _, k := range keys {
		if v := a[k]; v != "" {
			return v
		}
	}
	return ""
}

// colorToken turns a color and shade into the token used in utility class
// names: "slate-300", "white", or "[#aabbcc]" for anything else CSS accepts.
func (c *compiler) colorToken(id string, attr dispmodel.ThemeAttr, name, shade string) (string, bool) {
	switch {
	case color.IsKeyword(name):
		return name, true
	case color.IsPaletteName(name):
		if shade == "" {
			shade = defaultShade
		}
		if _, ok := color.Palette(name, shade); !ok {
			c.issuef(dispmodel.ThemeAttrUnknown, []string{id, string(attr)},
				"%s of %q: unknown shade %q of %s", attr, id, shade, name)
			return "", false
		}
		return name + "-" + shade, true
	}
	hex, err := color.Normalize(name)
	if err != nil {
		c.issuef(dispmodel.ThemeAttrUnknown, []string{id, string(attr)},
			"%s of %q: %v", attr, id, err)
		return "", false
	}
	return "[" + hex + "]", true
}

// paint emits one class per state for fill or stroke. The normal state
// always resolves, falling back to shape_color. The other states only emit
// when a shade or color is set for them.
func (c *compiler) paint(id string, a attrs, utility string, colorAttrs, shadeAttrs [5]dispmodel.ThemeAttr) []string {
	// [0] is the stateless attr, [1..4] follow states.
	var out []string
	for i, s := range states {
		stateColor, stateShade := a[colorAttrs[i+1]], a[shadeAttrs[i+1]]
		if i > 0 && stateColor == "" && stateShade == "" {
			continue
		}
		name := first(a, colorAttrs[i+1], colorAttrs[0], dispmodel.AttrShapeColor)
		if name == "" {
			continue
		}
		shade := first(a, shadeAttrs[i+1], shadeAttrs[0])
		token, ok := c.colorToken(id, colorAttrs[i+1], name, shade)
		if !ok {
			continue
		}
		out = append(out, s.variant+utility+"-"+token)
	}
	return out
}

var fillColorAttrs = [5]dispmodel.ThemeAttr{
	dispmodel.AttrFillColor, dispmodel.AttrFillColorNormal, dispmodel.AttrFillColorHover, dispmodel.AttrFillColorFocus, dispmodel.AttrFillColorActive,
}

var fillShadeAttrs = [5]dispmodel.ThemeAttr{
	dispmodel.AttrFillShade, dispmodel.AttrFillShadeNormal, dispmodel.AttrFillShadeHover, dispmodel.AttrFillShadeFocus, dispmodel.AttrFillShadeActive,
}

var strokeColorAttrs = [5]dispmodel.ThemeAttr{
	dispmodel.AttrStrokeColor, dispmodel.AttrStrokeColorNormal, dispmodel.AttrStrokeColorHover, dispmodel.AttrStrokeColorFocus, dispmodel.AttrStrokeColorActive,
}

var strokeShadeAttrs = [5]dispmodel.ThemeAttr{
	dispmodel.AttrStrokeShade, dispmodel.AttrStrokeShadeNormal, dispmodel.AttrStrokeShadeHover, dispmodel.AttrStrokeShadeFocus, dispmodel.AttrStrokeShadeActive,
}

var strokeStyleAttrs = [5]dispmodel.ThemeAttr{
	dispmodel.AttrStrokeStyle, dispmodel.AttrStrokeStyleNormal, dispmodel.AttrStrokeStyleHover, dispmodel.AttrStrokeStyleFocus, dispmodel.AttrStrokeStyleActive,
}

// TextStrokeReset keeps the node's stroke off its text.
const TextStrokeReset = "[&>text]:stroke-none"

// DashArray maps a stroke_style value to an arbitrary property class.
func DashArray(style string) string {
	switch style {
	case "solid":
		return "[stroke-dasharray:none]"
	case "dashed":
		return "[stroke-dasharray:3]"
	case "dotted":
		return "[stroke-dasharray:2]"
	default:
		return "[stroke-dasharray:" + strings.ReplaceAll(strings.TrimSpace(style), " ", "_") + "]"
	}
}

func widthClass(utility, v string, named ...string) string {
	for _, n := range named {
		if v == n {
			return utility + "-" + v
		}
	}
	return utility + "-[" + v + "px]"
}

// classes renders folded attrs as utility classes in a fixed order.
func (c *compiler) classes(id string, a attrs, isNode bool) []string {
	var out []string

	switch v := a[dispmodel.AttrVisibility]; v {
	case "":
	case "visible", "invisible", "collapse":
		out = append(out, v)
	case "hidden":
		out = append(out, "invisible")
	default:
		c.issuef(dispmodel.ThemeAttrUnknown, []string{id, string(dispmodel.AttrVisibility)},
			"visibility of %q: expected visible, invisible or collapse, got %q", id, v)
	}

	out = append(out, c.paint(id, a, "fill", fillColorAttrs, fillShadeAttrs)...)
	out = append(out, c.paint(id, a, "stroke", strokeColorAttrs, strokeShadeAttrs)...)

	for i, s := range states {
		v := a[strokeStyleAttrs[i+1]]
		if i == 0 && v == "" {
			v = a[strokeStyleAttrs[0]]
		}
		if v != "" {
			out = append(out, s.variant+DashArray(v))
		}
	}
	if v := a[dispmodel.AttrStrokeWidth]; v != "" {
		out = append(out, widthClass("stroke", v, "0", "1", "2"))
	}

	if v := a[dispmodel.AttrOutlineWidth]; v != "" {
		out = append(out, widthClass("outline", v, "0", "1", "2", "4", "8"))
	}
	if v := a[dispmodel.AttrOutlineStyle]; v != "" {
		if v == "solid" {
			out = append(out, "outline")
		} else {
			out = append(out, "outline-"+v)
		}
	}
	if name := a[dispmodel.AttrOutlineColor]; name != "" {
		if token, ok := c.colorToken(id, dispmodel.AttrOutlineColor, name, a[dispmodel.AttrOutlineShade]); ok {
			out = append(out, "outline-"+token)
		}
	}

	if isNode {
		if name := a[dispmodel.AttrTextColor]; name != "" {
			shade := a[dispmodel.AttrTextShade]
			if shade == "" {
				shade = "900"
			}
			if token, ok := c.colorToken(id, dispmodel.AttrTextColor, name, shade); ok {
				out = append(out, "[&>text]:fill-"+token)
			}
		} else if fill := c.normalFill(a); fill != "" {
			out = append(out, "[&>text]:fill-"+color.ContrastText(fill))
		}
		// stroke is inherited, so text would otherwise take the shape's
		// outline.
		out = append(out, TextStrokeReset)
	}

	if v := a[dispmodel.AttrOpacity]; v != "" {
		if cls, ok := opacityClass(v); ok {
			out = append(out, cls)
		} else {
			c.issuef(dispmodel.ThemeAttrUnknown, []string{id, string(dispmodel.AttrOpacity)},
				"opacity of %q: expected a number, got %q", id, v)
		}
	}
	if v := a[dispmodel.AttrAnimate]; v != "" {
		switch v {
		case "none", "spin", "ping", "pulse", "bounce":
			out = append(out, "animate-"+v)
		default:
			out = append(out, "animate-["+strings.ReplaceAll(v, " ", "_")+"]")
		}
	}
	if v := a[dispmodel.AttrCursor]; v != "" {
		out = append(out, "cursor-"+v)
	}
	if v := a[dispmodel.AttrExtra]; v != "" {
		out = append(out, strings.Fields(v)...)
	}
	return out
}

// normalFill is the fill a node shows when idle, as a palette token or raw
// color, or "" when none is set.
func (c *compiler) normalFill(a attrs) string {
	name := first(a, dispmodel.AttrFillColorNormal, dispmodel.AttrFillColor, dispmodel.AttrShapeColor)
	if name == "" || !color.IsPaletteName(name) {
		return name
	}
	shade := first(a, dispmodel.AttrFillShadeNormal, dispmodel.AttrFillShade)
	if shade == "" {
		shade = defaultShade
	}
	return name + "-" + shade
}

// opacityClass accepts a fraction (0.5) or a percentage (50).
func opacityClass(v string) (string, bool) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return "", false
	}
	if f <= 1 {
		f *= 100
	}
	if f > 100 {
		return "", false
	}
	pct := int(f + .5)
	if float64(pct) == f && pct%5 == 0 {
		return "opacity-" + strconv.Itoa(pct), true
	}
	return "opacity-[" + strconv.FormatFloat(f/100, 'f', -1, 64) + "]", true
}

// prefixed returns the classes of after missing from before, each behind
// prefix.
func prefixed(prefix string, before, after []string) []string {
	seen := make(map[string]struct{}, len(before))
	for _, cls := range before {
		seen[cls] = struct{}{}
	}
	var out []string
	for _, cls := range after {
		if _, ok := seen[cls]; !ok {
			out = append(out, prefix+cls)
		}
	}
	return out
}
