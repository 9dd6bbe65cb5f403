package tailwind

import (
	"strconv"
	"strings"

	"github.com/azriel91/disposition-sub001/lib/color"
)

var animations = map[string]struct {
	value     string
	keyframes string
}{
	"spin": {
		"spin 1s linear infinite",
		"@keyframes spin{to{transform:rotate(360deg)}}",
	},
	"ping": {
		"ping 1s cubic-bezier(0, 0, 0.2, 1) infinite",
		"@keyframes ping{75%,100%{transform:scale(2);opacity:0}}",
	},
	"pulse": {
		"pulse 2s cubic-bezier(0.4, 0, 0.6, 1) infinite",
		"@keyframes pulse{50%{opacity:.5}}",
	},
	"bounce": {
		"bounce 1s infinite",
		"@keyframes bounce{0%,100%{transform:translateY(-25%);animation-timing-function:cubic-bezier(0.8,0,1,1)}50%{transform:none;animation-timing-function:cubic-bezier(0,0,0.2,1)}}",
	},
}

var cursors = map[string]struct{}{
	"auto": {}, "default": {}, "pointer": {}, "wait": {}, "text": {}, "move": {},
	"help": {}, "not-allowed": {}, "none": {}, "context-menu": {}, "progress": {},
	"cell": {}, "crosshair": {}, "vertical-text": {}, "alias": {}, "copy": {},
	"no-drop": {}, "grab": {}, "grabbing": {}, "all-scroll": {}, "zoom-in": {}, "zoom-out": {},
}

func bracketed(s string) (string, bool) {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return decodeArbitrary(s[1 : len(s)-1]), true
	}
	return "", false
}

// colorValue resolves a palette token or an arbitrary color.
func colorValue(token string) (string, bool) {
	if v, ok := bracketed(token); ok {
		if isColorLiteral(v) {
			return v, true
		}
		return "", false
	}
	return color.Tailwind(token)
}

func isColorLiteral(v string) bool {
	if strings.HasPrefix(v, "#") || strings.HasPrefix(v, "rgb") || strings.HasPrefix(v, "hsl") {
		return true
	}
	_, err := color.Normalize(v)
	return err == nil && !isLength(v)
}

func isLength(v string) bool {
	v = strings.TrimSuffix(strings.TrimSuffix(v, "px"), "%")
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func one(prop, value string) []decl {
	return []decl{{prop, value}}
}

// utility returns the declarations of a utility without variants.
func (s *Stylesheet) utility(u string) ([]decl, []string, bool) {
	switch u {
	case "visible":
		return one("visibility", "visible"), nil, true
	case "invisible":
		return one("visibility", "hidden"), nil, true
	case "collapse":
		return one("visibility", "collapse"), nil, true
	case "fill-none":
		return one("fill", "none"), nil, true
	case "outline":
		return one("outline-style", "solid"), nil, true
	case "outline-none":
		return []decl{{"outline", "2px solid transparent"}, {"outline-offset", "2px"}}, nil, true
	}

	if v, ok := bracketed(u); ok {
		i := strings.IndexByte(v, ':')
		if i <= 0 {
			return nil, nil, false
		}
		return one(v[:i], v[i+1:]), nil, true
	}

	switch {
	case strings.HasPrefix(u, "fill-"):
		if v, ok := colorValue(strings.TrimPrefix(u, "fill-")); ok {
			return one("fill", v), nil, true
		}
	case strings.HasPrefix(u, "stroke-"):
		rest := strings.TrimPrefix(u, "stroke-")
		switch rest {
		case "0", "1", "2":
			return one("stroke-width", rest), nil, true
		case "none":
			return one("stroke", "none"), nil, true
		}
		if v, ok := bracketed(rest); ok && isLength(v) {
			return one("stroke-width", v), nil, true
		}
		if v, ok := colorValue(rest); ok {
			return one("stroke", v), nil, true
		}
	case strings.HasPrefix(u, "outline-"):
		rest := strings.TrimPrefix(u, "outline-")
		switch rest {
		case "dashed", "dotted", "double":
			return one("outline-style", rest), nil, true
		case "0", "1", "2", "4", "8":
			return one("outline-width", rest+"px"), nil, true
		}
		if v, ok := bracketed(rest); ok && isLength(v) {
			return one("outline-width", v), nil, true
		}
		if v, ok := colorValue(rest); ok {
			return one("outline-color", v), nil, true
		}
	case strings.HasPrefix(u, "opacity-"):
		rest := strings.TrimPrefix(u, "opacity-")
		if v, ok := bracketed(rest); ok {
			return one("opacity", v), nil, true
		}
		if n, err := strconv.Atoi(rest); err == nil && n >= 0 && n <= 100 {
			return one("opacity", strconv.FormatFloat(float64(n)/100, 'f', -1, 64)), nil, true
		}
	case strings.HasPrefix(u, "cursor-"):
		rest := strings.TrimPrefix(u, "cursor-")
		if v, ok := bracketed(rest); ok {
			return one("cursor", v), nil, true
		}
		if _, ok := cursors[rest]; ok {
			return one("cursor", rest), nil, true
		}
	case strings.HasPrefix(u, "animate-"):
		rest := strings.TrimPrefix(u, "animate-")
		if rest == "none" {
			return one("animation", "none"), nil, true
		}
		if a, ok := animations[rest]; ok {
			return one("animation", a.value), []string{a.keyframes}, true
		}
		if v, ok := bracketed(rest); ok {
			return one("animation", v), nil, true
		}
	case strings.HasPrefix(u, "translate-x-"), strings.HasPrefix(u, "translate-y-"):
		axis := u[len("translate-")]
		v, ok := bracketed(u[len("translate-x-"):])
		if !ok {
			return nil, nil, false
		}
		s.translate = true
		return []decl{
			{"--tw-translate-" + string(axis), v},
			{"transform", "translate(var(--tw-translate-x), var(--tw-translate-y))"},
		}, nil, true
	}
	return nil, nil, false
}
