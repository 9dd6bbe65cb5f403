// Package tailwind compiles the subset of tailwind utility classes used in
// diagrams into plain CSS.
//
// A class is a chain of variants and a utility separated by ":" outside of
// brackets, e.g. "group-has-[#a:focus-within]:hover:fill-slate-300".
package tailwind

import (
	"fmt"
	"sort"
	"strings"
)

// GroupHasFocus returns the variant prefix that applies a class while any of
// the elements with the given ids has focus within it. The root element must
// carry the "group" class.
func GroupHasFocus(ids ...string) string {
	var sb strings.Builder
	sb.WriteString("group-has-[")
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('#')
		sb.WriteString(EscapeArbitrary(id))
		sb.WriteString(":focus-within")
	}
	sb.WriteString("]:")
	return sb.String()
}

// EscapeArbitrary protects underscores in text placed in an arbitrary value,
// where a bare underscore stands for a space.
func EscapeArbitrary(s string) string {
	return strings.ReplaceAll(s, "_", `\_`)
}

// Arbitrary encodes s as an arbitrary value: spaces become underscores.
func Arbitrary(s string) string {
	return strings.ReplaceAll(EscapeArbitrary(s), " ", "_")
}

// decodeArbitrary reverses Arbitrary.
func decodeArbitrary(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\' && i+1 < len(s) && s[i+1] == '_':
			sb.WriteByte('_')
			i++
		case s[i] == '_':
			sb.WriteByte(' ')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// split breaks a class into its variants and utility.
func split(class string) (variants []string, utility string) {
	depth := 0
	start := 0
	for i := 0; i < len(class); i++ {
		switch class[i] {
		case '\\':
			i++
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case ':':
			if depth == 0 {
				variants = append(variants, class[start:i])
				start = i + 1
			}
		}
	}
	return variants, class[start:]
}

type decl struct {
	prop, value string
}

type rule struct {
	selector string
	decls    []decl
	rank     int
}

// Stylesheet accumulates the rules for a set of classes.
type Stylesheet struct {
	rules     []rule
	seen      map[string]struct{}
	keyframes []string
	kfSeen    map[string]struct{}
	translate bool
	// Unknown lists classes no rule could be generated for, in first seen
	// order.
	Unknown []string
}

func NewStylesheet() *Stylesheet {
	return &Stylesheet{
		seen:   make(map[string]struct{}),
		kfSeen: make(map[string]struct{}),
	}
}

// Add compiles each whitespace separated class in classes.
func (s *Stylesheet) Add(classes string) {
	for _, class := range strings.Fields(classes) {
		s.add(class)
	}
}

func (s *Stylesheet) add(class string) {
	if _, ok := s.seen[class]; ok {
		return
	}
	s.seen[class] = struct{}{}
	if class == "group" {
		return
	}

	variants, utility := split(class)
	decls, keyframes, ok := s.utility(utility)
	if !ok {
		s.Unknown = append(s.Unknown, class)
		return
	}
	selector, rank, ok := applyVariants("."+escapeSelector(class), variants)
	if !ok {
		s.Unknown = append(s.Unknown, class)
		return
	}
	for _, kf := range keyframes {
		if _, ok := s.kfSeen[kf]; !ok {
			s.kfSeen[kf] = struct{}{}
			s.keyframes = append(s.keyframes, kf)
		}
	}
	s.rules = append(s.rules, rule{selector: selector, decls: decls, rank: rank})
}

// variantRank orders rules so later variants override earlier ones at equal
// specificity, following tailwind's variant order.
var variantRank = map[string]int{
	"hover":        1,
	"focus":        2,
	"focus-within": 3,
	"active":       4,
	"group-hover":  5,
	"group-focus":  6,
}

const (
	arbitraryRank = 7
	groupHasRank  = 8
)

// applyVariants wraps the class selector in each variant, innermost
// (rightmost) first. Pseudo classes attach to the element carrying the class
// even when an arbitrary variant selects its children.
func applyVariants(class string, variants []string) (string, int, bool) {
	tmpl := "&"
	pseudo := ""
	rank := 0
	for i := len(variants) - 1; i >= 0; i-- {
		v := variants[i]
		r := 0
		switch {
		case v == "hover" || v == "focus" || v == "focus-within" || v == "active":
			pseudo += ":" + v
			r = variantRank[v]
		case v == "group-hover" || v == "group-focus":
			tmpl = ".group:" + strings.TrimPrefix(v, "group-") + " " + tmpl
			r = variantRank[v]
		case strings.HasPrefix(v, "group-has-[") && strings.HasSuffix(v, "]"):
			inner := decodeArbitrary(v[len("group-has-[") : len(v)-1])
			tmpl = ".group:has(" + inner + ") " + tmpl
			r = groupHasRank
		case strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") && strings.Contains(v, "&"):
			inner := decodeArbitrary(v[1 : len(v)-1])
			tmpl = strings.Replace(inner, "&", tmpl, 1)
			r = arbitraryRank
		default:
			return "", 0, false
		}
		if r > rank {
			rank = r
		}
	}
	return strings.Replace(tmpl, "&", class+pseudo, 1), rank, true
}

// escapeSelector escapes a class name for use in a CSS selector.
func escapeSelector(class string) string {
	var sb strings.Builder
	for i, r := range class {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '-', r == '_', r > 0x7f:
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				fmt.Fprintf(&sb, `\%x `, r)
			} else {
				sb.WriteRune(r)
			}
		default:
			sb.WriteByte('\\')
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// CSS renders the stylesheet: custom properties for transforms when used,
// then the rules ordered by variant, then the keyframes they reference.
func (s *Stylesheet) CSS() string {
	rules := make([]rule, len(s.rules))
	copy(rules, s.rules)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].rank < rules[j].rank
	})

	var sb strings.Builder
	if s.translate {
		sb.WriteString("*{--tw-translate-x:0;--tw-translate-y:0}\n")
	}
	for _, r := range rules {
		sb.WriteString(r.selector)
		sb.WriteByte('{')
		for i, d := range r.decls {
			if i > 0 {
				sb.WriteByte(';')
			}
			sb.WriteString(d.prop)
			sb.WriteByte(':')
			sb.WriteString(d.value)
		}
		sb.WriteString("}\n")
	}
	for _, kf := range s.keyframes {
		sb.WriteString(kf)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Compile returns the CSS for all classes in the given class strings.
func Compile(classes ...string) (css string, unknown []string) {
	s := NewStylesheet()
	for _, c := range classes {
		s.Add(c)
	}
	return s.CSS(), s.Unknown
}
