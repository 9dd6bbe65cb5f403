package dispcompiler

import (
	"strings"

	"github.com/azriel91/disposition-sub001/dispmodel"
)

// attrs is the folded value of every theme attribute set on an entity.
type attrs map[dispmodel.ThemeAttr]string

func (a attrs) clone() attrs {
	out := make(attrs, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// layer is one source of styles: the same key looked up in the base
// diagram and then in the user's diagram.
type layer struct {
	base, user dispmodel.ThemeStyles
}

func (l layer) partials(key dispmodel.IdOrDefaults) []dispmodel.CssClassPartials {
	var out []dispmodel.CssClassPartials
	if p, ok := l.base.Get(key); ok {
		out = append(out, p)
	}
	if p, ok := l.user.Get(key); ok {
		out = append(out, p)
	}
	return out
}

// mergeAliases returns the base aliases overlaid with the user's. A user
// alias replaces a base alias of the same name.
func (c *compiler) mergeAliases() {
	c.aliases = c.base.ThemeDefault.StyleAliases.Clone()
	c.aliases.Merge(c.in.ThemeDefault.StyleAliases)
	for _, p := range c.aliases.Pairs() {
		c.checkAttrs("style_aliases."+string(p.Key), p.Value)
	}
}

// checkAttrs reports attributes that are not recognised.
func (c *compiler) checkAttrs(where string, p dispmodel.CssClassPartials) {
	for _, a := range p.Attrs.Keys() {
		if !a.Known() {
			c.issuef(dispmodel.ThemeAttrUnknown, []string{where, string(a)},
				"unknown theme attribute %q in %s, it is ignored", a, where)
		}
	}
}

// apply folds p into a: aliases expand first, in order, then p's own attrs
// override them.
func (c *compiler) apply(a attrs, p dispmodel.CssClassPartials) {
	for _, alias := range p.StyleAliasesApplied {
		c.applyAlias(a, alias, nil)
	}
	for _, pair := range p.Attrs.Pairs() {
		if pair.Key.Known() {
			a[pair.Key] = pair.Value
		}
	}
}

// applyAlias expands alias into a. path is the chain of aliases currently
// being expanded; revisiting one of them is a cycle, which is reported and
// not expanded any further.
func (c *compiler) applyAlias(a attrs, alias dispmodel.StyleAlias, path []dispmodel.StyleAlias) {
	for _, seen := range path {
		if seen == alias {
			chain := make([]string, 0, len(path)+1)
			for _, p := range path {
				chain = append(chain, string(p))
			}
			chain = append(chain, string(alias))
			c.issuef(dispmodel.StyleAliasCycle, chain,
				"style alias cycle %s, expansion stops at %q", strings.Join(chain, " -> "), alias)
			return
		}
	}
	p, ok := c.aliases.Get(alias)
	if !ok {
		referrer := "style_aliases_applied"
		if len(path) > 0 {
			referrer = string(path[len(path)-1])
		}
		c.unresolved("style alias", referrer, string(alias))
		return
	}
	path = append(path[:len(path):len(path)], alias)
	for _, inner := range p.StyleAliasesApplied {
		c.applyAlias(a, inner, path)
	}
	for _, pair := range p.Attrs.Pairs() {
		if pair.Key.Known() {
			a[pair.Key] = pair.Value
		}
	}
}

// fold computes the attrs of an entity. keys are the theme keys that name
// the entity, least specific first: an edge is named by its group and then
// its own id. The order is
//
//	base_styles[defaults]
//	for each type: types[type][defaults], types[type][key]...
//	base_styles[key]...
//
// with the base diagram's value preceding the user's at every step.
func (c *compiler) fold(defaults dispmodel.IdOrDefaults, keys []dispmodel.IdOrDefaults, types []dispmodel.EntityTypeID) attrs {
	a := make(attrs)
	baseStyles := layer{c.base.ThemeDefault.BaseStyles, c.in.ThemeDefault.BaseStyles}

	for _, p := range baseStyles.partials(defaults) {
		c.apply(a, p)
	}
	for _, t := range types {
		bt, _ := c.base.ThemeTypesStyles.Get(t)
		ut, _ := c.in.ThemeTypesStyles.Get(t)
		typeStyles := layer{bt, ut}
		for _, p := range typeStyles.partials(defaults) {
			c.apply(a, p)
		}
		for _, k := range keys {
			for _, p := range typeStyles.partials(k) {
				c.apply(a, p)
			}
		}
	}
	for _, k := range keys {
		for _, p := range baseStyles.partials(k) {
			c.apply(a, p)
		}
	}
	return a
}

// overlay returns a copy of a with the partials found under each key of l
// applied in order.
func (c *compiler) overlay(a attrs, l layer, keys ...dispmodel.IdOrDefaults) attrs {
	out := a.clone()
	for _, k := range keys {
		for _, p := range l.partials(k) {
			c.apply(out, p)
		}
	}
	return out
}
