package dispcompiler

import (
	"strings"

	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/lib/tailwind"
)

// classList is an ordered set of classes.
type classList struct {
	items []string
	seen  map[string]struct{}
}

func (l *classList) add(classes ...string) {
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	for _, cls := range classes {
		if _, ok := l.seen[cls]; ok {
			continue
		}
		l.seen[cls] = struct{}{}
		l.items = append(l.items, cls)
	}
}

func (l *classList) String() string {
	return strings.Join(l.items, " ")
}

func (c *compiler) compileStyles() {
	c.mergeAliases()
	c.checkThemeKeys()

	lists := make(map[dispmodel.ID]*classList)
	plain := make(map[dispmodel.ID][]string)
	var order []dispmodel.ID
	list := func(id dispmodel.ID) *classList {
		l, ok := lists[id]
		if !ok {
			l = &classList{}
			lists[id] = l
			order = append(order, id)
		}
		return l
	}
	types := func(id dispmodel.ID) []dispmodel.EntityTypeID {
		t, _ := c.ir.EntityTypes.Get(id)
		return t.Items()
	}

	for _, id := range c.ir.Nodes.Keys() {
		eid := dispmodel.ID(id)
		a := c.fold(dispmodel.NodeDefaults, []dispmodel.IdOrDefaults{dispmodel.IdOrDefaults(id)}, types(eid))
		c.folds[eid] = a
		plain[eid] = c.classes(string(id), a, true)
		list(eid).add(plain[eid]...)
	}
	for _, gp := range c.ir.EdgeGroups.Pairs() {
		for _, e := range gp.Value.Edges {
			eid := dispmodel.ID(e.ID)
			keys := []dispmodel.IdOrDefaults{dispmodel.IdOrDefaults(gp.Key), dispmodel.IdOrDefaults(e.ID)}
			a := c.fold(dispmodel.EdgeDefaults, keys, types(eid))
			c.folds[eid] = a
			plain[eid] = c.classes(string(e.ID), a, false)
			list(eid).add(plain[eid]...)
		}
	}

	// focus gives target the classes of over while the node trigger has
	// focus.
	focus := func(trigger string, target dispmodel.ID, isNode bool, over attrs) {
		after := c.classes(string(target), over, isNode)
		list(target).add(prefixed(tailwind.GroupHasFocus(trigger), plain[target], after)...)
	}

	c.compileStepFocus(focus)
	c.compileThingDependencyFocus(focus)
	c.compileTagFocus(focus)

	c.ir.TailwindClasses = dispmodel.NewMap[dispmodel.ID, string]()
	for _, id := range order {
		c.ir.TailwindClasses.Set(id, lists[id].String())
	}
}

type focusFunc func(trigger string, target dispmodel.ID, isNode bool, over attrs)

// compileStepFocus styles the edges of the interaction groups a step lists
// with process_step_selected_styles while the step has focus.
func (c *compiler) compileStepFocus(focus focusFunc) {
	l := layer{c.base.ThemeDefault.ProcessStepSelectedStyles, c.in.ThemeDefault.ProcessStepSelectedStyles}
	for _, pp := range c.in.Processes.Pairs() {
		for _, sp := range pp.Value.StepThingInteractions.Pairs() {
			step := sp.Key
			if !pp.Value.Steps.Has(step) {
				c.unresolved("step_thing_interactions of process", string(pp.Key), string(step))
				continue
			}
			for _, gid := range sp.Value.Items() {
				g, ok := c.ir.EdgeGroups.Get(gid)
				if !ok {
					c.unresolved("step_thing_interactions of step", string(step), string(gid))
					continue
				}
				for _, e := range g.Edges {
					eid := dispmodel.ID(e.ID)
					focus(string(step), eid, false, c.overlay(c.folds[eid], l,
						dispmodel.EdgeDefaults, dispmodel.IdOrDefaults(gid), dispmodel.IdOrDefaults(e.ID)))
				}
			}
		}
	}
}

// compileThingDependencyFocus styles a thing's dependency edges, and the
// thing at the other end, while the thing has focus.
func (c *compiler) compileThingDependencyFocus(focus focusFunc) {
	l := layer{c.base.ThemeThingDependenciesStyles, c.in.ThemeThingDependenciesStyles}
	for _, gp := range c.ir.EdgeGroups.Pairs() {
		if gp.Value.Relation != dispir.Dependency {
			continue
		}
		for _, e := range gp.Value.Edges {
			eid := dispmodel.ID(e.ID)
			edgeOver := c.overlay(c.folds[eid], l,
				dispmodel.EdgeDefaults, dispmodel.IdOrDefaults(gp.Key), dispmodel.IdOrDefaults(e.ID))
			for _, end := range [][2]dispir.NodeID{{e.From, e.To}, {e.To, e.From}} {
				trigger, other := string(end[0]), dispmodel.ID(end[1])
				focus(trigger, eid, false, edgeOver)
				if string(other) != trigger {
					focus(trigger, other, true, c.overlay(c.folds[other], l,
						dispmodel.NodeDefaults, dispmodel.IdOrDefaults(other)))
				}
				if e.From == e.To {
					break
				}
			}
		}
	}
}

// compileTagFocus styles the things of a tag while the tag has focus.
func (c *compiler) compileTagFocus(focus focusFunc) {
	styles := func(m dispmodel.Map[dispmodel.TagIdOrDefaults, dispmodel.ThemeStyles], k dispmodel.TagIdOrDefaults) dispmodel.ThemeStyles {
		s, _ := m.Get(k)
		return s
	}
	defaults := layer{
		styles(c.base.ThemeTagThingsFocus, dispmodel.TagDefaults),
		styles(c.in.ThemeTagThingsFocus, dispmodel.TagDefaults),
	}

	for _, tp := range c.in.TagThings.Pairs() {
		tag := tp.Key
		if !c.is(string(tag), entityTag) {
			c.unresolved("tag_things", "tag_things", string(tag))
			continue
		}
		own := layer{
			styles(c.base.ThemeTagThingsFocus, dispmodel.TagIdOrDefaults(tag)),
			styles(c.in.ThemeTagThingsFocus, dispmodel.TagIdOrDefaults(tag)),
		}
		for _, thing := range tp.Value.Items() {
			if !c.is(string(thing), entityThing) {
				c.unresolved("tag_things of tag", string(tag), string(thing))
				continue
			}
			key := dispmodel.IdOrDefaults(thing)
			over := c.overlay(c.folds[dispmodel.ID(thing)], defaults, dispmodel.NodeDefaults, key)
			over = c.overlay(over, own, dispmodel.NodeDefaults, key)
			focus(string(tag), dispmodel.ID(thing), true, over)
		}
	}
}

// checkThemeKeys reports unknown attributes and keys naming entities that
// do not exist in the user's theme maps.
func (c *compiler) checkThemeKeys() {
	isEntity := func(k dispmodel.IdOrDefaults) bool {
		_, ok := c.entities[string(k)]
		return ok
	}
	check := func(where string, s dispmodel.ThemeStyles, valid func(dispmodel.IdOrDefaults) bool) {
		for _, p := range s.Pairs() {
			c.checkAttrs(where+"."+string(p.Key), p.Value)
			if !valid(p.Key) {
				c.unresolved(where, where, string(p.Key))
			}
		}
	}

	check("theme_default.base_styles", c.in.ThemeDefault.BaseStyles, func(k dispmodel.IdOrDefaults) bool {
		return k.IsDefaults() || isEntity(k)
	})
	check("theme_default.process_step_selected_styles", c.in.ThemeDefault.ProcessStepSelectedStyles, func(k dispmodel.IdOrDefaults) bool {
		return k == dispmodel.EdgeDefaults || c.is(string(k), entityEdgeGroup, entityEdge)
	})
	for _, tp := range c.in.ThemeTypesStyles.Pairs() {
		check("theme_types_styles."+string(tp.Key), tp.Value, func(k dispmodel.IdOrDefaults) bool {
			return k.IsDefaults() || isEntity(k)
		})
	}
	check("theme_thing_dependencies_styles", c.in.ThemeThingDependenciesStyles, func(k dispmodel.IdOrDefaults) bool {
		return k.IsDefaults() || c.is(string(k), entityThing, entityEdgeGroup, entityEdge)
	})
	for _, tp := range c.in.ThemeTagThingsFocus.Pairs() {
		where := "theme_tag_things_focus." + string(tp.Key)
		if tp.Key != dispmodel.TagDefaults && !c.is(string(tp.Key), entityTag) {
			c.unresolved("theme_tag_things_focus", "theme_tag_things_focus", string(tp.Key))
		}
		check(where, tp.Value, func(k dispmodel.IdOrDefaults) bool {
			return k == dispmodel.NodeDefaults || c.is(string(k), entityThing)
		})
	}
}
