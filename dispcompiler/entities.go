package dispcompiler

import (
	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/dispthemes"
)

func (c *compiler) compileEntityMaps() {
	c.ir.NodeCopyText = dispmodel.NewMap[dispir.NodeID, string]()
	for _, p := range c.in.ThingCopyText.Pairs() {
		if !c.is(string(p.Key), entityThing) {
			c.unresolved("thing_copy_text", "thing_copy_text", string(p.Key))
		}
	}
	for _, p := range c.in.Things.Pairs() {
		text := p.Value
		if override, ok := c.in.ThingCopyText.Get(p.Key); ok {
			text = override
		}
		c.ir.NodeCopyText.Set(dispir.NodeID(p.Key), text)
	}

	c.ir.EntityDescs = c.resolvedText("entity_descs", c.in.EntityDescs)
	c.ir.EntityTooltips = c.resolvedText("entity_tooltips", c.in.EntityTooltips)
}

func (c *compiler) resolvedText(container string, m dispmodel.Map[dispmodel.ID, string]) dispmodel.Map[dispmodel.ID, string] {
	out := dispmodel.NewMap[dispmodel.ID, string]()
	for _, p := range m.Pairs() {
		if _, ok := c.entities[string(p.Key)]; !ok {
			c.unresolved(container, container, string(p.Key))
			continue
		}
		out.Set(p.Key, p.Value)
	}
	return out
}

// compileEntityTypes gives every node and edge its default type, then the
// type declared in entity_types. An edge also takes the type declared for
// its group.
func (c *compiler) compileEntityTypes() {
	c.ir.EntityTypes = dispmodel.NewMap[dispmodel.ID, dispmodel.Set[dispmodel.EntityTypeID]]()

	for _, p := range c.in.EntityTypes.Pairs() {
		if _, ok := c.entities[string(p.Key)]; !ok {
			c.unresolved("entity_types", "entity_types", string(p.Key))
		}
	}
	userType := func(id string) (dispmodel.EntityTypeID, bool) {
		return c.in.EntityTypes.Get(dispmodel.ID(id))
	}

	for _, p := range c.ir.NodeKinds.Pairs() {
		types := dispmodel.NewSet(dispthemes.NodeType(p.Value))
		if t, ok := userType(string(p.Key)); ok {
			types.Add(t)
		}
		c.ir.EntityTypes.Set(dispmodel.ID(p.Key), types)
	}
	for _, gp := range c.ir.EdgeGroups.Pairs() {
		g := gp.Value
		for _, e := range g.Edges {
			types := dispmodel.NewSet(dispthemes.EdgeType(g.Relation, g.Kind, e.Direction))
			if t, ok := userType(string(gp.Key)); ok {
				types.Add(t)
			}
			if t, ok := userType(string(e.ID)); ok {
				types.Add(t)
			}
			c.ir.EntityTypes.Set(dispmodel.ID(e.ID), types)
		}
	}
}
