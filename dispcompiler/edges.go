package dispcompiler

import (
	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
)

// Expand turns a group's thing list into concrete edges:
//
//	sequence  [a b c] -> a->b b->c
//	cyclic    [a b c] -> a->b b->c c->a     [a] -> a->a
//	symmetric [a b c] -> a->b b->c c->b b->a [a] -> a->a a->a
//
// Edge ids are "{group}__{index}".
func Expand(group dispmodel.EdgeGroupID, kind dispmodel.EdgeKindName, things []dispmodel.ThingID) []dispir.Edge {
	n := len(things)
	if n == 0 || n < kind.MinThings() {
		return nil
	}
	var edges []dispir.Edge
	add := func(from, to dispmodel.ThingID, dir dispir.EdgeDirection) {
		edges = append(edges, dispir.Edge{
			ID:        dispmodel.EdgeIDFor(group, len(edges)),
			From:      dispir.NodeID(from),
			To:        dispir.NodeID(to),
			Direction: dir,
		})
	}

	switch kind {
	case dispmodel.Sequence:
		for i := 0; i+1 < n; i++ {
			add(things[i], things[i+1], dispir.Forward)
		}
	case dispmodel.Cyclic:
		if n == 1 {
			add(things[0], things[0], dispir.Forward)
			break
		}
		for i := 0; i+1 < n; i++ {
			add(things[i], things[i+1], dispir.Forward)
		}
		add(things[n-1], things[0], dispir.Forward)
	case dispmodel.Symmetric:
		if n == 1 {
			add(things[0], things[0], dispir.Forward)
			add(things[0], things[0], dispir.Reverse)
			break
		}
		for i := 0; i+1 < n; i++ {
			add(things[i], things[i+1], dispir.Forward)
		}
		for i := n - 1; i > 0; i-- {
			add(things[i], things[i-1], dispir.Reverse)
		}
	}
	return edges
}

func (c *compiler) compileEdges() error {
	c.ir.EdgeGroups = dispmodel.NewMap[dispmodel.EdgeGroupID, dispir.EdgeGroup]()

	compile := func(rel dispir.Relation, container string, groups dispmodel.Map[dispmodel.EdgeGroupID, dispmodel.EdgeKind]) error {
		for _, p := range groups.Pairs() {
			if c.ir.EdgeGroups.Has(p.Key) {
				c.issuef(dispmodel.DuplicateEdgeGroup, []string{string(p.Key)},
					"edge group %q is declared in both thing_dependencies and thing_interactions, the interaction is ignored", p.Key)
				continue
			}
			if err := c.declare(string(p.Key), entityEdgeGroup, container); err != nil {
				return err
			}

			resolved := 0
			missing := make(map[dispir.NodeID]bool)
			for _, t := range p.Value.Things {
				if !c.is(string(t), entityThing) {
					c.unresolved(container+" group", string(p.Key), string(t))
					missing[dispir.NodeID(t)] = true
					continue
				}
				resolved++
			}
			if p.Value.Kind == dispmodel.Sequence && resolved < 2 {
				c.issuef(dispmodel.SequenceTooShort, []string{string(p.Key)},
					"sequence %q needs at least 2 things, got %d", p.Key, resolved)
			}

			// Edges touching an unresolved thing are omitted. The rest keep
			// their index.
			var edges []dispir.Edge
			for _, e := range Expand(p.Key, p.Value.Kind, p.Value.Things) {
				if missing[e.From] || missing[e.To] {
					continue
				}
				edges = append(edges, e)
			}
			for _, e := range edges {
				if err := c.declare(string(e.ID), entityEdge, container); err != nil {
					return err
				}
			}
			c.ir.EdgeGroups.Set(p.Key, dispir.EdgeGroup{
				Relation: rel,
				Kind:     p.Value.Kind,
				Edges:    edges,
			})
		}
		return nil
	}

	if err := compile(dispir.Dependency, "thing_dependencies", c.in.ThingDependencies); err != nil {
		return err
	}
	return compile(dispir.Interaction, "thing_interactions", c.in.ThingInteractions)
}
