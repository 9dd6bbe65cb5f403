// Package dispcompiler turns a dispmodel.InputDiagram into the render ready
// dispir.Diagram: the node set and hierarchy, tab order, expanded edges,
// entity types, cascaded utility classes, and per node layouts and shapes.
package dispcompiler

import (
	"context"
	"fmt"

	"oss.terrastruct.com/util-go/xdefer"

	"cdr.dev/slog"

	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
	"github.com/azriel91/disposition-sub001/dispthemes"
	"github.com/azriel91/disposition-sub001/lib/log"
)

type entityKind int

const (
	entityThing entityKind = iota
	entityTag
	entityProcess
	entityProcessStep
	entityEdgeGroup
	entityEdge
)

func (k entityKind) String() string {
	switch k {
	case entityThing:
		return "thing"
	case entityTag:
		return "tag"
	case entityProcess:
		return "process"
	case entityProcessStep:
		return "process step"
	case entityEdgeGroup:
		return "edge group"
	default:
		return "edge"
	}
}

type compiler struct {
	ctx  context.Context
	base *dispmodel.InputDiagram
	in   *dispmodel.InputDiagram
	ir   *dispir.Diagram

	issues   dispmodel.Issues
	reported map[string]struct{}

	entities map[string]entityKind
	// stepProcess maps each step to its process.
	stepProcess map[dispmodel.ProcessStepID]dispmodel.ProcessID
	aliases     dispmodel.Map[dispmodel.StyleAlias, dispmodel.CssClassPartials]
	folds       map[dispmodel.ID]attrs
}

// Compile builds the IR for in, layered over the base diagram from
// dispthemes. Recoverable problems are returned as issues alongside the IR;
// an error is returned only for problems that make the diagram unrenderable.
func Compile(ctx context.Context, in *dispmodel.InputDiagram) (_ *dispir.Diagram, _ dispmodel.Issues, err error) {
	defer xdefer.Errorf(&err, "failed to compile diagram")

	if in == nil {
		in = &dispmodel.InputDiagram{}
	}
	c := &compiler{
		ctx:         ctx,
		base:        dispthemes.Base(),
		in:          in,
		ir:          &dispir.Diagram{Css: in.Css},
		reported:    make(map[string]struct{}),
		entities:    make(map[string]entityKind),
		stepProcess: make(map[dispmodel.ProcessStepID]dispmodel.ProcessID),
		folds:       make(map[dispmodel.ID]attrs),
	}

	done := log.Stage(ctx, "compile")
	if err := c.compileNodes(); err != nil {
		return nil, c.issues, err
	}
	if err := c.compileHierarchy(); err != nil {
		return nil, c.issues, err
	}
	c.compileOrdering()
	if err := c.compileEdges(); err != nil {
		return nil, c.issues, err
	}
	c.compileEntityMaps()
	c.compileEntityTypes()
	c.compileStyles()
	c.compileLayouts()
	done(
		slog.F("nodes", c.ir.Nodes.Len()),
		slog.F("edge_groups", c.ir.EdgeGroups.Len()),
		slog.F("issues", len(c.issues)),
	)
	return c.ir, c.issues, nil
}

// issuef records an issue unless an identical one was already recorded.
func (c *compiler) issuef(kind dispmodel.IssueKind, ids []string, f string, v ...interface{}) {
	msg := fmt.Sprintf(f, v...)
	key := string(kind) + "\x00" + msg
	if _, ok := c.reported[key]; ok {
		return
	}
	c.reported[key] = struct{}{}
	c.issues = append(c.issues, dispmodel.Issue{Kind: kind, Message: msg, IDs: ids})
	log.Debug(c.ctx, "issue", slog.F("kind", kind), slog.F("message", msg))
}

func (c *compiler) unresolved(context, referrer, referenced string) {
	c.issuef(dispmodel.UnresolvedReference, []string{referrer, referenced},
		"%s %q references %q which is not defined", context, referrer, referenced)
}

// declare registers a user id, rejecting ids already used by another entity.
func (c *compiler) declare(id string, kind entityKind, container string) error {
	if prev, ok := c.entities[id]; ok {
		return &dispmodel.Error{
			Kind:      dispmodel.DuplicateKey,
			ID:        id,
			Container: fmt.Sprintf("%s (already declared as a %s)", container, prev),
		}
	}
	c.entities[id] = kind
	if kind != entityEdge && dispmodel.IsReservedEntityID(id) {
		c.issuef(dispmodel.ReservedId, []string{id},
			"%s id %q uses a reserved prefix: ids starting with \"_\" or \"type_\" are reserved", kind, id)
	}
	return nil
}

func (c *compiler) is(id string, kinds ...entityKind) bool {
	k, ok := c.entities[id]
	if !ok {
		return false
	}
	for _, want := range kinds {
		if k == want {
			return true
		}
	}
	return false
}

func (c *compiler) compileNodes() error {
	c.ir.Nodes = dispmodel.NewMap[dispir.NodeID, string]()
	c.ir.NodeKinds = dispmodel.NewMap[dispir.NodeID, dispir.NodeKind]()
	c.ir.ProcessSteps = dispmodel.NewMap[dispir.NodeID, []dispir.NodeID]()

	add := func(id string, label string, kind dispir.NodeKind, ek entityKind, container string) error {
		if err := c.declare(id, ek, container); err != nil {
			return err
		}
		c.ir.Nodes.Set(dispir.NodeID(id), label)
		c.ir.NodeKinds.Set(dispir.NodeID(id), kind)
		return nil
	}

	for _, p := range c.in.Tags.Pairs() {
		if err := add(string(p.Key), p.Value, dispir.NodeTag, entityTag, "tags"); err != nil {
			return err
		}
	}
	for _, p := range c.in.Processes.Pairs() {
		label := p.Value.Name
		if label == "" {
			label = string(p.Key)
		}
		if err := add(string(p.Key), label, dispir.NodeProcess, entityProcess, "processes"); err != nil {
			return err
		}
		var steps []dispir.NodeID
		for _, s := range p.Value.Steps.Pairs() {
			if err := add(string(s.Key), s.Value, dispir.NodeProcessStep, entityProcessStep, "processes."+string(p.Key)+".steps"); err != nil {
				return err
			}
			c.stepProcess[s.Key] = p.Key
			steps = append(steps, dispir.NodeID(s.Key))
		}
		c.ir.ProcessSteps.Set(dispir.NodeID(p.Key), steps)
	}
	for _, p := range c.in.Things.Pairs() {
		if err := add(string(p.Key), p.Value, dispir.NodeThing, entityThing, "things"); err != nil {
			return err
		}
	}
	return nil
}

// compileHierarchy lays out tags, then processes with their steps, then
// things following thing_hierarchy. Things missing from thing_hierarchy are
// appended at the top level in declaration order.
func (c *compiler) compileHierarchy() error {
	checked, issues, err := c.in.ThingHierarchy.Check()
	if err != nil {
		return err
	}
	for _, i := range issues {
		c.issuef(i.Kind, i.IDs, "%s", i.Message)
	}

	var h dispir.NodeHierarchy
	for _, id := range c.in.Tags.Keys() {
		h = append(h, dispir.NodeEntry{ID: dispir.NodeID(id)})
	}
	for _, id := range c.in.Processes.Keys() {
		steps, _ := c.ir.ProcessSteps.Get(dispir.NodeID(id))
		e := dispir.NodeEntry{ID: dispir.NodeID(id)}
		for _, s := range steps {
			e.Children = append(e.Children, dispir.NodeEntry{ID: s})
		}
		h = append(h, e)
	}

	placed := make(map[dispmodel.ThingID]struct{})
	var convert func(th dispmodel.ThingHierarchy, parent dispmodel.ThingID) dispir.NodeHierarchy
	convert = func(th dispmodel.ThingHierarchy, parent dispmodel.ThingID) dispir.NodeHierarchy {
		var out dispir.NodeHierarchy
		for _, e := range th {
			children := convert(e.Children, e.ID)
			if !c.is(string(e.ID), entityThing) {
				referrer := "thing_hierarchy"
				if parent != "" {
					referrer = string(parent)
				}
				c.unresolved("thing_hierarchy entry", referrer, string(e.ID))
				// The unknown entry is skipped and its children take its place.
				out = append(out, children...)
				continue
			}
			placed[e.ID] = struct{}{}
			out = append(out, dispir.NodeEntry{ID: dispir.NodeID(e.ID), Children: children})
		}
		return out
	}
	things := convert(checked, "")
	for _, id := range c.in.Things.Keys() {
		if _, ok := placed[id]; !ok {
			things = append(things, dispir.NodeEntry{ID: dispir.NodeID(id)})
		}
	}
	c.ir.NodeHierarchy = append(h, things...)
	return nil
}

// compileOrdering numbers things in hierarchy order, then each process
// followed by its steps, then tags, starting at 1.
func (c *compiler) compileOrdering() {
	c.ir.NodeOrdering = dispmodel.NewMap[dispir.NodeID, uint32]()
	var next uint32 = 1
	assign := func(id dispir.NodeID) {
		c.ir.NodeOrdering.Set(id, next)
		next++
	}
	c.ir.NodeHierarchy.Walk(func(e dispir.NodeEntry, _ dispir.NodeID, _ int) {
		if k, _ := c.ir.NodeKinds.Get(e.ID); k == dispir.NodeThing {
			assign(e.ID)
		}
	})
	for _, p := range c.ir.ProcessSteps.Pairs() {
		assign(p.Key)
		for _, s := range p.Value {
			assign(s)
		}
	}
	for _, id := range c.in.Tags.Keys() {
		assign(dispir.NodeID(id))
	}
}
