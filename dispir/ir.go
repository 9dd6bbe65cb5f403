// Package dispir is the flattened, render ready form of a diagram.
package dispir

import (
	"github.com/azriel91/disposition-sub001/dispmodel"
)

// NodeID identifies any node: tags, processes, steps, things and the inbuilt containers.
type NodeID string

// Inbuilt containers. They never collide with user ids, which may not start with "_".
const (
	RootID                        NodeID = "_root"
	TagsContainerID               NodeID = "_tags_container"
	ThingsAndProcessesContainerID NodeID = "_things_and_processes_container"
	ProcessesContainerID          NodeID = "_processes_container"
	ThingsContainerID             NodeID = "_things_container"
)

// IsContainer reports whether id is an inbuilt container.
func IsContainer(id NodeID) bool {
	switch id {
	case RootID, TagsContainerID, ThingsAndProcessesContainerID, ProcessesContainerID, ThingsContainerID:
		return true
	}
	return false
}

type NodeKind int

const (
	NodeThing NodeKind = iota
	NodeTag
	NodeProcess
	NodeProcessStep
)

func (k NodeKind) String() string {
	switch k {
	case NodeThing:
		return "thing"
	case NodeTag:
		return "tag"
	case NodeProcess:
		return "process"
	default:
		return "process_step"
	}
}

// NodeHierarchy is an ordered tree of nodes.
type NodeHierarchy []NodeEntry

type NodeEntry struct {
	ID       NodeID
	Children NodeHierarchy
}

// Walk visits entries depth first, parents before children.
func (h NodeHierarchy) Walk(fn func(e NodeEntry, parent NodeID, depth int)) {
	var walk func(h NodeHierarchy, parent NodeID, depth int)
	walk = func(h NodeHierarchy, parent NodeID, depth int) {
		for _, e := range h {
			fn(e, parent, depth)
			walk(e.Children, e.ID, depth+1)
		}
	}
	walk(h, "", 0)
}

// Parents maps every node to its parent. Top level nodes are absent.
func (h NodeHierarchy) Parents() map[NodeID]NodeID {
	parents := make(map[NodeID]NodeID)
	h.Walk(func(e NodeEntry, parent NodeID, _ int) {
		if parent != "" {
			parents[e.ID] = parent
		}
	})
	return parents
}

// Relation is the kind of group an edge belongs to.
type Relation int

const (
	Dependency Relation = iota
	Interaction
)

func (r Relation) String() string {
	if r == Interaction {
		return "interaction"
	}
	return "dependency"
}

// EdgeDirection distinguishes the outbound and return halves of symmetric
// groups. Interaction edges going Forward are requests, Reverse are responses.
type EdgeDirection int

const (
	Forward EdgeDirection = iota
	Reverse
)

func (d EdgeDirection) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

type Edge struct {
	ID        dispmodel.EdgeID
	From      NodeID
	To        NodeID
	Direction EdgeDirection
}

// EdgeGroup is the expanded form of one thing_dependencies or
// thing_interactions entry.
type EdgeGroup struct {
	Relation Relation
	Kind     dispmodel.EdgeKindName
	Edges    []Edge
}

type Diagram struct {
	Nodes         dispmodel.Map[NodeID, string]
	NodeKinds     dispmodel.Map[NodeID, NodeKind]
	NodeCopyText  dispmodel.Map[NodeID, string]
	NodeHierarchy NodeHierarchy
	// NodeOrdering is the tab order, starting at 1. Containers have none.
	NodeOrdering dispmodel.Map[NodeID, uint32]
	// ProcessSteps lists each process's steps in declaration order.
	ProcessSteps dispmodel.Map[NodeID, []NodeID]

	EdgeGroups dispmodel.Map[dispmodel.EdgeGroupID, EdgeGroup]

	EntityDescs    dispmodel.Map[dispmodel.ID, string]
	EntityTooltips dispmodel.Map[dispmodel.ID, string]
	EntityTypes    dispmodel.Map[dispmodel.ID, dispmodel.Set[dispmodel.EntityTypeID]]

	TailwindClasses dispmodel.Map[dispmodel.ID, string]
	NodeLayouts     dispmodel.Map[NodeID, NodeLayout]
	NodeShapes      dispmodel.Map[NodeID, NodeShape]

	Css string
}

// Edges returns every edge of every group in declaration order.
func (d *Diagram) Edges() []Edge {
	var edges []Edge
	d.EdgeGroups.Range(func(_ dispmodel.EdgeGroupID, g EdgeGroup) bool {
		edges = append(edges, g.Edges...)
		return true
	})
	return edges
}

// Classes returns the utility classes of an entity.
func (d *Diagram) Classes(id dispmodel.ID) string {
	c, _ := d.TailwindClasses.Get(id)
	return c
}
