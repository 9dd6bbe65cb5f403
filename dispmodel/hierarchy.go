package dispmodel

import (
	"gopkg.in/yaml.v3"
)

// ThingHierarchy is an ordered tree of things. Each entry's Children nest
// inside it when rendered.
type ThingHierarchy []HierarchyEntry

type HierarchyEntry struct {
	ID       ThingID
	Children ThingHierarchy
}

func (h *ThingHierarchy) UnmarshalYAML(n *yaml.Node) error {
	*h = nil
	n = deref(n)
	if isNull(n) {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return parseFailure(n, "thing_hierarchy: expected a mapping, got %s", kindName(n))
	}
	seen := make(map[ThingID]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		id := ThingID(kn.Value)
		if err := ValidateID(kn.Value); err != nil {
			return err.at(kn)
		}
		if _, dup := seen[id]; dup {
			return (&Error{Kind: DuplicateKey, ID: kn.Value}).at(kn)
		}
		seen[id] = struct{}{}

		var children ThingHierarchy
		if err := children.UnmarshalYAML(vn); err != nil {
			return withContainer(err, kn.Value)
		}
		*h = append(*h, HierarchyEntry{ID: id, Children: children})
	}
	return nil
}

func (h ThingHierarchy) MarshalYAML() (interface{}, error) {
	return h.node(), nil
}

func (h ThingHierarchy) node() *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if len(h) == 0 {
		n.Style = yaml.FlowStyle
	}
	for _, e := range h {
		n.Content = append(n.Content, strNode(string(e.ID)), e.Children.node())
	}
	return n
}

// Walk visits entries depth first, parents before children. depth starts at 0.
func (h ThingHierarchy) Walk(fn func(e HierarchyEntry, parent ThingID, depth int)) {
	var walk func(h ThingHierarchy, parent ThingID, depth int)
	walk = func(h ThingHierarchy, parent ThingID, depth int) {
		for _, e := range h {
			fn(e, parent, depth)
			walk(e.Children, e.ID, depth+1)
		}
	}
	walk(h, "", 0)
}

// Check verifies no thing is its own ancestor, which is fatal, and reports
// things that appear more than once elsewhere in the tree. The returned
// hierarchy keeps only the first occurrence of each thing.
func (h ThingHierarchy) Check() (ThingHierarchy, Issues, error) {
	var issues Issues
	seen := make(map[ThingID]struct{})

	var check func(h ThingHierarchy, ancestors []ThingID) (ThingHierarchy, error)
	check = func(h ThingHierarchy, ancestors []ThingID) (ThingHierarchy, error) {
		var out ThingHierarchy
		for _, e := range h {
			for _, a := range ancestors {
				if a == e.ID {
					return nil, &Error{Kind: HierarchyCycle, ID: string(e.ID)}
				}
			}
			if _, dup := seen[e.ID]; dup {
				chain := make([]string, 0, len(ancestors)+1)
				for _, a := range ancestors {
					chain = append(chain, string(a))
				}
				chain = append(chain, string(e.ID))
				issues.Add(DuplicateHierarchyEntry, chain, "thing %q appears more than once in thing_hierarchy, later occurrences are ignored", e.ID)
				continue
			}
			seen[e.ID] = struct{}{}
			children, err := check(e.Children, append(ancestors[:len(ancestors):len(ancestors)], e.ID))
			if err != nil {
				return nil, err
			}
			out = append(out, HierarchyEntry{ID: e.ID, Children: children})
		}
		return out, nil
	}

	out, err := check(h, nil)
	if err != nil {
		return nil, issues, err
	}
	return out, issues, nil
}
