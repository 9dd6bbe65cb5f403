package dispmodel

import (
	"gopkg.in/yaml.v3"
)

// EdgeKindName determines how a group's thing list expands into edges.
type EdgeKindName string

const (
	// Cyclic connects each thing to the next and the last back to the first.
	Cyclic EdgeKindName = "cyclic"
	// Sequence connects each thing to the next.
	Sequence EdgeKindName = "sequence"
	// Symmetric connects each thing to the next, then walks back.
	Symmetric EdgeKindName = "symmetric"
)

// EdgeKind is a group of edges between things.
type EdgeKind struct {
	Kind   EdgeKindName `yaml:"kind"`
	Things []ThingID    `yaml:"things"`
}

func (k *EdgeKind) UnmarshalYAML(n *yaml.Node) error {
	type plain EdgeKind
	var p plain
	if err := decodeStruct(n, "edge group", &p); err != nil {
		return err
	}
	switch p.Kind {
	case Cyclic, Sequence, Symmetric:
	case "":
		return parseFailure(n, "edge group is missing kind: expected one of cyclic, sequence, symmetric")
	default:
		return parseFailure(n, "unknown edge kind %q: expected one of cyclic, sequence, symmetric", p.Kind)
	}
	for _, t := range p.Things {
		if err := ValidateID(string(t)); err != nil {
			return err.at(n)
		}
	}
	*k = EdgeKind(p)
	return nil
}

// MinThings is the smallest list length the kind accepts.
func (k EdgeKindName) MinThings() int {
	if k == Sequence {
		return 2
	}
	return 1
}
