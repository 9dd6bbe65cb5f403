// Package dispthemes holds the compiled in base diagram that every user
// diagram is layered over, and the ids of the default entity types.
package dispthemes

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
)

//go:embed base.yaml
var baseYAML []byte

// Default entity types.
const (
	TypeThingDefault       dispmodel.EntityTypeID = "type_thing_default"
	TypeTagDefault         dispmodel.EntityTypeID = "type_tag_default"
	TypeProcessDefault     dispmodel.EntityTypeID = "type_process_default"
	TypeProcessStepDefault dispmodel.EntityTypeID = "type_process_step_default"
)

// EdgeType returns the default type of an edge, e.g.
// type_dependency_edge_sequence_forward_default.
func EdgeType(rel dispir.Relation, kind dispmodel.EdgeKindName, dir dispir.EdgeDirection) dispmodel.EntityTypeID {
	return dispmodel.EntityTypeID(fmt.Sprintf("type_%s_edge_%s_%s_default", rel, kind, dir))
}

// NodeType returns the default type of a node kind.
func NodeType(k dispir.NodeKind) dispmodel.EntityTypeID {
	switch k {
	case dispir.NodeTag:
		return TypeTagDefault
	case dispir.NodeProcess:
		return TypeProcessDefault
	case dispir.NodeProcessStep:
		return TypeProcessStepDefault
	default:
		return TypeThingDefault
	}
}

// BaseStyleAliases are the alias names the base diagram defines.
var BaseStyleAliases = []dispmodel.StyleAlias{
	"padding_none", "padding_tight", "padding_normal", "padding_wide",
	"shade_pale", "shade_light", "shade_medium", "shade_dark",
	"stroke_dashed_animated", "stroke_dashed_animated_request", "stroke_dashed_animated_response",
}

var (
	baseOnce sync.Once
	base     *dispmodel.InputDiagram
)

// Base returns the base diagram. Callers must not modify it.
func Base() *dispmodel.InputDiagram {
	baseOnce.Do(func() {
		d, err := dispmodel.Parse(baseYAML)
		if err != nil {
			panic(fmt.Sprintf("dispthemes: invalid base diagram: %v", err))
		}
		base = d
	})
	return base
}

// baseKeyframes back the animated stroke aliases.
var baseKeyframes = []struct {
	name string
	css  string
}{
	{"stroke-dashoffset-move", "@keyframes stroke-dashoffset-move{0%{stroke-dashoffset:30}100%{stroke-dashoffset:0}}"},
	{"stroke-dashoffset-move-request", "@keyframes stroke-dashoffset-move-request{0%{stroke-dashoffset:0}100%{stroke-dashoffset:228}}"},
	{"stroke-dashoffset-move-response", "@keyframes stroke-dashoffset-move-response{0%{stroke-dashoffset:0}100%{stroke-dashoffset:-248}}"},
}

// Keyframes returns the base keyframes that the given class strings animate
// with.
func Keyframes(classes ...string) []string {
	var out []string
	for _, kf := range baseKeyframes {
		ref := "animate-[" + kf.name + "_"
		for _, c := range classes {
			if strings.Contains(c, ref) {
				out = append(out, kf.css)
				break
			}
		}
	}
	return out
}
