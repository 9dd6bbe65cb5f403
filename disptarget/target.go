// Package disptarget holds the positioned, render ready records of a diagram
// that the SVG renderer serializes.
package disptarget

import (
	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
)

// TextSpan is a run of text positioned relative to its node. Y is the
// baseline.
type TextSpan struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	// Fill is set for highlighted code only; other text takes its fill from
	// the node's classes.
	Fill string `json:"fill,omitempty"`
	Kind string `json:"kind"`
}

// SvgProcessInfo is present on process and step nodes.
type SvgProcessInfo struct {
	ProcessID      dispir.NodeID   `json:"process_id"`
	ProcessStepIDs []dispir.NodeID `json:"process_step_ids"`
	// ProcessIndex is the position of the process among all processes.
	ProcessIndex     int     `json:"process_index"`
	HeightToExpandTo float64 `json:"height_to_expand_to"`
	PathDExpanded    string  `json:"path_d_expanded"`
	TotalStepsHeight float64 `json:"total_steps_height"`
	// BaseY is the process's y while every process is collapsed.
	BaseY float64 `json:"base_y"`
}

type SvgNodeInfo struct {
	NodeID dispir.NodeID `json:"node_id"`
	// TabIndex orders the node's group in the document. It starts at 1.
	TabIndex uint32 `json:"tab_index"`
	// X and Y are absolute. The node's translate classes are relative to its
	// parent node.
	X               float64 `json:"x"`
	Y               float64 `json:"y"`
	Width           float64 `json:"width"`
	HeightCollapsed float64 `json:"height_collapsed"`
	PathDCollapsed  string  `json:"path_d_collapsed"`
	// CirclePathD is empty unless the node is drawn with a circle.
	CirclePathD string          `json:"circle_path_d,omitempty"`
	ProcessInfo *SvgProcessInfo `json:"process_info,omitempty"`
	TextSpans   []TextSpan      `json:"text_spans,omitempty"`

	Classes  string `json:"classes"`
	Tooltip  string `json:"tooltip,omitempty"`
	CopyText string `json:"copy_text,omitempty"`
}

type SvgEdgeInfo struct {
	EdgeID      dispmodel.EdgeID      `json:"edge_id"`
	EdgeGroupID dispmodel.EdgeGroupID `json:"edge_group_id"`
	FromNodeID  dispir.NodeID         `json:"from_node_id"`
	ToNodeID    dispir.NodeID         `json:"to_node_id"`
	// PathD starts at the to node.
	PathD          string  `json:"path_d"`
	PathLength     float64 `json:"path_length"`
	ArrowHeadPathD string  `json:"arrow_head_path_d"`

	// The animation fields are empty for edges that do not animate.
	Dasharray          string  `json:"dasharray,omitempty"`
	AnimationName      string  `json:"animation_name,omitempty"`
	KeyframeCSS        string  `json:"keyframe_css,omitempty"`
	AnimationDurationS float64 `json:"animation_duration_s,omitempty"`

	Classes          string `json:"classes"`
	PathClasses      string `json:"path_classes"`
	ArrowHeadClasses string `json:"arrow_head_classes"`
	Tooltip          string `json:"tooltip,omitempty"`
}

// Diagram is everything the renderer needs.
type Diagram struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Nodes are in hierarchy order, parents before children.
	Nodes     []SvgNodeInfo        `json:"nodes"`
	Hierarchy dispir.NodeHierarchy `json:"-"`
	Edges     []SvgEdgeInfo        `json:"edges"`

	// Css is appended to the generated styles verbatim.
	Css string `json:"css,omitempty"`
}

// Node returns the node with id, or nil.
func (d *Diagram) Node(id dispir.NodeID) *SvgNodeInfo {
	for i := range d.Nodes {
		if d.Nodes[i].NodeID == id {
			return &d.Nodes[i]
		}
	}
	return nil
}

// Classes returns every class string used by the diagram.
func (d *Diagram) Classes() []string {
	var out []string
	for _, n := range d.Nodes {
		out = append(out, n.Classes)
	}
	for _, e := range d.Edges {
		out = append(out, e.Classes, e.PathClasses, e.ArrowHeadClasses)
	}
	return out
}
