package dispcli

import (
	"bytes"
	"context"

	"gopkg.in/yaml.v3"

	"oss.terrastruct.com/util-go/xdefer"
	"oss.terrastruct.com/util-go/xmain"

	"github.com/azriel91/disposition-sub001/dispir"
	"github.com/azriel91/disposition-sub001/dispmodel"
)

// irDump is the YAML view of a dispir.Diagram.
type irDump struct {
	Nodes           dispmodel.Map[dispir.NodeID, string]                                 `yaml:"nodes"`
	NodeKinds       dispmodel.Map[dispir.NodeID, string]                                 `yaml:"node_kinds"`
	NodeCopyText    dispmodel.Map[dispir.NodeID, string]                                 `yaml:"node_copy_text,omitempty"`
	NodeHierarchy   *yaml.Node                                                           `yaml:"node_hierarchy"`
	NodeOrdering    dispmodel.Map[dispir.NodeID, uint32]                                 `yaml:"node_ordering"`
	EdgeGroups      dispmodel.Map[dispmodel.EdgeGroupID, edgeGroupDump]                  `yaml:"edge_groups,omitempty"`
	EntityDescs     dispmodel.Map[dispmodel.ID, string]                                  `yaml:"entity_descs,omitempty"`
	EntityTooltips  dispmodel.Map[dispmodel.ID, string]                                  `yaml:"entity_tooltips,omitempty"`
	EntityTypes     dispmodel.Map[dispmodel.ID, dispmodel.Set[dispmodel.EntityTypeID]] `yaml:"entity_types,omitempty"`
	TailwindClasses dispmodel.Map[dispmodel.ID, string]                                  `yaml:"tailwind_classes,omitempty"`
	NodeLayouts     dispmodel.Map[dispir.NodeID, dispir.NodeLayout]                      `yaml:"node_layouts"`
	NodeShapes      dispmodel.Map[dispir.NodeID, dispir.NodeShape]                       `yaml:"node_shapes,omitempty"`
	Css             string                                                               `yaml:"css,omitempty"`
}

type edgeGroupDump struct {
	Relation string     `yaml:"relation"`
	Kind     string     `yaml:"kind"`
	Edges    []edgeDump `yaml:"edges"`
}

type edgeDump struct {
	ID        dispmodel.EdgeID `yaml:"id"`
	From      dispir.NodeID    `yaml:"from"`
	To        dispir.NodeID    `yaml:"to"`
	Direction string           `yaml:"direction"`
}

func irCmd(ctx context.Context, ms *xmain.State) (err error) {
	defer xdefer.Errorf(&err, "failed to dump ir")

	d, issues, err := compileArg(ctx, ms, "ir")
	if err != nil {
		return err
	}
	for _, is := range issues {
		ms.Log.Warn.Printf("%s", is)
	}
	out, err := MarshalIR(d)
	if err != nil {
		return err
	}
	_, err = ms.Stdout.Write(out)
	return err
}

// MarshalIR encodes d as YAML in declaration order.
func MarshalIR(d *dispir.Diagram) ([]byte, error) {
	dump := irDump{
		Nodes:           d.Nodes,
		NodeCopyText:    d.NodeCopyText,
		NodeHierarchy:   hierarchyNode(d.NodeHierarchy),
		NodeOrdering:    d.NodeOrdering,
		EntityDescs:     d.EntityDescs,
		EntityTooltips:  d.EntityTooltips,
		EntityTypes:     d.EntityTypes,
		TailwindClasses: d.TailwindClasses,
		NodeLayouts:     d.NodeLayouts,
		NodeShapes:      d.NodeShapes,
		Css:             d.Css,
	}
	d.NodeKinds.Range(func(id dispir.NodeID, k dispir.NodeKind) bool {
		dump.NodeKinds.Set(id, k.String())
		return true
	})
	d.EdgeGroups.Range(func(id dispmodel.EdgeGroupID, g dispir.EdgeGroup) bool {
		gd := edgeGroupDump{Relation: g.Relation.String(), Kind: string(g.Kind)}
		for _, e := range g.Edges {
			gd.Edges = append(gd.Edges, edgeDump{
				ID:        e.ID,
				From:      e.From,
				To:        e.To,
				Direction: e.Direction.String(),
			})
		}
		dump.EdgeGroups.Set(id, gd)
		return true
	})

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(dump); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func hierarchyNode(h dispir.NodeHierarchy) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range h {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: string(e.ID)},
			hierarchyNode(e.Children),
		)
	}
	return n
}
