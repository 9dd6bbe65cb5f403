// Package dispmodel holds the user authored diagram: things, the edges
// between them, processes, tags, entity types and theme styles.
//
// Every map preserves insertion order. Order drives rendering order and tab
// order, so it is part of the model.
package dispmodel

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

type InputDiagram struct {
	Things            Map[ThingID, string]       `yaml:"things,omitempty"`
	ThingCopyText     Map[ThingID, string]       `yaml:"thing_copy_text,omitempty"`
	ThingHierarchy    ThingHierarchy             `yaml:"thing_hierarchy,omitempty"`
	ThingDependencies Map[EdgeGroupID, EdgeKind] `yaml:"thing_dependencies,omitempty"`
	ThingInteractions Map[EdgeGroupID, EdgeKind] `yaml:"thing_interactions,omitempty"`
	Processes         Map[ProcessID, Process]    `yaml:"processes,omitempty"`
	Tags              Map[TagID, string]         `yaml:"tags,omitempty"`
	TagThings         Map[TagID, Set[ThingID]]   `yaml:"tag_things,omitempty"`
	EntityDescs       Map[ID, string]            `yaml:"entity_descs,omitempty"`
	EntityTooltips    Map[ID, string]            `yaml:"entity_tooltips,omitempty"`
	EntityTypes       Map[ID, EntityTypeID]      `yaml:"entity_types,omitempty"`

	ThemeDefault                 ThemeDefault                      `yaml:"theme_default,omitempty"`
	ThemeTypesStyles             Map[EntityTypeID, ThemeStyles]    `yaml:"theme_types_styles,omitempty"`
	ThemeThingDependenciesStyles ThemeStyles                       `yaml:"theme_thing_dependencies_styles,omitempty"`
	ThemeTagThingsFocus          Map[TagIdOrDefaults, ThemeStyles] `yaml:"theme_tag_things_focus,omitempty"`
	Css                          string                            `yaml:"css,omitempty"`
}

func (d *InputDiagram) UnmarshalYAML(n *yaml.Node) error {
	type plain InputDiagram
	var p plain
	if err := decodeStruct(n, "diagram", &p); err != nil {
		return err
	}
	*d = InputDiagram(p)
	return nil
}

// Parse decodes a YAML diagram. Unknown fields, invalid ids and duplicate
// keys are fatal and reported as *Error.
func Parse(src []byte) (*InputDiagram, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fromYAMLError(err)
	}
	d := &InputDiagram{}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return d, nil
	}
	if err := d.UnmarshalYAML(doc.Content[0]); err != nil {
		var e *Error
		if errors.As(err, &e) {
			return nil, e
		}
		return nil, fromYAMLError(err)
	}
	return d, nil
}

// Marshal encodes d as YAML with two space indentation.
func (d *InputDiagram) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	// An empty diagram encodes as "{}".
	if bytes.Equal(bytes.TrimSpace(out), []byte("{}")) {
		return nil, nil
	}
	return out, nil
}

// Format parses src and re-encodes it canonically.
func Format(src []byte) ([]byte, error) {
	d, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return d.Marshal()
}
