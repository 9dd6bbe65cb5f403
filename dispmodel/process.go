package dispmodel

import "gopkg.in/yaml.v3"

type Process struct {
	Name  string                     `yaml:"name,omitempty"`
	Desc  string                     `yaml:"desc,omitempty"`
	Steps Map[ProcessStepID, string] `yaml:"steps,omitempty"`
	// StepThingInteractions lists the interaction groups a step highlights.
	StepThingInteractions Map[ProcessStepID, Set[EdgeGroupID]] `yaml:"step_thing_interactions,omitempty"`
}

func (p *Process) UnmarshalYAML(n *yaml.Node) error {
	type plain Process
	var pp plain
	if err := decodeStruct(n, "process", &pp); err != nil {
		return err
	}
	*p = Process(pp)
	return nil
}
