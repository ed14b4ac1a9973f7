package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"timelanes/internal/timeline"
)

type yamlTask struct {
	ID     string            `yaml:"id"`
	Name   string            `yaml:"name"`
	Start  string            `yaml:"start"`
	End    string            `yaml:"end"`
	Labels map[string]string `yaml:"labels"`
}

// ReadYAML reads task records from a YAML file holding either a list of
// tasks or a mapping with a "tasks" list.
func ReadYAML(filename string) ([]timeline.Record, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("error reading YAML file: %w", err)
	}
	return parseYAML(data)
}

func parseYAML(data []byte) ([]timeline.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing YAML file: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	var list []yamlTask
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&list); err != nil {
			return nil, fmt.Errorf("error decoding tasks: %w", err)
		}
	case yaml.MappingNode:
		var wrapped struct {
			Tasks []yamlTask `yaml:"tasks"`
		}
		if err := root.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("error decoding tasks: %w", err)
		}
		list = wrapped.Tasks
	default:
		return nil, fmt.Errorf("error decoding tasks: expected a list or a mapping with 'tasks', got line %d", root.Line)
	}

	records := make([]timeline.Record, len(list))
	for i, t := range list {
		records[i] = timeline.Record{ID: t.ID, Name: t.Name, Start: t.Start, End: t.End, Labels: t.Labels}
	}
	return records, nil
}
