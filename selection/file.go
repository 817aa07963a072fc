package selection

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Selection is a named set of segment ids, optionally with the editorial goal it
// was picked for.
type Selection struct {
	Name string `yaml:"name" json:"name"`
	Goal string `yaml:"goal,omitempty" json:"goal,omitempty"`
	IDs  []int  `yaml:"ids" json:"ids"`
}

// Load reads a selection from a YAML or JSON file. The ids field accepts either a
// list of integers or a string in ParseIDs form.
func Load(path string) (Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Selection{}, fmt.Errorf("read selection: %w", err)
	}
	return Decode(data)
}

// Decode parses selection YAML (JSON is accepted as a YAML subset).
func Decode(data []byte) (Selection, error) {
	var raw struct {
		Name string    `yaml:"name"`
		Goal string    `yaml:"goal"`
		IDs  yaml.Node `yaml:"ids"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Selection{}, fmt.Errorf("parse selection: %w", err)
	}
	sel := Selection{Name: raw.Name, Goal: raw.Goal}

	switch raw.IDs.Kind {
	case 0:
	case yaml.ScalarNode:
		if raw.IDs.ShortTag() == "!!null" {
			break
		}
		ids, err := ParseIDs(raw.IDs.Value)
		if err != nil {
			return Selection{}, fmt.Errorf("parse selection ids: %w", err)
		}
		sel.IDs = ids
	case yaml.SequenceNode:
		for _, item := range raw.IDs.Content {
			ids, err := ParseIDs(strings.TrimSpace(item.Value))
			if err != nil {
				return Selection{}, fmt.Errorf("parse selection ids: %w", err)
			}
			sel.IDs = append(sel.IDs, ids...)
		}
	default:
		return Selection{}, fmt.Errorf("parse selection ids: unexpected %s", nodeKind(raw.IDs.Kind))
	}
	return sel, nil
}

// Save writes the selection as YAML.
func Save(path string, sel Selection) error {
	data, err := yaml.Marshal(sel)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write selection: %w", err)
	}
	return nil
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.DocumentNode:
		return "document"
	default:
		return fmt.Sprintf("node kind %d", k)
	}
}
