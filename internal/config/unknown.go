package config

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadWithWarnings parses config data and returns any unknown field warnings.
func LoadWithWarnings(path string, data []byte) (*Config, []string, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, nil, err
	}

	// Detect unknown fields
	warnings := detectUnknownFields(data)

	return cfg, warnings, nil
}

// detectUnknownFields compares the raw YAML mapping keys with known struct fields.
func detectUnknownFields(data []byte) []string {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		// The data was already decoded once, so this indicates an internal inconsistency.
		return []string{"internal: failed to re-parse config for unknown field detection"}
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	var warnings []string
	warnings = append(warnings, unknownKeys(root, reflect.TypeOf(Config{}), "at root level")...)

	if defaults := mappingValue(root, "defaults"); defaults != nil {
		warnings = append(warnings, unknownKeys(defaults, reflect.TypeOf(ReportDefaults{}), "in defaults")...)
	}

	if reports := mappingValue(root, "reports"); reports != nil && reports.Kind == yaml.SequenceNode {
		known := reflect.TypeOf(ReportConfig{})
		for i, r := range reports.Content {
			where := fmt.Sprintf("in reports[%d]", i)
			if name := mappingValue(r, "name"); name != nil && name.Value != "" {
				where = fmt.Sprintf("in report %q", name.Value)
			}
			warnings = append(warnings, unknownKeys(r, known, where)...)
		}
	}

	return warnings
}

func unknownKeys(n *yaml.Node, t reflect.Type, where string) []string {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	known := getYAMLFields(t)

	var warnings []string
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if !known[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q %s (ignored)", key, where))
		}
	}
	return warnings
}

// mappingValue returns the value node stored under key, or nil.
func mappingValue(n *yaml.Node, key string) *yaml.Node {
	if n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// getYAMLFields returns a map of known YAML field names for a struct type.
func getYAMLFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		// Extract field name from tag (before comma)
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
