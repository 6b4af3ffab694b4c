// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// LoadFile reads a vars file and returns its top-level mapping. YAML and
// JSON files keep their key order; TOML files are sorted by key.
func LoadFile(path string) (yaml.MapSlice, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Reading vars file: %s", err)
	}

	switch filepath.Ext(path) {
	case ".toml":
		return parseTOML(data)
	default:
		return parseYAML(data)
	}
}

func parseYAML(data []byte) (yaml.MapSlice, error) {
	var tree interface{}
	if err := yaml.UnmarshalWithOptions(data, &tree, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("Deserializing vars file: %s", err)
	}
	if tree == nil {
		return yaml.MapSlice{}, nil
	}

	mapping, ok := tree.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("Expected vars file to contain a mapping, got %T", tree)
	}
	return mapping, nil
}

func parseTOML(data []byte) (yaml.MapSlice, error) {
	tree := map[string]interface{}{}
	if err := toml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("Deserializing TOML vars file: %s", err)
	}

	keys := make([]string, 0, len(tree))
	for key := range tree {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	mapping := make(yaml.MapSlice, 0, len(tree))
	for _, key := range keys {
		mapping = append(mapping, yaml.MapItem{Key: key, Value: tree[key]})
	}
	return mapping, nil
}

// ParseKV splits a key=value argument, parsing the value as YAML so typed
// values can be passed on the command line.
func ParseKV(kv string) (string, interface{}, error) {
	name, raw, found := strings.Cut(kv, "=")
	if !found || name == "" {
		return "", nil, fmt.Errorf("Expected var to be in key=value format, got '%s'", kv)
	}

	var val interface{}
	if err := yaml.UnmarshalWithOptions([]byte(raw), &val, yaml.UseOrderedMap()); err != nil {
		return "", nil, fmt.Errorf("Deserializing var '%s': %s", name, err)
	}
	return name, val, nil
}

func renderableKeyError(key interface{}) error {
	return fmt.Errorf("Expected string key in vars mapping, got %T: %v", key, key)
}
