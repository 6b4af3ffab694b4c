// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/pando85/ansible-rs/pkg/cmd/ui"
	"github.com/pando85/ansible-rs/pkg/jinja"
	"github.com/pando85/ansible-rs/pkg/vars"
)

// ModuleResult is what a module reports back to the task runner.
type ModuleResult struct {
	Changed bool
	Output  string
	Extra   interface{}

	// Vars are folded into the running scope by the task runner
	// (used by set_vars).
	Vars yaml.MapSlice
}

// RunContext carries everything a module may need during execution.
type RunContext struct {
	UI    ui.UI
	Vars  vars.Vars
	Check bool
	Diff  bool
}

// Module executes one task action against already-rendered params.
type Module interface {
	Name() string
	Run(ctx RunContext, params interface{}) (ModuleResult, error)
}

var registry = map[string]Module{}

func register(m Module) {
	if _, found := registry[m.Name()]; found {
		panic(fmt.Sprintf("module %s registered twice", m.Name()))
	}
	registry[m.Name()] = m
}

// Get returns a registered module by name.
func Get(name string) (Module, bool) {
	m, found := registry[name]
	return m, found
}

// Names returns the registered module names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RenderParams renders module params against vars. Params mappings follow
// the same key-by-key scope chaining as any rendered mapping, with one
// extra rule: a param whose template requests omission is dropped from the
// mapping instead of failing the render.
func RenderParams(params interface{}, v vars.Vars) (interface{}, error) {
	mapping, ok := params.(yaml.MapSlice)
	if !ok {
		return jinja.Render(params, v)
	}

	rendered := make(yaml.MapSlice, 0, len(mapping))
	currentVars := v
	for _, item := range mapping {
		key, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("Expected string key in params, got %T: %v", item.Key, item.Key)
		}

		r, err := jinja.Render(item.Value, currentVars)
		if errors.Is(err, jinja.ErrOmitParam) {
			continue
		}
		if err != nil {
			return nil, err
		}

		currentVars = jinja.ExtendVars(currentVars, key, r)
		rendered = append(rendered, yaml.MapItem{Key: item.Key, Value: r})
	}
	return rendered, nil
}

// decodeParams maps a rendered params tree onto a module's typed params
// struct, rejecting unknown fields.
func decodeParams(params interface{}, out interface{}) error {
	data, err := yaml.Marshal(params)
	if err != nil {
		return fmt.Errorf("Serializing params: %s", err)
	}
	if err := yaml.UnmarshalWithOptions(data, out, yaml.Strict()); err != nil {
		return fmt.Errorf("Invalid params: %s", err)
	}
	return nil
}
