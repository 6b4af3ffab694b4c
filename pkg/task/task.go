// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/pando85/ansible-rs/pkg/modules"
)

// Task is one step of a script: a module invocation plus its control
// attributes.
type Task struct {
	Name         string
	When         []string
	Loop         interface{}
	Register     string
	IgnoreErrors bool
	Vars         yaml.MapSlice

	module modules.Module
	params interface{}
}

// Module returns the module this task invokes.
func (t *Task) Module() modules.Module { return t.module }

// Params returns the task's raw, unrendered module params.
func (t *Task) Params() interface{} { return t.params }

// ParseScript parses a script document: a YAML sequence of tasks.
func ParseScript(data []byte) ([]*Task, error) {
	var doc interface{}
	if err := yaml.UnmarshalWithOptions(data, &doc, yaml.UseOrderedMap()); err != nil {
		return nil, fmt.Errorf("Deserializing script: %s", err)
	}

	seq, ok := doc.([]interface{})
	if !ok {
		return nil, fmt.Errorf("Expected script to be a sequence of tasks, got %T", doc)
	}

	tasks := make([]*Task, 0, len(seq))
	for i, node := range seq {
		mapping, ok := node.(yaml.MapSlice)
		if !ok {
			return nil, fmt.Errorf("Expected task %d to be a mapping, got %T", i, node)
		}

		task, err := NewTask(mapping)
		if err != nil {
			return nil, fmt.Errorf("Parsing task %d: %s", i, err)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// NewTask builds a Task from one mapping of the script document. Exactly
// one key must name a registered module; the rest are task attributes.
func NewTask(mapping yaml.MapSlice) (*Task, error) {
	task := &Task{}

	for _, item := range mapping {
		key, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("Expected string key, got %T: %v", item.Key, item.Key)
		}

		switch key {
		case "name":
			s, ok := item.Value.(string)
			if !ok {
				return nil, fmt.Errorf("Expected 'name' to be a string, got %T", item.Value)
			}
			task.Name = s

		case "when":
			conds, err := stringOrStrings(item.Value)
			if err != nil {
				return nil, fmt.Errorf("Parsing 'when': %s", err)
			}
			task.When = conds

		case "loop":
			task.Loop = item.Value

		case "register":
			s, ok := item.Value.(string)
			if !ok {
				return nil, fmt.Errorf("Expected 'register' to be a string, got %T", item.Value)
			}
			task.Register = s

		case "ignore_errors":
			b, ok := item.Value.(bool)
			if !ok {
				return nil, fmt.Errorf("Expected 'ignore_errors' to be a boolean, got %T", item.Value)
			}
			task.IgnoreErrors = b

		case "vars":
			m, ok := item.Value.(yaml.MapSlice)
			if !ok {
				return nil, fmt.Errorf("Expected 'vars' to be a mapping, got %T", item.Value)
			}
			task.Vars = m

		default:
			m, found := modules.Get(key)
			if !found {
				return nil, fmt.Errorf("'%s' is not a task attribute or a module (modules: %s)",
					key, strings.Join(modules.Names(), ", "))
			}
			if task.module != nil {
				return nil, fmt.Errorf("Task has more than one module: %s and %s", task.module.Name(), key)
			}
			task.module = m
			task.params = item.Value
		}
	}

	if task.module == nil {
		return nil, fmt.Errorf("Task has no module")
	}
	return task, nil
}

func stringOrStrings(v interface{}) ([]string, error) {
	switch node := v.(type) {
	case string:
		return []string{node}, nil
	case []interface{}:
		out := make([]string, 0, len(node))
		for _, item := range node {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("Expected string, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("Expected string or sequence of strings, got %T", v)
	}
}
