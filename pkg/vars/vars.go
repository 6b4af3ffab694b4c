// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package vars

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mitsuhiko/minijinja/minijinja-go/v2/value"

	"github.com/pando85/ansible-rs/pkg/jinja"
	"github.com/pando85/ansible-rs/pkg/version"
)

// Vars is the scope templates are rendered against.
type Vars = value.Value

// Empty returns a scope with no bindings.
func Empty() Vars {
	return value.FromMap(map[string]value.Value{})
}

// New builds a scope from plain Go values.
func New(bindings map[string]interface{}) Vars {
	return value.FromAny(bindings)
}

// Builtins returns the base scope every script starts from: the `rash`
// namespace (script path, dir, user, args, version) and the `env` mapping
// with the process environment.
func Builtins(scriptPath string, scriptArgs []string) (Vars, error) {
	absPath, err := filepath.Abs(scriptPath)
	if err != nil {
		return Empty(), err
	}

	if scriptArgs == nil {
		scriptArgs = []string{}
	}

	return New(map[string]interface{}{
		"rash": map[string]interface{}{
			"path":    absPath,
			"dir":     filepath.Dir(absPath),
			"args":    scriptArgs,
			"version": version.Version,
			"user": map[string]interface{}{
				"uid": os.Getuid(),
				"gid": os.Getgid(),
			},
		},
		"env": environMap(),
	}), nil
}

func environMap() map[string]interface{} {
	env := map[string]interface{}{}
	for _, entry := range os.Environ() {
		name, val, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		env[name] = val
	}
	return env
}

// ApplyTree extends base with one binding per top-level key of tree.
func ApplyTree(base Vars, tree yaml.MapSlice) (Vars, error) {
	result := base
	for _, item := range tree {
		key, ok := item.Key.(string)
		if !ok {
			return base, renderableKeyError(item.Key)
		}
		result = jinja.ExtendVars(result, key, item.Value)
	}
	return result, nil
}
