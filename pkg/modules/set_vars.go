// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

func init() {
	register(setVarsModule{})
}

type setVarsModule struct{}

func (setVarsModule) Name() string { return "set_vars" }

// Run returns the (already rendered) params mapping for the task runner to
// fold into the running scope.
func (setVarsModule) Run(_ RunContext, params interface{}) (ModuleResult, error) {
	mapping, ok := params.(yaml.MapSlice)
	if !ok {
		return ModuleResult{}, fmt.Errorf("Expected set_vars params to be a mapping, got %T", params)
	}
	if len(mapping) == 0 {
		return ModuleResult{}, fmt.Errorf("set_vars requires at least one var")
	}

	return ModuleResult{Changed: false, Vars: mapping}, nil
}
