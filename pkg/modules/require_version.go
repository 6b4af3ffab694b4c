// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"fmt"

	"github.com/pando85/ansible-rs/pkg/version"
)

func init() {
	register(requireVersionModule{})
}

type requireVersionModule struct{}

func (requireVersionModule) Name() string { return "require_version" }

// Run fails the script when the running binary is older than the given
// minimum version.
func (requireVersionModule) Run(_ RunContext, params interface{}) (ModuleResult, error) {
	minimum, ok := params.(string)
	if !ok {
		return ModuleResult{}, fmt.Errorf("Expected require_version params to be a version string, got %T", params)
	}

	if err := version.RequireAtLeast(minimum); err != nil {
		return ModuleResult{}, err
	}
	return ModuleResult{Changed: false, Output: version.Version}, nil
}
