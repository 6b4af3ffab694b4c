// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"fmt"

	"github.com/pando85/ansible-rs/pkg/jinja"
)

func init() {
	register(assertModule{})
}

// AssertParams holds boolean expressions that must all evaluate to true.
type AssertParams struct {
	That []string `yaml:"that"`
}

type assertModule struct{}

func (assertModule) Name() string { return "assert" }

func (assertModule) Run(ctx RunContext, params interface{}) (ModuleResult, error) {
	var p AssertParams

	// `assert: x > 2` shorthand
	if cond, ok := params.(string); ok {
		p.That = []string{cond}
	} else if err := decodeParams(params, &p); err != nil {
		return ModuleResult{}, err
	}

	if len(p.That) == 0 {
		return ModuleResult{}, fmt.Errorf("Missing required param 'that'")
	}

	for _, cond := range p.That {
		ok, err := jinja.IsRenderString(cond, ctx.Vars)
		if err != nil {
			return ModuleResult{}, err
		}
		if !ok {
			return ModuleResult{}, fmt.Errorf("Assertion failed: %s", cond)
		}
	}

	return ModuleResult{Changed: false}, nil
}
