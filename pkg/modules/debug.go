// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"fmt"

	"github.com/pando85/ansible-rs/pkg/jinja"
)

func init() {
	register(debugModule{})
}

// DebugParams prints either a literal message or the value of a single
// expression.
type DebugParams struct {
	Msg string `yaml:"msg,omitempty"`
	Var string `yaml:"var,omitempty"`
}

type debugModule struct{}

func (debugModule) Name() string { return "debug" }

func (debugModule) Run(ctx RunContext, params interface{}) (ModuleResult, error) {
	var p DebugParams

	// `debug: some message` shorthand
	if msg, ok := params.(string); ok {
		p.Msg = msg
	} else if err := decodeParams(params, &p); err != nil {
		return ModuleResult{}, err
	}

	if (p.Msg == "") == (p.Var == "") {
		return ModuleResult{}, fmt.Errorf("Expected exactly one of 'msg' or 'var'")
	}

	out := p.Msg
	if p.Var != "" {
		rendered, err := jinja.RenderString(fmt.Sprintf("{{ %s }}", p.Var), ctx.Vars)
		if err != nil {
			return ModuleResult{}, err
		}
		out = fmt.Sprintf("%s: %s", p.Var, rendered)
	}

	ctx.UI.Printf("%s\n", out)
	return ModuleResult{Changed: false, Output: out}, nil
}
