// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"fmt"
	"os"

	"github.com/pando85/ansible-rs/pkg/jinja"
)

func init() {
	register(templateModule{})
}

// TemplateParams describes a template file to be rendered and written to
// a destination path.
type TemplateParams struct {
	Src  string      `yaml:"src"`
	Dest string      `yaml:"dest"`
	Mode interface{} `yaml:"mode,omitempty"`
}

type templateModule struct{}

func (templateModule) Name() string { return "template" }

func (templateModule) Run(ctx RunContext, params interface{}) (ModuleResult, error) {
	var p TemplateParams
	if err := decodeParams(params, &p); err != nil {
		return ModuleResult{}, err
	}

	copyParams, err := renderContent(ctx, p)
	if err != nil {
		return ModuleResult{}, err
	}
	return copyFile(ctx, copyParams)
}

// renderContent renders the source file's full text against the current
// scope and hands it to the copy layer.
func renderContent(ctx RunContext, p TemplateParams) (CopyParams, error) {
	if p.Src == "" || p.Dest == "" {
		return CopyParams{}, fmt.Errorf("Missing required params 'src' and 'dest'")
	}

	data, err := os.ReadFile(p.Src)
	if err != nil {
		return CopyParams{}, fmt.Errorf("Reading template %s: %s", p.Src, err)
	}

	content, err := jinja.RenderString(string(data), ctx.Vars)
	if err != nil {
		return CopyParams{}, err
	}

	return CopyParams{Content: content, Dest: p.Dest, Mode: p.Mode}, nil
}
