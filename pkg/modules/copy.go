// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/k14s/difflib"
)

func init() {
	register(copyModule{})
}

// CopyParams describes a file to be written: its full content, the
// destination path and an optional octal permission string.
type CopyParams struct {
	Content string      `yaml:"content"`
	Dest    string      `yaml:"dest"`
	Mode    interface{} `yaml:"mode,omitempty"`
}

type copyModule struct{}

func (copyModule) Name() string { return "copy" }

func (copyModule) Run(ctx RunContext, params interface{}) (ModuleResult, error) {
	var p CopyParams
	if err := decodeParams(params, &p); err != nil {
		return ModuleResult{}, err
	}
	return copyFile(ctx, p)
}

// copyFile writes params.Content to params.Dest if it differs from what is
// already there. In check mode nothing is written; in diff mode the change
// is printed as a line diff.
func copyFile(ctx RunContext, p CopyParams) (ModuleResult, error) {
	if p.Dest == "" {
		return ModuleResult{}, fmt.Errorf("Missing required param 'dest'")
	}

	mode, err := parseMode(p.Mode)
	if err != nil {
		return ModuleResult{}, err
	}

	existing, err := os.ReadFile(p.Dest)
	if err != nil && !os.IsNotExist(err) {
		return ModuleResult{}, fmt.Errorf("Reading %s: %s", p.Dest, err)
	}

	exists := err == nil
	changed := !exists || string(existing) != p.Content

	if changed && ctx.Diff {
		ctx.UI.Printf("%s", difflib.PPDiff(
			strings.Split(string(existing), "\n"),
			strings.Split(p.Content, "\n"),
		))
	}

	if changed && !ctx.Check {
		if err := os.WriteFile(p.Dest, []byte(p.Content), 0644); err != nil {
			return ModuleResult{}, fmt.Errorf("Writing %s: %s", p.Dest, err)
		}
	}

	if mode != nil {
		modeChanged, err := applyMode(ctx, p.Dest, *mode)
		if err != nil {
			return ModuleResult{}, err
		}
		changed = changed || modeChanged
	}

	return ModuleResult{Changed: changed, Output: p.Dest}, nil
}

// parseMode accepts "0644" style strings as well as bare integers whose
// digits are read as octal (mode: 0600 means the same as mode: "0600").
func parseMode(raw interface{}) (*os.FileMode, error) {
	if raw == nil {
		return nil, nil
	}

	digits := fmt.Sprintf("%v", raw)
	bits, err := strconv.ParseUint(digits, 8, 32)
	if err != nil {
		return nil, fmt.Errorf("Invalid mode '%v': %s", raw, err)
	}

	mode := os.FileMode(bits)
	return &mode, nil
}

func applyMode(ctx RunContext, dest string, mode os.FileMode) (bool, error) {
	info, err := os.Stat(dest)
	if err != nil {
		if os.IsNotExist(err) && ctx.Check {
			return true, nil
		}
		return false, fmt.Errorf("Inspecting %s: %s", dest, err)
	}

	if info.Mode().Perm() == mode {
		return false, nil
	}
	if ctx.Check {
		return true, nil
	}
	if err := os.Chmod(dest, mode); err != nil {
		return false, fmt.Errorf("Changing mode of %s: %s", dest, err)
	}
	return true, nil
}
