// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

func init() {
	register(commandModule{})
}

// CommandParams describes a command execution: either an argv list or a
// command string split on whitespace (no shell involved).
type CommandParams struct {
	Cmd   string   `yaml:"cmd,omitempty"`
	Argv  []string `yaml:"argv,omitempty"`
	Chdir string   `yaml:"chdir,omitempty"`
}

type commandModule struct{}

func (commandModule) Name() string { return "command" }

func (commandModule) Run(ctx RunContext, params interface{}) (ModuleResult, error) {
	var p CommandParams

	// `command: ls -la` shorthand
	if cmd, ok := params.(string); ok {
		p.Cmd = cmd
	} else if err := decodeParams(params, &p); err != nil {
		return ModuleResult{}, err
	}

	argv := p.Argv
	if len(argv) == 0 {
		argv = strings.Fields(p.Cmd)
	}
	if len(argv) == 0 {
		return ModuleResult{}, fmt.Errorf("Missing required param 'cmd' or 'argv'")
	}

	if ctx.Check {
		return ModuleResult{Changed: false, Output: strings.Join(argv, " ")}, nil
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = p.Chdir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	rc := -1
	if cmd.ProcessState != nil {
		rc = cmd.ProcessState.ExitCode()
	}

	result := ModuleResult{
		Changed: true,
		Output:  strings.TrimSuffix(stdout.String(), "\n"),
		Extra: map[string]interface{}{
			"rc":     rc,
			"stderr": strings.TrimSuffix(stderr.String(), "\n"),
		},
	}

	if runErr != nil {
		return result, fmt.Errorf("Running '%s': %s", strings.Join(argv, " "), runErr)
	}
	return result, nil
}
