// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pando85/ansible-rs/pkg/cmd/ui"
	"github.com/pando85/ansible-rs/pkg/jinja"
	"github.com/pando85/ansible-rs/pkg/task"
	"github.com/pando85/ansible-rs/pkg/vars"
)

type ExecuteOptions struct {
	Debug bool
	Check bool
	Diff  bool

	ExtraVars []string
	VarsFiles []string
}

func NewExecuteOptions() *ExecuteOptions {
	return &ExecuteOptions{}
}

func NewExecuteCmd(o *ExecuteOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute SCRIPT_FILE [SCRIPT_ARGS...]",
		Short: "Execute a script of tasks",
		Args:  cobra.MinimumNArgs(1),
		RunE:  func(_ *cobra.Command, args []string) error { return o.Run(args[0], args[1:]) },
	}
	cmd.Flags().BoolVar(&o.Debug, "debug", false, "Enable debug output")
	cmd.Flags().BoolVar(&o.Check, "check", false, "Do not apply any change, only report what would change")
	cmd.Flags().BoolVar(&o.Diff, "diff", false, "Show file content changes as line diffs")
	cmd.Flags().StringArrayVarP(&o.ExtraVars, "extra-var", "e", nil,
		"Set extra var (format: key=value, value parsed as YAML) (can be specified multiple times)")
	cmd.Flags().StringArrayVar(&o.VarsFiles, "vars-file", nil,
		"Load vars from a YAML, JSON or TOML file (can be specified multiple times)")
	return cmd
}

func (o *ExecuteOptions) Run(scriptFile string, scriptArgs []string) error {
	tty := ui.NewTTY(o.Debug)
	return o.RunWithUI(tty, scriptFile, scriptArgs)
}

func (o *ExecuteOptions) RunWithUI(tty ui.UI, scriptFile string, scriptArgs []string) error {
	data, err := os.ReadFile(scriptFile)
	if err != nil {
		return fmt.Errorf("Reading script: %s", err)
	}

	baseVars, err := o.buildVars(scriptFile, scriptArgs)
	if err != nil {
		return err
	}

	tasks, err := task.ParseScript(data)
	if err != nil {
		return err
	}

	tty.Debugf("running %s (%d tasks)\n", scriptFile, len(tasks))

	_, err = task.NewRunner(tty, o.Check, o.Diff).Run(tasks, baseVars)
	return err
}

func (o *ExecuteOptions) buildVars(scriptFile string, scriptArgs []string) (vars.Vars, error) {
	baseVars, err := vars.Builtins(scriptFile, scriptArgs)
	if err != nil {
		return baseVars, err
	}

	for _, path := range o.VarsFiles {
		tree, err := vars.LoadFile(path)
		if err != nil {
			return baseVars, err
		}
		baseVars, err = vars.ApplyTree(baseVars, tree)
		if err != nil {
			return baseVars, err
		}
	}

	// -e vars take precedence over vars files
	for _, kv := range o.ExtraVars {
		name, val, err := vars.ParseKV(kv)
		if err != nil {
			return baseVars, err
		}
		baseVars = jinja.ExtendVars(baseVars, name, val)
	}
	return baseVars, nil
}
