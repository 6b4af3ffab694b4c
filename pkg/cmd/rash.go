// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/cppforlife/cobrautil"
	"github.com/spf13/cobra"

	"github.com/pando85/ansible-rs/pkg/version"
)

func NewDefaultRashCmd() *cobra.Command {
	return NewRashCmd(NewExecuteOptions())
}

// NewRashCmd builds the root command. Executing a script is the default
// action (`rash script.rh`), with `execute` kept as an explicit subcommand.
func NewRashCmd(o *ExecuteOptions) *cobra.Command {
	cmd := NewExecuteCmd(o)

	cmd.Use = "rash SCRIPT_FILE [SCRIPT_ARGS...]"
	cmd.Version = version.Version
	cmd.Short = "rash executes declarative shell scripts written as YAML tasks"
	cmd.Long = `rash executes declarative shell scripts written as YAML tasks.

Every string value in a task is a Jinja2 template rendered against the
accumulated vars before the task runs.`

	// Affects children as well
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	cmd.DisableAutoGenTag = true

	cmd.AddCommand(NewVersionCmd(NewVersionOptions()))
	cmd.AddCommand(NewExecuteCmd(NewExecuteOptions()))

	// Reconfigure Commands
	cobrautil.VisitCommands(cmd, cobrautil.ReconfigureCmdWithSubcmd,
		cobrautil.WrapRunEForCmd(cobrautil.ResolveFlagsForCmd))

	return cmd
}
