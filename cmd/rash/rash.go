// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"

	"github.com/pando85/ansible-rs/pkg/cmd"
)

func main() {
	command := cmd.NewDefaultRashCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "rash: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
