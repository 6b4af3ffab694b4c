// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"

	goversion "github.com/hashicorp/go-version"
)

// Version is overridden at build time via -ldflags.
var Version = "0.1.0"

// RequireAtLeast returns an error when the running binary is older than
// the given minimum version.
func RequireAtLeast(minimum string) error {
	required, err := goversion.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("Parsing required version '%s': %s", minimum, err)
	}

	current, err := goversion.NewVersion(Version)
	if err != nil {
		return fmt.Errorf("Parsing binary version '%s': %s", Version, err)
	}

	if current.LessThan(required) {
		return fmt.Errorf("rash version %s does not meet the minimum required version %s", Version, minimum)
	}

	return nil
}
