// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

/*
Package ui provides a thin abstraction over user output (typically, a tty
device) used by the task runner and modules.
*/
package ui
