// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package jinja

import (
	"errors"
	"fmt"

	minijinja "github.com/mitsuhiko/minijinja/minijinja-go/v2"
)

// omitMessage is the fixed diagnostic text carried by engine errors that
// were triggered by the omit() builtin.
const omitMessage = "Param is omitted"

// ErrOmitParam signals that a template requested its value to be omitted
// via the omit() builtin. It carries no payload; match with errors.Is.
var ErrOmitParam = errors.New(omitMessage)

// RenderError is a generic rendering failure: template syntax errors,
// strict-undefined variable references, runtime errors inside expressions,
// failures to reparse rendered output, and unsupported node kinds.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return fmt.Sprintf("Rendering template: %s", e.Err) }

func (e *RenderError) Unwrap() error { return e.Err }

func renderErrorf(format string, args ...interface{}) *RenderError {
	return &RenderError{Err: fmt.Errorf(format, args...)}
}

// mapEngineError classifies an engine-level failure. An error whose
// message is exactly the omit marker becomes ErrOmitParam; anything else
// is wrapped into a RenderError preserving the engine diagnostics.
func mapEngineError(err error) error {
	var engineErr *minijinja.Error
	if errors.As(err, &engineErr) && engineErr.Message == omitMessage {
		return ErrOmitParam
	}
	return &RenderError{Err: err}
}
