// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package jinja

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	minijinja "github.com/mitsuhiko/minijinja/minijinja-go/v2"
	"github.com/mitsuhiko/minijinja/minijinja-go/v2/syntax"
	"github.com/mitsuhiko/minijinja/minijinja-go/v2/value"
)

var (
	envOnce   sync.Once
	sharedEnv *minijinja.Environment

	// omitPlaceholder is a process-unique token returned by omit(). A
	// rendered result that still contains it, under case folding so that
	// case-changing filters cannot smuggle it through, is classified as
	// an omit request for the whole value. Filter arguments are evaluated
	// eagerly by the engine, so omit() cannot fail at call time without
	// also breaking `{{ x | default(omit()) }}` for defined x.
	omitPlaceholder string
)

func newEnv() *minijinja.Environment {
	env := minijinja.NewEnvironment()
	env.SetUndefinedBehavior(minijinja.UndefinedStrict)
	env.SetWhitespace(syntax.WhitespaceConfig{KeepTrailingNewline: true})
	env.AddFunction("omit", omitFn)
	return env
}

func omitFn(_ *minijinja.State, args []value.Value, kwargs map[string]value.Value) (value.Value, error) {
	if len(args) > 0 || len(kwargs) > 0 {
		return value.Undefined(), minijinja.NewError(minijinja.ErrTooManyArguments, "omit() takes no arguments")
	}
	return value.FromString(omitPlaceholder), nil
}

// engine returns the process-wide template environment. It is built once,
// lazily, and never mutated afterwards; per-call compiled templates are
// created via TemplateFromString and never registered on it, so concurrent
// renders share no compilation state.
func engine() *minijinja.Environment {
	envOnce.Do(func() {
		var token [16]byte
		if _, err := rand.Read(token[:]); err != nil {
			panic(fmt.Sprintf("generating omit placeholder: %s", err))
		}
		omitPlaceholder = "__omit_place_holder__" + hex.EncodeToString(token[:])
		sharedEnv = newEnv()
	})
	return sharedEnv
}

// RenderString compiles s as a template and renders it against vars.
// Undefined variable references are hard errors and a trailing newline in
// the template is preserved verbatim. Failures surface as ErrOmitParam or
// *RenderError.
func RenderString(s string, vars value.Value) (string, error) {
	tpl, err := engine().TemplateFromString(s)
	if err != nil {
		return "", mapEngineError(err)
	}

	out, err := tpl.Render(vars)
	if err != nil {
		return "", mapEngineError(err)
	}

	if strings.Contains(strings.ToLower(out), omitPlaceholder) {
		return "", mapEngineError(minijinja.NewError(minijinja.ErrInvalidOperation, omitMessage))
	}

	return out, nil
}

// IsRenderString evaluates s as a boolean condition against vars. Only the
// exact output "false" is false; any other output is true.
func IsRenderString(s string, vars value.Value) (bool, error) {
	out, err := RenderString(fmt.Sprintf("{%% if %s %%}true{%% else %%}false{%% endif %%}", s), vars)
	if err != nil {
		return false, err
	}
	return out != "false", nil
}
