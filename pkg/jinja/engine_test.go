// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package jinja_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mitsuhiko/minijinja/minijinja-go/v2/value"
	"github.com/stretchr/testify/require"

	"github.com/pando85/ansible-rs/pkg/jinja"
)

func testVars(vars map[string]interface{}) value.Value {
	if vars == nil {
		vars = map[string]interface{}{}
	}
	return value.FromAny(vars)
}

func TestRenderString(t *testing.T) {
	tests := []struct {
		template string
		vars     map[string]interface{}
		expected string
	}{
		{"{{ yea }}", map[string]interface{}{"yea": 1}, "1"},
		{"{{ yea }} ", map[string]interface{}{"yea": 1}, "1 "},
		{" {{ yea }}", map[string]interface{}{"yea": 1}, " 1"},
		{"{{ yea }}\n", map[string]interface{}{"yea": 1}, "1\n"},
		{"plain text\n", nil, "plain text\n"},
		{"{{ boo }}", map[string]interface{}{"boo": "test"}, "test"},
	}

	for _, test := range tests {
		t.Run(test.template, func(t *testing.T) {
			out, err := jinja.RenderString(test.template, testVars(test.vars))
			require.NoError(t, err)
			require.Equal(t, test.expected, out)
		})
	}
}

func TestRenderStringUndefinedVarFails(t *testing.T) {
	_, err := jinja.RenderString("{{ missing_var }}", testVars(nil))
	require.Error(t, err)

	var renderErr *jinja.RenderError
	require.True(t, errors.As(err, &renderErr))
	require.False(t, errors.Is(err, jinja.ErrOmitParam))
}

func TestRenderStringSyntaxErrorFails(t *testing.T) {
	_, err := jinja.RenderString("{{ unclosed", testVars(nil))
	require.Error(t, err)

	var renderErr *jinja.RenderError
	require.True(t, errors.As(err, &renderErr))
}

func TestRenderStringOmit(t *testing.T) {
	t.Run("undefined var with omit default", func(t *testing.T) {
		_, err := jinja.RenderString("{{ package_filters | default(omit()) }}", testVars(nil))
		require.ErrorIs(t, err, jinja.ErrOmitParam)
	})

	t.Run("defined var with omit default", func(t *testing.T) {
		out, err := jinja.RenderString("{{ x | default(omit()) }}", testVars(map[string]interface{}{"x": 3}))
		require.NoError(t, err)
		require.Equal(t, "3", out)
	})

	t.Run("direct omit call", func(t *testing.T) {
		_, err := jinja.RenderString("{{ omit() }}", testVars(nil))
		require.ErrorIs(t, err, jinja.ErrOmitParam)
	})

	t.Run("omit embedded in larger output omits the whole value", func(t *testing.T) {
		_, err := jinja.RenderString("{{ x | default(omit()) }}.bak", testVars(nil))
		require.ErrorIs(t, err, jinja.ErrOmitParam)
	})

	t.Run("case-changing filters cannot leak the omit marker", func(t *testing.T) {
		_, err := jinja.RenderString("{{ omit() | upper }}", testVars(nil))
		require.ErrorIs(t, err, jinja.ErrOmitParam)
	})

	t.Run("omit takes no arguments", func(t *testing.T) {
		_, err := jinja.RenderString("{{ omit(1) }}", testVars(nil))
		require.Error(t, err)
		require.False(t, errors.Is(err, jinja.ErrOmitParam))
	})
}

func TestIsRenderString(t *testing.T) {
	tests := []struct {
		expr     string
		vars     map[string]interface{}
		expected bool
	}{
		{"true", nil, true},
		{"false", nil, false},
		{"boo == 'test'", map[string]interface{}{"boo": "test"}, true},
		{"boo != 'test'", map[string]interface{}{"boo": "test"}, false},
		{"x > 2", map[string]interface{}{"x": 5}, true},
	}

	for _, test := range tests {
		t.Run(test.expr, func(t *testing.T) {
			result, err := jinja.IsRenderString(test.expr, testVars(test.vars))
			require.NoError(t, err)
			require.Equal(t, test.expected, result)
		})
	}
}

func TestIsRenderStringUndefinedVarFails(t *testing.T) {
	_, err := jinja.IsRenderString("missing_var", testVars(nil))
	require.Error(t, err)
}

func TestRenderStringConcurrent(t *testing.T) {
	const workers = 16

	outs := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			outs[n], errs[n] = jinja.RenderString("{{ n * 2 }}", testVars(map[string]interface{}{"n": n}))
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, fmt.Sprintf("%d", i*2), outs[i])
	}
}
