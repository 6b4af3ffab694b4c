// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules_test

import (
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"

	"github.com/pando85/ansible-rs/pkg/modules"
)

func TestAssert(t *testing.T) {
	m, found := modules.Get("assert")
	require.True(t, found)

	ctx, _ := testCtx(t, map[string]interface{}{"boo": "test"})

	t.Run("all conditions hold", func(t *testing.T) {
		result, err := m.Run(ctx, yaml.MapSlice{
			{Key: "that", Value: []interface{}{"boo == 'test'", "true"}},
		})
		require.NoError(t, err)
		require.False(t, result.Changed)
	})

	t.Run("failing condition", func(t *testing.T) {
		_, err := m.Run(ctx, yaml.MapSlice{
			{Key: "that", Value: []interface{}{"boo == 'nope'"}},
		})
		require.Error(t, err)
		require.ErrorContains(t, err, "Assertion failed")
	})

	t.Run("string shorthand", func(t *testing.T) {
		_, err := m.Run(ctx, "boo == 'test'")
		require.NoError(t, err)
	})

	t.Run("undefined var in condition", func(t *testing.T) {
		_, err := m.Run(ctx, "missing_var")
		require.Error(t, err)
	})

	t.Run("missing that", func(t *testing.T) {
		_, err := m.Run(ctx, yaml.MapSlice{})
		require.Error(t, err)
	})
}
