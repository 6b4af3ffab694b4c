// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"

	"github.com/pando85/ansible-rs/pkg/jinja"
	"github.com/pando85/ansible-rs/pkg/modules"
)

func runTemplate(t *testing.T, ctx modules.RunContext, params yaml.MapSlice) (modules.ModuleResult, error) {
	t.Helper()
	m, found := modules.Get("template")
	require.True(t, found)
	return m.Run(ctx, params)
}

func TestTemplateRendersFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "template.j2")
	dest := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(src, []byte("{{ boo }}\n"), 0644))

	ctx, _ := testCtx(t, map[string]interface{}{"boo": "test"})

	result, err := runTemplate(t, ctx, yaml.MapSlice{
		{Key: "src", Value: src},
		{Key: "dest", Value: dest},
		{Key: "mode", Value: "0400"},
	})
	require.NoError(t, err)
	require.True(t, result.Changed)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	require.Equal(t, "test\n", string(data))

	info, err := os.Stat(dest)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0400), info.Mode().Perm())
}

func TestTemplateUndefinedVarFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "template.j2")
	require.NoError(t, os.WriteFile(src, []byte("{{ missing }}\n"), 0644))

	ctx, _ := testCtx(t, nil)

	_, err := runTemplate(t, ctx, yaml.MapSlice{
		{Key: "src", Value: src},
		{Key: "dest", Value: filepath.Join(dir, "out.txt")},
	})
	require.Error(t, err)

	var renderErr *jinja.RenderError
	require.True(t, errors.As(err, &renderErr))
}

func TestTemplateMissingParams(t *testing.T) {
	ctx, _ := testCtx(t, nil)
	_, err := runTemplate(t, ctx, yaml.MapSlice{
		{Key: "src", Value: "template.j2"},
	})
	require.Error(t, err)
}
