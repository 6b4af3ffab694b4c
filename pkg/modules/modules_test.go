// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package modules_test

import (
	"bytes"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/require"

	"github.com/pando85/ansible-rs/pkg/cmd/ui"
	"github.com/pando85/ansible-rs/pkg/modules"
	"github.com/pando85/ansible-rs/pkg/vars"
)

func testCtx(t *testing.T, bindings map[string]interface{}) (modules.RunContext, *bytes.Buffer) {
	t.Helper()

	var stdout bytes.Buffer
	scope := vars.Empty()
	if bindings != nil {
		scope = vars.New(bindings)
	}

	return modules.RunContext{
		UI:   ui.NewCustomWriterTTY(false, &stdout, &stdout),
		Vars: scope,
	}, &stdout
}

func TestGet(t *testing.T) {
	for _, name := range []string{"assert", "command", "copy", "debug", "require_version", "set_vars", "template"} {
		m, found := modules.Get(name)
		require.True(t, found, "module %s not registered", name)
		require.Equal(t, name, m.Name())
	}

	_, found := modules.Get("nope")
	require.False(t, found)

	require.Contains(t, modules.Names(), "copy")
}

func TestRenderParams(t *testing.T) {
	t.Run("params values are rendered", func(t *testing.T) {
		rendered, err := modules.RenderParams(yaml.MapSlice{
			{Key: "dest", Value: "{{ base }}/out.txt"},
		}, vars.New(map[string]interface{}{"base": "/tmp"}))
		require.NoError(t, err)

		mapping := rendered.(yaml.MapSlice)
		require.Equal(t, "/tmp/out.txt", mapping[0].Value)
	})

	t.Run("omitted params are dropped", func(t *testing.T) {
		rendered, err := modules.RenderParams(yaml.MapSlice{
			{Key: "dest", Value: "/tmp/out.txt"},
			{Key: "mode", Value: "{{ mode | default(omit()) }}"},
		}, vars.Empty())
		require.NoError(t, err)

		mapping := rendered.(yaml.MapSlice)
		require.Len(t, mapping, 1)
		require.Equal(t, "dest", mapping[0].Key)
	})

	t.Run("earlier params are visible to later ones", func(t *testing.T) {
		rendered, err := modules.RenderParams(yaml.MapSlice{
			{Key: "dest", Value: "/tmp/out.txt"},
			{Key: "backup", Value: "{{ dest }}.bak"},
		}, vars.Empty())
		require.NoError(t, err)

		mapping := rendered.(yaml.MapSlice)
		require.Equal(t, "/tmp/out.txt.bak", mapping[1].Value)
	})

	t.Run("undefined var fails", func(t *testing.T) {
		_, err := modules.RenderParams(yaml.MapSlice{
			{Key: "dest", Value: "{{ missing }}"},
		}, vars.Empty())
		require.Error(t, err)
	})

	t.Run("string shorthand params", func(t *testing.T) {
		rendered, err := modules.RenderParams("echo {{ word }}", vars.New(map[string]interface{}{"word": "yea"}))
		require.NoError(t, err)
		require.Equal(t, "echo yea", rendered)
	})
}
