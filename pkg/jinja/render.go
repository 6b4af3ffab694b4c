// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package jinja

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mitsuhiko/minijinja/minijinja-go/v2/value"
)

// Render recursively renders a YAML value tree against vars.
//
// Strings are rendered as templates and the result is reparsed as YAML, so
// a template can yield a number, list or mapping instead of text. Keys of
// a mapping are rendered in order and each rendered value is bound under
// its original key name for the remaining keys of that same mapping.
// Sequence elements are rendered independently against the incoming vars.
// The first failure aborts the whole render.
func Render(v interface{}, vars value.Value) (interface{}, error) {
	switch node := v.(type) {
	case nil, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return v, nil

	case string:
		out, err := RenderString(node, vars)
		if err != nil {
			return nil, err
		}
		return parseValue(out)

	case []interface{}:
		rendered := make([]interface{}, 0, len(node))
		for _, item := range node {
			r, err := Render(item, vars)
			if err != nil {
				return nil, err
			}
			rendered = append(rendered, r)
		}
		return rendered, nil

	case yaml.MapSlice:
		rendered := make(yaml.MapSlice, 0, len(node))
		currentVars := vars
		for _, item := range node {
			key, ok := item.Key.(string)
			if !ok {
				return nil, renderErrorf("Expected string key in mapping, got %T: %v", item.Key, item.Key)
			}
			r, err := Render(item.Value, currentVars)
			if err != nil {
				return nil, err
			}
			currentVars = ExtendVars(currentVars, key, r)
			rendered = append(rendered, yaml.MapItem{Key: item.Key, Value: r})
		}
		return rendered, nil

	default:
		return nil, renderErrorf("%v is not a valid render value", v)
	}
}

// ExtendVars returns a scope containing every binding of base plus
// name -> v. The base scope is never mutated; later bindings shadow
// earlier ones.
func ExtendVars(base value.Value, name string, v interface{}) value.Value {
	return value.MergeMaps(base, value.FromMap(map[string]value.Value{name: ToValue(v)}))
}

// ToValue converts a YAML value tree into a template scope value,
// preserving mapping key order.
func ToValue(v interface{}) value.Value {
	switch node := v.(type) {
	case yaml.MapSlice:
		return value.FromObject(&mapSliceObject{items: node})
	case []interface{}:
		vals := make([]value.Value, len(node))
		for i, item := range node {
			vals[i] = ToValue(item)
		}
		return value.FromSlice(vals)
	default:
		return value.FromAny(v)
	}
}

var leadingZeroDigits = regexp.MustCompile(`^-?0[0-9]+$`)

// parseValue reinterprets rendered template output as a YAML value.
// A digit scalar with a leading zero resolves to its decimal digits
// ("0600" -> 600), never YAML 1.1 octal, so file modes survive the
// template round trip.
func parseValue(s string) (interface{}, error) {
	if trimmed := strings.TrimSpace(s); leadingZeroDigits.MatchString(trimmed) {
		if strings.HasPrefix(trimmed, "-") {
			if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
				return n, nil
			}
		} else if n, err := strconv.ParseUint(trimmed, 10, 64); err == nil {
			return n, nil
		}
	}

	var out interface{}
	if err := yaml.UnmarshalWithOptions([]byte(s), &out, yaml.UseOrderedMap()); err != nil {
		return nil, renderErrorf("Reparsing rendered value %q: %s", s, err)
	}
	return out, nil
}

// mapSliceObject exposes an ordered YAML mapping to the template engine.
type mapSliceObject struct {
	items yaml.MapSlice
}

var _ value.MapObject = &mapSliceObject{}

func (o *mapSliceObject) ObjectRepr() value.ObjectRepr { return value.ObjectReprMap }

func (o *mapSliceObject) ObjectLen() int { return len(o.items) }

func (o *mapSliceObject) Keys() []string {
	keys := make([]string, 0, len(o.items))
	for _, item := range o.items {
		if key, ok := item.Key.(string); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

func (o *mapSliceObject) GetAttr(name string) value.Value {
	for _, item := range o.items {
		if key, ok := item.Key.(string); ok && key == name {
			return ToValue(item.Value)
		}
	}
	return value.Undefined()
}

// String renders the mapping as a YAML flow mapping so that templates
// interpolating a whole dict produce reparseable output.
func (o *mapSliceObject) String() string {
	parts := make([]string, 0, len(o.items))
	for _, item := range o.items {
		key, ok := item.Key.(string)
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf("%q: %s", key, ToValue(item.Value).Repr()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
