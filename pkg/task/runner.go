// Copyright 2026 ansible-rs authors
// SPDX-License-Identifier: Apache-2.0

package task

import (
	"fmt"

	"github.com/pando85/ansible-rs/pkg/cmd/ui"
	"github.com/pando85/ansible-rs/pkg/jinja"
	"github.com/pando85/ansible-rs/pkg/modules"
	"github.com/pando85/ansible-rs/pkg/vars"
)

// Runner executes tasks in order against an accumulating scope.
type Runner struct {
	ui    ui.UI
	check bool
	diff  bool
}

func NewRunner(ui ui.UI, check, diff bool) *Runner {
	return &Runner{ui: ui, check: check, diff: diff}
}

// Run executes every task and returns the final scope. Registered results
// and set_vars bindings become visible to all subsequent tasks, mirroring
// how mapping keys see their predecessors during a render.
func (r *Runner) Run(tasks []*Task, base vars.Vars) (vars.Vars, error) {
	current := base

	for _, task := range tasks {
		next, err := r.runTask(task, current)
		if err != nil {
			return current, err
		}
		current = next
	}
	return current, nil
}

func (r *Runner) runTask(task *Task, base vars.Vars) (vars.Vars, error) {
	name := task.Name
	if name == "" {
		name = task.Module().Name()
	}
	r.ui.Debugf("TASK [%s]\n", name)

	taskVars, err := r.applyTaskVars(task, base)
	if err != nil {
		return base, fmt.Errorf("Task '%s': %s", name, err)
	}

	for _, cond := range task.When {
		holds, err := jinja.IsRenderString(cond, taskVars)
		if err != nil {
			return base, fmt.Errorf("Task '%s': evaluating when '%s': %s", name, cond, err)
		}
		if !holds {
			r.ui.Printf("skipped: [%s]\n", name)
			return base, nil
		}
	}

	items, looped, err := r.loopItems(task, taskVars)
	if err != nil {
		return base, fmt.Errorf("Task '%s': %s", name, err)
	}

	current := base
	results := make([]interface{}, 0, len(items))

	for _, item := range items {
		itemVars := taskVars
		if looped {
			itemVars = jinja.ExtendVars(taskVars, "item", item)
		}

		result, err := r.runModule(task, itemVars)
		if err != nil {
			if !task.IgnoreErrors {
				return base, fmt.Errorf("Task '%s': %s", name, err)
			}
			r.ui.Warnf("ignored: [%s] %s\n", name, err)
			results = append(results, resultMap(result, true))
			continue
		}

		if result.Changed {
			r.ui.Printf("changed: [%s]\n", name)
		} else {
			r.ui.Printf("ok: [%s]\n", name)
		}

		if result.Vars != nil {
			current, err = vars.ApplyTree(current, result.Vars)
			if err != nil {
				return base, fmt.Errorf("Task '%s': %s", name, err)
			}
		}
		results = append(results, resultMap(result, false))
	}

	if task.Register != "" {
		var registered interface{}
		if looped {
			registered = results
		} else if len(results) > 0 {
			registered = results[0]
		}
		current = jinja.ExtendVars(current, task.Register, registered)
	}
	return current, nil
}

// applyTaskVars renders task-level vars key by key, each one visible to
// the next, and extends the incoming scope with them.
func (r *Runner) applyTaskVars(task *Task, base vars.Vars) (vars.Vars, error) {
	current := base
	for _, item := range task.Vars {
		key, ok := item.Key.(string)
		if !ok {
			return base, fmt.Errorf("Expected string key in vars, got %T: %v", item.Key, item.Key)
		}
		rendered, err := jinja.Render(item.Value, current)
		if err != nil {
			return base, err
		}
		current = jinja.ExtendVars(current, key, rendered)
	}
	return current, nil
}

// loopItems resolves the task's loop into concrete items. Without a loop
// the module runs once with no `item` binding.
func (r *Runner) loopItems(task *Task, taskVars vars.Vars) ([]interface{}, bool, error) {
	if task.Loop == nil {
		return []interface{}{nil}, false, nil
	}

	rendered, err := jinja.Render(task.Loop, taskVars)
	if err != nil {
		return nil, false, err
	}

	items, ok := rendered.([]interface{})
	if !ok {
		return nil, false, fmt.Errorf("Expected loop to yield a sequence, got %T", rendered)
	}
	return items, true, nil
}

func (r *Runner) runModule(task *Task, itemVars vars.Vars) (modules.ModuleResult, error) {
	params, err := modules.RenderParams(task.Params(), itemVars)
	if err != nil {
		return modules.ModuleResult{}, err
	}

	ctx := modules.RunContext{
		UI:    r.ui,
		Vars:  itemVars,
		Check: r.check,
		Diff:  r.diff,
	}
	return task.Module().Run(ctx, params)
}

func resultMap(result modules.ModuleResult, failed bool) map[string]interface{} {
	out := map[string]interface{}{
		"changed": result.Changed,
		"output":  result.Output,
		"failed":  failed,
	}
	if result.Extra != nil {
		out["extra"] = result.Extra
	}
	return out
}
