// Package curriculum narrows a subject's modules to the ones an exam covers.
package curriculum

import (
	"fmt"
	"strings"

	"github.com/xxxsen/examprep/internal/model"
)

// Policy selects how modules are matched against an exam scope.
type Policy string

const (
	// PolicyIndex slices by module position.
	PolicyIndex Policy = "index"
	// PolicyLabel matches "Module: N" labels built from Module.Number.
	PolicyLabel Policy = "label"
	// PolicyAuto uses the label policy when every module has a number.
	PolicyAuto Policy = "auto"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyAuto, nil
	case PolicyIndex, PolicyLabel, PolicyAuto:
		return p, nil
	default:
		return "", fmt.Errorf("unsupported scope policy: %s", s)
	}
}

// scopeNumbers lists the 1-indexed module positions each internal exam
// covers. Semester is absent because it always means every module.
var scopeNumbers = map[model.ExamScope][]int{
	model.ScopeInternal1: {1, 2},
	model.ScopeInternal2: {1, 2, 3, 4},
	model.ScopeInternal3: {5, 6},
}

// Scope returns the modules visible to generation for the given exam. The
// input slice is never modified.
func Scope(modules []model.Module, scope model.ExamScope, policy Policy) []model.Module {
	if len(modules) == 0 {
		return []model.Module{}
	}
	if policy == PolicyAuto {
		policy = PolicyIndex
		if allNumbered(modules) {
			policy = PolicyLabel
		}
	}
	if policy == PolicyLabel {
		return byLabel(modules, scope)
	}
	return byIndex(modules, scope)
}

func byIndex(modules []model.Module, scope model.ExamScope) []model.Module {
	numbers, ok := scopeNumbers[scope]
	if !ok {
		return clone(modules)
	}
	start := numbers[0] - 1
	end := numbers[len(numbers)-1]
	if start >= len(modules) {
		return []model.Module{}
	}
	if end > len(modules) {
		end = len(modules)
	}
	return clone(modules[start:end])
}

func byLabel(modules []model.Module, scope model.ExamScope) []model.Module {
	numbers, ok := scopeNumbers[scope]
	if !ok {
		return clone(modules)
	}
	wanted := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		wanted[model.ModuleLabel(n)] = struct{}{}
	}
	out := make([]model.Module, 0, len(numbers))
	for _, m := range modules {
		if _, ok := wanted[m.Label()]; ok {
			out = append(out, m)
		}
	}
	return out
}

func allNumbered(modules []model.Module) bool {
	for _, m := range modules {
		if m.Number <= 0 {
			return false
		}
	}
	return true
}

func clone(modules []model.Module) []model.Module {
	out := make([]model.Module, len(modules))
	copy(out, modules)
	return out
}
