// Package policy turns per-game affinity expressions into thread lists for a
// detected topology, and binds games to them when they start.
package policy

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"slices"

	"coresched/internal/topology"

	"github.com/casbin/govaluate"
	mapset "github.com/deckarep/golang-set/v2"
)

// Variables available to expressions, evaluated once per core group:
//
//	performance, efficiency, lowpower  class of the group
//	cachestacked                       group carries stacked L3 (X3D CCD)
//	index                              position of the group, 0-based
//	cores, threads                     size of the group
//	groups                             number of groups in the topology
//
// Example: "performance && (cachestacked || groups == 1)".
type Policy struct {
	Expression string
	evaluable  *govaluate.EvaluableExpression
}

// Compile parses the expression. Variables are checked at evaluation time.
func Compile(expression string) (*Policy, error) {
	evaluable, err := govaluate.NewEvaluableExpression(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid affinity expression %q: %w", expression, err)
	}
	return &Policy{Expression: expression, evaluable: evaluable}, nil
}

// Select returns the ascending union of the thread indices of every group the
// expression accepts. An empty result is not an error.
func (p *Policy) Select(topo topology.Topology) ([]int, error) {
	selected := mapset.NewThreadUnsafeSet[int]()
	for i, group := range topo.Groups {
		ok, err := p.Matches(group, i, len(topo.Groups))
		if err != nil {
			return nil, err
		}
		if ok {
			selected.Append(group.Threads()...)
		}
	}
	threads := selected.ToSlice()
	slices.Sort(threads)
	return threads, nil
}

// Matches evaluates the expression for one group.
func (p *Policy) Matches(group topology.CoreGroup, index, groupCount int) (bool, error) {
	result, err := p.evaluable.Evaluate(groupParameters(group, index, groupCount))
	if err != nil {
		return false, fmt.Errorf("failed to evaluate affinity expression %q: %w", p.Expression, err)
	}
	matched, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("affinity expression %q must evaluate to true or false, got %v", p.Expression, result)
	}
	return matched, nil
}

func groupParameters(group topology.CoreGroup, index, groupCount int) map[string]any {
	return map[string]any{
		"performance":  group.CoreClass == topology.ClassPerformance,
		"efficiency":   group.CoreClass == topology.ClassEfficiency,
		"lowpower":     group.CoreClass == topology.ClassLowPowerEfficiency,
		"cachestacked": group.IsCacheStacked,
		"index":        float64(index),
		"cores":        float64(group.CoreCount),
		"threads":      float64(group.ThreadCount),
		"groups":       float64(groupCount),
	}
}
