package policy

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"

	"coresched/internal/affinity"
	"coresched/internal/topology"

	"golang.org/x/text/cases"
)

// AffinityBinder is satisfied by *affinity.Scheduler.
type AffinityBinder interface {
	Bind(pid int, threads []int) affinity.BindResult
}

// Binder applies a game's policy when the game starts. It implements
// watcher.Listener; all events other than start are ignored.
type Binder struct {
	topology topology.Topology
	binder   AffinityBinder
	policies map[string]*Policy
	fold     cases.Caser
	// OnResult, if set, is called after every bind attempt.
	OnResult func(name string, result affinity.BindResult)
}

func NewBinder(topo topology.Topology, binder AffinityBinder) *Binder {
	return &Binder{
		topology: topo,
		binder:   binder,
		policies: make(map[string]*Policy),
		fold:     cases.Fold(),
	}
}

// SetPolicy registers the expression for an executable. An empty expression
// removes the policy.
func (b *Binder) SetPolicy(executable, expression string) error {
	key := b.fold.String(executable)
	if expression == "" {
		delete(b.policies, key)
		return nil
	}
	p, err := Compile(expression)
	if err != nil {
		return err
	}
	b.policies[key] = p
	return nil
}

// ClearPolicies drops all registered policies.
func (b *Binder) ClearPolicies() {
	b.policies = make(map[string]*Policy)
}

func (b *Binder) Len() int {
	return len(b.policies)
}

func (b *Binder) OnGameStart(pid int, name, executable string) {
	p, ok := b.policies[b.fold.String(executable)]
	if !ok {
		return
	}
	threads, err := p.Select(b.topology)
	if err != nil {
		slog.Error("failed to apply affinity policy", slog.String("name", name), slog.String("error", err.Error()))
		return
	}
	if len(threads) == 0 {
		slog.Warn("affinity policy selects no threads, skipping", slog.String("name", name), slog.String("expression", p.Expression))
		return
	}
	if b.topology.Degraded {
		slog.Warn("binding with a fallback topology", slog.String("name", name), slog.String("diagnostic", b.topology.Diagnostic))
	}
	result := b.binder.Bind(pid, threads)
	switch result {
	case affinity.BindSuccess:
		slog.Info("bound game", slog.String("name", name), slog.Int("pid", pid), slog.Any("threads", threads))
	case affinity.BindPermissionDenied:
		slog.Error("permission denied binding game, rerun with elevated privileges", slog.String("name", name), slog.Int("pid", pid))
	default:
		slog.Error("failed to bind game", slog.String("name", name), slog.Int("pid", pid), slog.String("result", result.String()))
	}
	if b.OnResult != nil {
		b.OnResult(name, result)
	}
}

func (b *Binder) OnGameStop(pid int, name, executable string)       {}
func (b *Binder) OnGameForeground(pid int, name, executable string) {}
func (b *Binder) OnGameBackground(pid int, name, executable string) {}
