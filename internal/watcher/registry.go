package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"golang.org/x/text/cases"
)

// Game describes one watched executable. Tracked processes keep a pointer to
// the Game they matched; the registry never mutates a Game once created, so
// that pointer stays valid after the registry is cleared or replaced.
type Game struct {
	Name       string
	Executable string
}

// Registry is the set of games the watcher matches against, keyed by
// case-folded executable basename.
type Registry struct {
	games map[string]*Game
	fold  cases.Caser
}

func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]*Game),
		fold:  cases.Fold(),
	}
}

// Set replaces the whole registry.
func (r *Registry) Set(games []Game) {
	r.Clear()
	for _, g := range games {
		r.Add(g.Name, g.Executable)
	}
}

func (r *Registry) Clear() {
	r.games = make(map[string]*Game)
}

// Add registers a game. A later entry for the same executable replaces the
// earlier one.
func (r *Registry) Add(name, executable string) {
	r.games[r.key(executable)] = &Game{Name: name, Executable: executable}
}

// Lookup matches an executable basename case-insensitively. It returns nil
// when nothing matches.
func (r *Registry) Lookup(executable string) *Game {
	if executable == "" {
		return nil
	}
	return r.games[r.key(executable)]
}

// SameExecutable compares two executable names the way Lookup does.
func (r *Registry) SameExecutable(a, b string) bool {
	return r.key(a) == r.key(b)
}

func (r *Registry) Len() int {
	return len(r.games)
}

func (r *Registry) key(executable string) string {
	return r.fold.String(executable)
}
