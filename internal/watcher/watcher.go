// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package watcher tracks the lifecycle of registered game processes by
// re-scanning the OS process table on every call and reporting start, stop,
// foreground and background transitions.
package watcher

import (
	"log/slog"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// Process is one entry of a process table snapshot. Executable is the short
// executable name, e.g., "game.exe".
type Process struct {
	PID        int
	Executable string
}

// ProcessLister enumerates live processes. Processes that disappear while
// being read are left out rather than reported as errors.
type ProcessLister interface {
	Processes() ([]Process, error)
}

// Foreground describes the window that currently has input focus.
type Foreground struct {
	// Known is false when there is no foreground window or the platform
	// cannot tell; the foreground flag is then left unchanged.
	Known bool
	PID   int
	// Fullscreen is set when the window covers its whole monitor.
	Fullscreen bool
}

type ForegroundProbe interface {
	Foreground() Foreground
}

// TrackedProcess is a live process matched against the registry.
type TrackedProcess struct {
	PID  int
	Game *Game
}

// Watcher owns the tracked process set. It is not safe for concurrent use;
// the caller drives it from a single polling loop.
type Watcher struct {
	registry   *Registry
	lister     ProcessLister
	probe      ForegroundProbe
	tracked    map[int]TrackedProcess
	foreground bool
}

func NewWatcher(registry *Registry, lister ProcessLister, probe ForegroundProbe) *Watcher {
	return &Watcher{
		registry: registry,
		lister:   lister,
		probe:    probe,
		tracked:  make(map[int]TrackedProcess),
	}
}

// NewPlatformWatcher returns a watcher reading the process table and
// foreground window of the current OS.
func NewPlatformWatcher(registry *Registry) *Watcher {
	return NewWatcher(registry, newPlatformLister(), newPlatformProbe())
}

// Scan enumerates the process table and returns the transitions since the
// previous scan. A failed enumeration leaves the state untouched.
func (w *Watcher) Scan() []Event {
	procs, err := w.lister.Processes()
	if err != nil {
		slog.Warn("failed to enumerate processes", slog.String("error", err.Error()))
		return nil
	}
	return w.ScanSnapshot(procs, w.probe.Foreground())
}

// ScanSnapshot applies one process table snapshot and foreground sample.
// Start events follow snapshot order. A tracked pid that now runs another
// executable is stopped just before the new process is matched. Other stop,
// foreground and background events are ordered by pid.
func (w *Watcher) ScanSnapshot(procs []Process, fg Foreground) []Event {
	var events []Event
	alive := mapset.NewThreadUnsafeSet[int]()
	for _, proc := range procs {
		alive.Add(proc.PID)
		if tp, ok := w.tracked[proc.PID]; ok {
			if proc.Executable == "" || w.registry.SameExecutable(tp.Game.Executable, proc.Executable) {
				continue
			}
			// pid reused by another executable
			events = append(events, w.stop(proc.PID))
		}
		game := w.registry.Lookup(proc.Executable)
		if game == nil {
			continue
		}
		w.tracked[proc.PID] = TrackedProcess{PID: proc.PID, Game: game}
		slog.Info("game started", slog.Int("pid", proc.PID), slog.String("name", game.Name), slog.String("executable", game.Executable))
		events = append(events, Event{Kind: EventStart, PID: proc.PID, Game: game})
	}

	for _, pid := range w.trackedPIDs() {
		if !alive.Contains(pid) {
			events = append(events, w.stop(pid))
		}
	}

	if fg.Known {
		_, gameWindow := w.tracked[fg.PID]
		now := gameWindow || fg.Fullscreen
		switch {
		case now && !w.foreground:
			events = append(events, w.eventsForAll(EventForeground)...)
		case !now && w.foreground:
			events = append(events, w.eventsForAll(EventBackground)...)
		}
		if now != w.foreground {
			slog.Debug("foreground changed", slog.Bool("foreground", now), slog.Int("foregroundPID", fg.PID), slog.Bool("fullscreen", fg.Fullscreen))
		}
		w.foreground = now
	}
	return events
}

// Reset emits a stop for every tracked process, clears the tracked set and
// the foreground flag. No background event is emitted.
func (w *Watcher) Reset() []Event {
	events := w.eventsForAll(EventStop)
	w.tracked = make(map[int]TrackedProcess)
	w.foreground = false
	return events
}

// Tracked returns the tracked processes ordered by pid.
func (w *Watcher) Tracked() []TrackedProcess {
	tracked := make([]TrackedProcess, 0, len(w.tracked))
	for _, pid := range w.trackedPIDs() {
		tracked = append(tracked, w.tracked[pid])
	}
	return tracked
}

// IsForeground reports the current foreground flag.
func (w *Watcher) IsForeground() bool {
	return w.foreground
}

// stop removes a tracked pid and returns its stop event.
func (w *Watcher) stop(pid int) Event {
	tp := w.tracked[pid]
	delete(w.tracked, pid)
	slog.Info("game stopped", slog.Int("pid", pid), slog.String("name", tp.Game.Name), slog.String("executable", tp.Game.Executable))
	return Event{Kind: EventStop, PID: pid, Game: tp.Game}
}

func (w *Watcher) eventsForAll(kind EventKind) []Event {
	events := make([]Event, 0, len(w.tracked))
	for _, pid := range w.trackedPIDs() {
		events = append(events, Event{Kind: kind, PID: pid, Game: w.tracked[pid].Game})
	}
	return events
}

func (w *Watcher) trackedPIDs() []int {
	pids := make([]int, 0, len(w.tracked))
	for pid := range w.tracked {
		pids = append(pids, pid)
	}
	slices.Sort(pids)
	return pids
}
