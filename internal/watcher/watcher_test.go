package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	procs []Process
	err   error
}

func (f *fakeLister) Processes() ([]Process, error) {
	return f.procs, f.err
}

type fakeProbe struct {
	fg Foreground
}

func (f *fakeProbe) Foreground() Foreground {
	return f.fg
}

func newTestWatcher(games ...Game) (*Watcher, *Registry) {
	registry := NewRegistry()
	registry.Set(games)
	return NewWatcher(registry, &fakeLister{}, &fakeProbe{}), registry
}

func kinds(events []Event) []EventKind {
	var result []EventKind
	for _, e := range events {
		result = append(result, e.Kind)
	}
	return result
}

func countEvents(events []Event, kind EventKind, pid int) int {
	count := 0
	for _, e := range events {
		if e.Kind == kind && e.PID == pid {
			count++
		}
	}
	return count
}

func TestScanEmitsSingleStart(t *testing.T) {
	w, _ := newTestWatcher(Game{Name: "Game", Executable: "game.exe"})
	procs := []Process{{PID: 1, Executable: "init"}, {PID: 42, Executable: "game.exe"}}

	events := w.ScanSnapshot(procs, Foreground{})
	require.Len(t, events, 1)
	assert.Equal(t, EventStart, events[0].Kind)
	assert.Equal(t, 42, events[0].PID)
	assert.Equal(t, "Game", events[0].Name())
	assert.Equal(t, "game.exe", events[0].Executable())

	events = w.ScanSnapshot(procs, Foreground{})
	assert.Empty(t, events)
	require.Len(t, w.Tracked(), 1)
	assert.Equal(t, 42, w.Tracked()[0].PID)
}

func TestScanMatchIsCaseInsensitive(t *testing.T) {
	w, _ := newTestWatcher(Game{Name: "Game", Executable: "Game.EXE"})
	events := w.ScanSnapshot([]Process{{PID: 7, Executable: "game.exe"}}, Foreground{})
	require.Len(t, events, 1)
	// the event carries the registered spelling
	assert.Equal(t, "Game.EXE", events[0].Executable())
}

func TestScanStopUsesStoredDescriptor(t *testing.T) {
	w, registry := newTestWatcher(Game{Name: "Game", Executable: "game.exe"})
	w.ScanSnapshot([]Process{{PID: 42, Executable: "game.exe"}}, Foreground{})

	registry.Clear()
	registry.Add("Renamed", "game.exe")

	events := w.ScanSnapshot([]Process{{PID: 1, Executable: "init"}}, Foreground{})
	require.Len(t, events, 1)
	assert.Equal(t, EventStop, events[0].Kind)
	assert.Equal(t, 42, events[0].PID)
	assert.Equal(t, "Game", events[0].Name())

	assert.Empty(t, w.ScanSnapshot([]Process{{PID: 1, Executable: "init"}}, Foreground{}))
	assert.Empty(t, w.Tracked())
}

func TestScanKeepsTrackedProcessAfterRegistryClear(t *testing.T) {
	w, registry := newTestWatcher(Game{Name: "Game", Executable: "game.exe"})
	procs := []Process{{PID: 42, Executable: "game.exe"}}
	w.ScanSnapshot(procs, Foreground{})

	registry.Clear()
	assert.Empty(t, w.ScanSnapshot(procs, Foreground{}))
	require.Len(t, w.Tracked(), 1)
	assert.Equal(t, "Game", w.Tracked()[0].Game.Name)
}

func TestScanStopsReusedPID(t *testing.T) {
	w, _ := newTestWatcher(Game{Name: "Game", Executable: "game.exe"}, Game{Name: "Other", Executable: "other.exe"})
	w.ScanSnapshot([]Process{{PID: 42, Executable: "game.exe"}}, Foreground{})

	events := w.ScanSnapshot([]Process{{PID: 42, Executable: "bash"}}, Foreground{Known: true, PID: 42})
	require.Len(t, events, 1)
	assert.Equal(t, EventStop, events[0].Kind)
	assert.Equal(t, 42, events[0].PID)
	assert.Equal(t, "Game", events[0].Name())
	assert.Empty(t, w.Tracked())
	assert.False(t, w.IsForeground())

	// a reused pid that matches another game starts a new session
	w.ScanSnapshot([]Process{{PID: 7, Executable: "game.exe"}}, Foreground{})
	events = w.ScanSnapshot([]Process{{PID: 7, Executable: "other.exe"}}, Foreground{})
	assert.Equal(t, []EventKind{EventStop, EventStart}, kinds(events))
	assert.Equal(t, "Game", events[0].Name())
	assert.Equal(t, "Other", events[1].Name())
	require.Len(t, w.Tracked(), 1)
	assert.Equal(t, "Other", w.Tracked()[0].Game.Name)
}

func TestScanKeepsTrackedPIDWithSameExecutable(t *testing.T) {
	w, registry := newTestWatcher(Game{Name: "Game", Executable: "Game.exe"})
	w.ScanSnapshot([]Process{{PID: 42, Executable: "game.exe"}}, Foreground{})

	registry.Clear()
	assert.Empty(t, w.ScanSnapshot([]Process{{PID: 42, Executable: "GAME.EXE"}}, Foreground{}))
	// an unreadable name is not taken as a different executable
	assert.Empty(t, w.ScanSnapshot([]Process{{PID: 42}}, Foreground{}))
	assert.Len(t, w.Tracked(), 1)
}

func TestScanTracksInstancesIndependently(t *testing.T) {
	w, _ := newTestWatcher(Game{Name: "Game", Executable: "game.exe"})
	both := []Process{{PID: 10, Executable: "game.exe"}, {PID: 11, Executable: "GAME.exe"}}

	events := w.ScanSnapshot(both, Foreground{})
	assert.Equal(t, 1, countEvents(events, EventStart, 10))
	assert.Equal(t, 1, countEvents(events, EventStart, 11))
	assert.Len(t, w.Tracked(), 2)

	events = w.ScanSnapshot(both[1:], Foreground{})
	require.Len(t, events, 1)
	assert.Equal(t, 1, countEvents(events, EventStop, 10))

	events = w.ScanSnapshot(nil, Foreground{})
	require.Len(t, events, 1)
	assert.Equal(t, 1, countEvents(events, EventStop, 11))
}

func TestScanForegroundIsEdgeTriggered(t *testing.T) {
	w, _ := newTestWatcher(Game{Name: "A", Executable: "a.exe"}, Game{Name: "B", Executable: "b.exe"})
	procs := []Process{{PID: 5, Executable: "a.exe"}, {PID: 3, Executable: "b.exe"}}
	focused := Foreground{Known: true, PID: 5}

	events := w.ScanSnapshot(procs, focused)
	assert.Equal(t, []EventKind{EventStart, EventStart, EventForeground, EventForeground}, kinds(events))
	// foreground events are addressed to every tracked process
	assert.Equal(t, 3, events[2].PID)
	assert.Equal(t, 5, events[3].PID)
	assert.True(t, w.IsForeground())

	assert.Empty(t, w.ScanSnapshot(procs, focused))

	events = w.ScanSnapshot(procs, Foreground{Known: true, PID: 99})
	assert.Equal(t, []EventKind{EventBackground, EventBackground}, kinds(events))
	assert.False(t, w.IsForeground())

	assert.Empty(t, w.ScanSnapshot(procs, Foreground{Known: true, PID: 99}))
}

func TestScanFullscreenCountsAsForeground(t *testing.T) {
	w, _ := newTestWatcher(Game{Name: "Game", Executable: "game.exe"})
	procs := []Process{{PID: 42, Executable: "launcher.exe"}, {PID: 43, Executable: "game.exe"}}

	events := w.ScanSnapshot(procs, Foreground{Known: true, PID: 42, Fullscreen: true})
	assert.Equal(t, []EventKind{EventStart, EventForeground}, kinds(events))
	assert.True(t, w.IsForeground())
}

func TestScanUnknownForegroundKeepsFlag(t *testing.T) {
	w, _ := newTestWatcher(Game{Name: "Game", Executable: "game.exe"})
	procs := []Process{{PID: 42, Executable: "game.exe"}}
	w.ScanSnapshot(procs, Foreground{Known: true, PID: 42})
	require.True(t, w.IsForeground())

	assert.Empty(t, w.ScanSnapshot(procs, Foreground{}))
	assert.True(t, w.IsForeground())
}

func TestScanForegroundWithoutTrackedProcesses(t *testing.T) {
	w, _ := newTestWatcher()
	events := w.ScanSnapshot([]Process{{PID: 1, Executable: "init"}}, Foreground{Known: true, PID: 1, Fullscreen: true})
	assert.Empty(t, events)
	assert.True(t, w.IsForeground())
}

func TestReset(t *testing.T) {
	w, _ := newTestWatcher(Game{Name: "Game", Executable: "game.exe"})
	procs := []Process{{PID: 2, Executable: "game.exe"}, {PID: 1, Executable: "game.exe"}}
	w.ScanSnapshot(procs, Foreground{Known: true, PID: 1})
	require.True(t, w.IsForeground())

	events := w.Reset()
	assert.Equal(t, []EventKind{EventStop, EventStop}, kinds(events))
	assert.Equal(t, 1, events[0].PID)
	assert.Equal(t, 2, events[1].PID)
	assert.Empty(t, w.Tracked())
	assert.False(t, w.IsForeground())

	assert.Empty(t, w.Reset())

	// processes still running are picked up again as new sessions
	events = w.ScanSnapshot(procs, Foreground{})
	assert.Equal(t, []EventKind{EventStart, EventStart}, kinds(events))
}

func TestScanListerFailureKeepsState(t *testing.T) {
	registry := NewRegistry()
	registry.Add("Game", "game.exe")
	lister := &fakeLister{procs: []Process{{PID: 42, Executable: "game.exe"}}}
	w := NewWatcher(registry, lister, &fakeProbe{})

	require.Len(t, w.Scan(), 1)

	lister.err = errors.New("permission denied")
	lister.procs = nil
	assert.Empty(t, w.Scan())
	assert.Len(t, w.Tracked(), 1)

	lister.err = nil
	events := w.Scan()
	require.Len(t, events, 1)
	assert.Equal(t, EventStop, events[0].Kind)
}

func TestScanUsesProbe(t *testing.T) {
	registry := NewRegistry()
	registry.Add("Game", "game.exe")
	probe := &fakeProbe{fg: Foreground{Known: true, PID: 42}}
	w := NewWatcher(registry, &fakeLister{procs: []Process{{PID: 42, Executable: "game.exe"}}}, probe)

	assert.Equal(t, []EventKind{EventStart, EventForeground}, kinds(w.Scan()))
}
