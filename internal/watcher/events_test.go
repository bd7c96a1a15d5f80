package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingListener struct {
	calls []string
}

func (r *recordingListener) record(kind string, pid int, name, executable string) {
	r.calls = append(r.calls, fmt.Sprintf("%s %d %s %s", kind, pid, name, executable))
}

func (r *recordingListener) OnGameStart(pid int, name, executable string) {
	r.record("start", pid, name, executable)
}

func (r *recordingListener) OnGameStop(pid int, name, executable string) {
	r.record("stop", pid, name, executable)
}

func (r *recordingListener) OnGameForeground(pid int, name, executable string) {
	r.record("foreground", pid, name, executable)
}

func (r *recordingListener) OnGameBackground(pid int, name, executable string) {
	r.record("background", pid, name, executable)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "start", EventStart.String())
	assert.Equal(t, "stop", EventStop.String())
	assert.Equal(t, "foreground", EventForeground.String())
	assert.Equal(t, "background", EventBackground.String())
	assert.Equal(t, "EventKind(9)", EventKind(9).String())
}

func TestEventWithoutGame(t *testing.T) {
	e := Event{Kind: EventStop, PID: 1}
	assert.Empty(t, e.Name())
	assert.Empty(t, e.Executable())
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	game := &Game{Name: "Game", Executable: "game.exe"}
	first := &recordingListener{}
	second := &recordingListener{}
	d := NewDispatcher(first)
	d.AddListener(second)

	d.Publish(
		Event{Kind: EventStart, PID: 1, Game: game},
		Event{Kind: EventForeground, PID: 1, Game: game},
	)
	d.Publish(Event{Kind: EventBackground, PID: 1, Game: game}, Event{Kind: EventStop, PID: 1, Game: game})
	assert.Equal(t, 4, d.Pending())

	assert.Equal(t, 4, d.Drain())
	assert.Zero(t, d.Pending())
	want := []string{
		"start 1 Game game.exe",
		"foreground 1 Game game.exe",
		"background 1 Game game.exe",
		"stop 1 Game game.exe",
	}
	assert.Equal(t, want, first.calls)
	assert.Equal(t, want, second.calls)
	assert.Zero(t, d.Drain())
}

type republishingListener struct {
	recordingListener
	d *Dispatcher
}

func (r *republishingListener) OnGameStart(pid int, name, executable string) {
	r.recordingListener.OnGameStart(pid, name, executable)
	r.d.Publish(Event{Kind: EventStop, PID: pid, Game: &Game{Name: name, Executable: executable}})
}

func TestDispatcherDrainsEventsPublishedWhileDraining(t *testing.T) {
	d := NewDispatcher()
	l := &republishingListener{d: d}
	d.AddListener(l)
	d.Publish(Event{Kind: EventStart, PID: 3, Game: &Game{Name: "G", Executable: "g"}})

	assert.Equal(t, 2, d.Drain())
	assert.Equal(t, []string{"start 3 G g", "stop 3 G g"}, l.calls)
}

func TestDeliverIgnoresUnknownKind(t *testing.T) {
	l := &recordingListener{}
	Deliver(l, Event{Kind: EventKind(42), PID: 1})
	assert.Empty(t, l.calls)
}
