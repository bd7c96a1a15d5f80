package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"

	"github.com/eapache/queue"
)

type EventKind int

const (
	EventStart EventKind = iota
	EventStop
	EventForeground
	EventBackground
)

func (k EventKind) String() string {
	switch k {
	case EventStart:
		return "start"
	case EventStop:
		return "stop"
	case EventForeground:
		return "foreground"
	case EventBackground:
		return "background"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is a lifecycle transition of one tracked process. Game is the
// descriptor recorded when the process was first tracked.
type Event struct {
	Kind EventKind
	PID  int
	Game *Game
}

func (e Event) Name() string {
	if e.Game == nil {
		return ""
	}
	return e.Game.Name
}

func (e Event) Executable() string {
	if e.Game == nil {
		return ""
	}
	return e.Game.Executable
}

// Listener receives lifecycle events.
type Listener interface {
	OnGameStart(pid int, name, executable string)
	OnGameStop(pid int, name, executable string)
	OnGameForeground(pid int, name, executable string)
	OnGameBackground(pid int, name, executable string)
}

// Deliver calls the listener method matching the event kind.
func Deliver(l Listener, e Event) {
	switch e.Kind {
	case EventStart:
		l.OnGameStart(e.PID, e.Name(), e.Executable())
	case EventStop:
		l.OnGameStop(e.PID, e.Name(), e.Executable())
	case EventForeground:
		l.OnGameForeground(e.PID, e.Name(), e.Executable())
	case EventBackground:
		l.OnGameBackground(e.PID, e.Name(), e.Executable())
	default:
		slog.Warn("dropping event of unknown kind", slog.Int("kind", int(e.Kind)), slog.Int("pid", e.PID))
	}
}

// Dispatcher queues events and hands them to every listener in publish
// order. It is not safe for concurrent use; the polling loop owns it.
type Dispatcher struct {
	pending   *queue.Queue
	listeners []Listener
}

func NewDispatcher(listeners ...Listener) *Dispatcher {
	return &Dispatcher{pending: queue.New(), listeners: listeners}
}

// AddListener registers a listener for events drained after this call.
func (d *Dispatcher) AddListener(l Listener) {
	d.listeners = append(d.listeners, l)
}

func (d *Dispatcher) Publish(events ...Event) {
	for _, e := range events {
		d.pending.Add(e)
	}
}

func (d *Dispatcher) Pending() int {
	return d.pending.Length()
}

// Drain delivers all pending events, including ones published by listeners
// while draining, and returns the number delivered.
func (d *Dispatcher) Drain() int {
	delivered := 0
	for d.pending.Length() > 0 {
		e := d.pending.Remove().(Event)
		for _, l := range d.listeners {
			Deliver(l, e)
		}
		delivered++
	}
	return delivered
}
