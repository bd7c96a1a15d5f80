package watch

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"coresched/internal/watcher"

	"golang.org/x/term"
)

// eventPrinter writes one line per game event: aligned text on a terminal,
// JSON lines when the output is piped.
type eventPrinter struct {
	out  io.Writer
	json bool
	now  func() time.Time
}

func newEventPrinter(out *os.File) *eventPrinter {
	return &eventPrinter{
		out:  out,
		json: !term.IsTerminal(int(out.Fd())),
		now:  time.Now,
	}
}

type eventRecord struct {
	Time       string `json:"time"`
	Event      string `json:"event"`
	PID        int    `json:"pid"`
	Name       string `json:"name"`
	Executable string `json:"executable"`
}

func (p *eventPrinter) print(kind watcher.EventKind, pid int, name, executable string) {
	now := p.now()
	if p.json {
		line, err := json.Marshal(eventRecord{
			Time:       now.Format(time.RFC3339),
			Event:      kind.String(),
			PID:        pid,
			Name:       name,
			Executable: executable,
		})
		if err != nil {
			slog.Error("failed to encode event", slog.String("error", err.Error()))
			return
		}
		fmt.Fprintf(p.out, "%s\n", line)
		return
	}
	fmt.Fprintf(p.out, "%s  %-10s  %7d  %s (%s)\n", now.Format("15:04:05"), kind, pid, name, executable)
}

func (p *eventPrinter) OnGameStart(pid int, name, executable string) {
	p.print(watcher.EventStart, pid, name, executable)
}

func (p *eventPrinter) OnGameStop(pid int, name, executable string) {
	p.print(watcher.EventStop, pid, name, executable)
}

func (p *eventPrinter) OnGameForeground(pid int, name, executable string) {
	p.print(watcher.EventForeground, pid, name, executable)
}

func (p *eventPrinter) OnGameBackground(pid int, name, executable string) {
	p.print(watcher.EventBackground, pid, name, executable)
}
