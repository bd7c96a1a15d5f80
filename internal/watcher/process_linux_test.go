//go:build linux

package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProc(t *testing.T, root, pid, comm string, cmdline ...string) {
	t.Helper()
	dir := filepath.Join(root, pid)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "comm"), []byte(comm+"\n"), 0o644))
	var raw []byte
	for _, arg := range cmdline {
		raw = append(raw, arg...)
		raw = append(raw, 0)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cmdline"), raw, 0o644))
}

func TestProcfsListerProcesses(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "1", "systemd", "/sbin/init")
	writeProc(t, root, "200", "Cyberpunk2077.e", `Z:\games\Cyberpunk 2077\bin\x64\Cyberpunk2077.exe`, "--launcher-skip")
	writeProc(t, root, "300", "kworker/0:1-eve")
	writeProc(t, root, "400", "VeryLongProcess", "/usr/bin/something-else")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "self"), 0o755))

	procs, err := procfsLister{mountPoint: root}.Processes()
	require.NoError(t, err)
	slices.SortFunc(procs, func(a, b Process) int { return a.PID - b.PID })

	assert.Equal(t, []Process{
		{PID: 1, Executable: "systemd"},
		{PID: 200, Executable: "Cyberpunk2077.exe"},
		{PID: 300, Executable: "kworker/0:1-eve"},
		{PID: 400, Executable: "VeryLongProcess"},
	}, procs)
}

func TestProcfsListerMissingMount(t *testing.T) {
	_, err := procfsLister{mountPoint: filepath.Join(t.TempDir(), "missing")}.Processes()
	assert.Error(t, err)
}

func TestBasename(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/usr/bin/game", "game"},
		{`C:\Games\game.exe`, "game.exe"},
		{"game.exe", "game.exe"},
		{"/opt/", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, basename(tt.path))
		})
	}
}
