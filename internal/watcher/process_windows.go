//go:build windows

package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/windows"
)

type toolhelpLister struct{}

func newPlatformLister() ProcessLister {
	return toolhelpLister{}
}

// Processes walks a Toolhelp32 snapshot of the process table.
func (toolhelpLister) Processes() ([]Process, error) {
	snapshot, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, err
	}
	defer windows.CloseHandle(snapshot)

	var entry windows.ProcessEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	var result []Process
	err = windows.Process32First(snapshot, &entry)
	for err == nil {
		result = append(result, Process{
			PID:        int(entry.ProcessID),
			Executable: windows.UTF16ToString(entry.ExeFile[:]),
		})
		err = windows.Process32Next(snapshot, &entry)
	}
	if !errors.Is(err, windows.ERROR_NO_MORE_FILES) {
		return nil, err
	}
	return result, nil
}
