//go:build windows

package topology

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"
	"runtime"
	"strings"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	processorKeyPath   = `HARDWARE\DESCRIPTION\System\CentralProcessor\0`
	processorNameValue = "ProcessorNameString"
	allProcessorGroups = 0xFFFF
)

// readHost reads the brand string that Windows caches from CPUID and the
// active logical processor count across all processor groups.
func readHost() (brand string, threads int) {
	threads = int(windows.GetActiveProcessorCount(allProcessorGroups))
	if threads == 0 {
		threads = runtime.NumCPU()
	}
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, processorKeyPath, registry.QUERY_VALUE)
	if err != nil {
		slog.Warn("failed to open processor registry key", slog.String("error", err.Error()))
		return "", threads
	}
	defer key.Close()
	brand, _, err = key.GetStringValue(processorNameValue)
	if err != nil {
		slog.Warn("failed to read processor name", slog.String("error", err.Error()))
		return "", threads
	}
	return strings.TrimSpace(brand), threads
}
