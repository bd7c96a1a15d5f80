//go:build linux

package topology

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"log/slog"
	"runtime"
	"strings"

	"github.com/prometheus/procfs"
)

// maxBrandLength matches the 48 characters of the CPUID brand string.
const maxBrandLength = 48

func readHost() (brand string, threads int) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		slog.Warn("failed to open procfs", slog.String("error", err.Error()))
		return "", runtime.NumCPU()
	}
	return readCPUInfo(fs)
}

// readCPUInfo returns the first model name in /proc/cpuinfo and the number of
// logical processors listed there. runtime.NumCPU honours the affinity mask of
// this process, so it is only the fallback.
func readCPUInfo(fs procfs.FS) (brand string, threads int) {
	cpuInfo, err := fs.CPUInfo()
	if err != nil || len(cpuInfo) == 0 {
		if err != nil {
			slog.Warn("failed to read cpuinfo", slog.String("error", err.Error()))
		}
		return "", runtime.NumCPU()
	}
	brand = strings.TrimSpace(cpuInfo[0].ModelName)
	if len(brand) > maxBrandLength {
		brand = brand[:maxBrandLength]
	}
	return brand, len(cpuInfo)
}
