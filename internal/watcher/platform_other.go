//go:build !linux && !windows

package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"runtime"
)

type unsupportedLister struct{}

func newPlatformLister() ProcessLister {
	return unsupportedLister{}
}

func (unsupportedLister) Processes() ([]Process, error) {
	return nil, fmt.Errorf("process enumeration is not supported on %s", runtime.GOOS)
}

func newPlatformProbe() ForegroundProbe {
	return noForeground{}
}
