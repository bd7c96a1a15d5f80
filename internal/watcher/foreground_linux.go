//go:build linux

package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Foreground tracking needs a window system; Linux has no portable way to
// ask for the focused window's pid, so the feature is a no-op there.
func newPlatformProbe() ForegroundProbe {
	return noForeground{}
}
