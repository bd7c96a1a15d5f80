package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// noForeground never knows the foreground window, so the foreground flag of
// a watcher using it stays false.
type noForeground struct{}

func (noForeground) Foreground() Foreground {
	return Foreground{}
}
