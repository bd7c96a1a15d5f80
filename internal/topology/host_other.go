//go:build !linux && !windows

package topology

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "runtime"

// readHost has no brand string source on this platform; the topology
// degrades to a single group of runtime.NumCPU threads.
func readHost() (brand string, threads int) {
	return "", runtime.NumCPU()
}
