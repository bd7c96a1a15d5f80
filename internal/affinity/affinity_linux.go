//go:build linux

package affinity

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"unsafe"

	"golang.org/x/sys/unix"
)

// cpuSetBits is CPU_SETSIZE, the width of the fixed size cpu_set_t.
const cpuSetBits = int(unsafe.Sizeof(unix.CPUSet{})) * 8

type linuxController struct{}

func newPlatformController() controller {
	return linuxController{}
}

func (linuxController) maxThreads() int {
	return cpuSetBits
}

// setAffinity uses sched_setaffinity, which needs no handle; a missing pid
// surfaces as ESRCH and maps to the open failure.
func (linuxController) setAffinity(pid int, threads []int) BindResult {
	var set unix.CPUSet
	set.Zero()
	for _, t := range threads {
		set.Set(t)
	}
	err := unix.SchedSetaffinity(pid, &set)
	switch {
	case err == nil:
		return BindSuccess
	case errors.Is(err, unix.ESRCH):
		return BindProcessOpenFailed
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
		return BindPermissionDenied
	}
	return BindOperationFailed
}

func (linuxController) getAffinity(pid int) ([]int, QueryResult) {
	var set unix.CPUSet
	err := unix.SchedGetaffinity(pid, &set)
	switch {
	case err == nil:
	case errors.Is(err, unix.ESRCH):
		return nil, QueryProcessOpenFailed
	case errors.Is(err, unix.EPERM), errors.Is(err, unix.EACCES):
		return nil, QueryPermissionDenied
	default:
		return nil, QueryFailed
	}
	threads := make([]int, 0, set.Count())
	for i := 0; i < cpuSetBits; i++ {
		if set.IsSet(i) {
			threads = append(threads, i)
		}
	}
	return threads, QuerySuccess
}
