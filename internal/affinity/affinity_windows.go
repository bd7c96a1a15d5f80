//go:build windows

package affinity

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"math/bits"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	modkernel32                = windows.NewLazySystemDLL("kernel32.dll")
	procSetProcessAffinityMask = modkernel32.NewProc("SetProcessAffinityMask")
	procGetProcessAffinityMask = modkernel32.NewProc("GetProcessAffinityMask")
)

type windowsController struct{}

func newPlatformController() controller {
	return windowsController{}
}

// maxThreads is the width of DWORD_PTR. Masks only address the processor
// group the process currently belongs to.
func (windowsController) maxThreads() int {
	return bits.UintSize
}

func (windowsController) setAffinity(pid int, threads []int) BindResult {
	handle, err := windows.OpenProcess(windows.PROCESS_SET_INFORMATION, false, uint32(pid))
	if err != nil {
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return BindPermissionDenied
		}
		return BindProcessOpenFailed
	}
	defer windows.CloseHandle(handle)

	ret, _, callErr := procSetProcessAffinityMask.Call(uintptr(handle), maskFromThreads(threads))
	if ret == 0 {
		if errors.Is(callErr, windows.ERROR_ACCESS_DENIED) {
			return BindPermissionDenied
		}
		return BindOperationFailed
	}
	return BindSuccess
}

func (windowsController) getAffinity(pid int) ([]int, QueryResult) {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		if errors.Is(err, windows.ERROR_ACCESS_DENIED) {
			return nil, QueryPermissionDenied
		}
		return nil, QueryProcessOpenFailed
	}
	defer windows.CloseHandle(handle)

	var processMask, systemMask uintptr
	ret, _, callErr := procGetProcessAffinityMask.Call(
		uintptr(handle),
		uintptr(unsafe.Pointer(&processMask)),
		uintptr(unsafe.Pointer(&systemMask)),
	)
	if ret == 0 {
		if errors.Is(callErr, windows.ERROR_ACCESS_DENIED) {
			return nil, QueryPermissionDenied
		}
		return nil, QueryFailed
	}
	return threadsFromMask(processMask), QuerySuccess
}
