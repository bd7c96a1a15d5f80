//go:build windows

package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const monitorDefaultToPrimary = 0x00000001

var (
	moduser32                    = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow      = moduser32.NewProc("GetForegroundWindow")
	procGetWindowThreadProcessId = moduser32.NewProc("GetWindowThreadProcessId")
	procGetWindowRect            = moduser32.NewProc("GetWindowRect")
	procMonitorFromWindow        = moduser32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW          = moduser32.NewProc("GetMonitorInfoW")
)

type monitorInfo struct {
	size    uint32
	monitor windows.Rect
	work    windows.Rect
	flags   uint32
}

type windowProbe struct{}

func newPlatformProbe() ForegroundProbe {
	return windowProbe{}
}

func (windowProbe) Foreground() Foreground {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return Foreground{}
	}
	var pid uint32
	procGetWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	return Foreground{Known: true, PID: int(pid), Fullscreen: isFullscreen(hwnd)}
}

// isFullscreen reports whether the window rectangle covers its monitor.
func isFullscreen(hwnd uintptr) bool {
	var window windows.Rect
	if ret, _, _ := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&window))); ret == 0 {
		return false
	}
	monitor, _, _ := procMonitorFromWindow.Call(hwnd, monitorDefaultToPrimary)
	if monitor == 0 {
		return false
	}
	info := monitorInfo{}
	info.size = uint32(unsafe.Sizeof(info))
	if ret, _, _ := procGetMonitorInfoW.Call(monitor, uintptr(unsafe.Pointer(&info))); ret == 0 {
		return false
	}
	return covers(window, info.monitor)
}

func covers(window, monitor windows.Rect) bool {
	return window.Left <= monitor.Left &&
		window.Top <= monitor.Top &&
		window.Right >= monitor.Right &&
		window.Bottom >= monitor.Bottom
}
