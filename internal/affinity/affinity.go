// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package affinity applies and queries the OS scheduling affinity mask of a
// process by logical thread index. Failures are reported as result codes,
// never as Go errors, so callers can pick a recovery per cause.
package affinity

import (
	"fmt"
	"log/slog"
	"math/bits"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
)

// BindResult is the outcome of Bind. The numeric values are part of the
// external interface.
type BindResult int

const (
	BindSuccess BindResult = iota
	BindInvalidThreadIndex
	BindProcessOpenFailed
	BindPermissionDenied
	BindOperationFailed
)

func (r BindResult) String() string {
	switch r {
	case BindSuccess:
		return "Success"
	case BindInvalidThreadIndex:
		return "InvalidThreadIndex"
	case BindProcessOpenFailed:
		return "ProcessOpenFailed"
	case BindPermissionDenied:
		return "PermissionDenied"
	case BindOperationFailed:
		return "OperationFailed"
	}
	return fmt.Sprintf("BindResult(%d)", int(r))
}

// QueryResult is the outcome of Query. The numeric values are part of the
// external interface.
type QueryResult int

const (
	QuerySuccess QueryResult = iota
	QueryProcessOpenFailed
	QueryFailed
	QueryPermissionDenied
)

func (r QueryResult) String() string {
	switch r {
	case QuerySuccess:
		return "Success"
	case QueryProcessOpenFailed:
		return "ProcessOpenFailed"
	case QueryFailed:
		return "QueryFailed"
	case QueryPermissionDenied:
		return "PermissionDenied"
	}
	return fmt.Sprintf("QueryResult(%d)", int(r))
}

// controller is the platform half of the scheduler. Thread lists handed to
// setAffinity are already validated, deduplicated and ascending. Handles must
// be released on every path before returning.
type controller interface {
	maxThreads() int
	setAffinity(pid int, threads []int) BindResult
	getAffinity(pid int) ([]int, QueryResult)
}

// Scheduler binds processes to logical threads. It holds no OS resources
// between calls.
type Scheduler struct {
	ctl controller
}

// NewScheduler returns a scheduler for the current platform.
func NewScheduler() *Scheduler {
	return &Scheduler{ctl: newPlatformController()}
}

// MaxThreads is the exclusive upper bound of a valid thread index: the bit
// width of the platform affinity mask.
func (s *Scheduler) MaxThreads() int {
	return s.ctl.maxThreads()
}

// Bind restricts the process to the given logical threads. The index set is
// validated before any OS call.
func (s *Scheduler) Bind(pid int, threads []int) BindResult {
	normalized, ok := normalizeThreads(threads, s.ctl.maxThreads())
	if !ok {
		slog.Debug("rejected thread indices", slog.Int("pid", pid), slog.Any("threads", threads))
		return BindInvalidThreadIndex
	}
	if pid <= 0 {
		return BindProcessOpenFailed
	}
	result := s.ctl.setAffinity(pid, normalized)
	slog.Debug("bind", slog.Int("pid", pid), slog.Any("threads", normalized), slog.String("result", result.String()))
	return result
}

// Query returns the ascending thread indices enabled in the process's
// affinity mask. The slice is nil unless the result is QuerySuccess.
func (s *Scheduler) Query(pid int) ([]int, QueryResult) {
	if pid <= 0 {
		return nil, QueryProcessOpenFailed
	}
	threads, result := s.ctl.getAffinity(pid)
	if result != QuerySuccess {
		slog.Debug("query failed", slog.Int("pid", pid), slog.String("result", result.String()))
		return nil, result
	}
	slices.Sort(threads)
	return threads, QuerySuccess
}

// normalizeThreads deduplicates and sorts the indices, rejecting an empty set
// and any index outside [0, limit).
func normalizeThreads(threads []int, limit int) ([]int, bool) {
	if len(threads) == 0 {
		return nil, false
	}
	set := mapset.NewThreadUnsafeSet[int]()
	for _, t := range threads {
		if t < 0 || t >= limit {
			return nil, false
		}
		set.Add(t)
	}
	normalized := set.ToSlice()
	slices.Sort(normalized)
	return normalized, true
}

// maskFromThreads packs validated indices (< bits.UintSize) into a word mask.
func maskFromThreads(threads []int) uintptr {
	var mask uintptr
	for _, t := range threads {
		mask |= uintptr(1) << uint(t)
	}
	return mask
}

// threadsFromMask lists the set bits of a word mask, ascending.
func threadsFromMask(mask uintptr) []int {
	threads := make([]int, 0, bits.OnesCount(uint(mask)))
	for i := 0; i < bits.UintSize; i++ {
		if mask&(uintptr(1)<<uint(i)) != 0 {
			threads = append(threads, i)
		}
	}
	return threads
}
