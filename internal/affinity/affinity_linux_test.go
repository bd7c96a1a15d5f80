//go:build linux

package affinity

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinuxWidthIsCPUSetSize(t *testing.T) {
	assert.Equal(t, 1024, NewScheduler().MaxThreads())
}

func TestLinuxBindQueryOwnProcess(t *testing.T) {
	s := NewScheduler()
	pid := os.Getpid()
	original, result := s.Query(pid)
	require.Equal(t, QuerySuccess, result)
	require.NotEmpty(t, original)
	t.Cleanup(func() { s.Bind(pid, original) })

	// narrowing to one allowed thread and back is always permitted for our own process
	require.Equal(t, BindSuccess, s.Bind(pid, original[:1]))
	narrowed, result := s.Query(pid)
	require.Equal(t, QuerySuccess, result)
	assert.Equal(t, original[:1], narrowed)

	require.Equal(t, BindSuccess, s.Bind(pid, original))
	restored, result := s.Query(pid)
	require.Equal(t, QuerySuccess, result)
	assert.Equal(t, original, restored)
}

func TestLinuxMissingProcess(t *testing.T) {
	s := NewScheduler()
	// pid_max never reaches this value
	const missing = 1 << 30
	assert.Equal(t, BindProcessOpenFailed, s.Bind(missing, []int{0}))
	_, result := s.Query(missing)
	assert.Equal(t, QueryProcessOpenFailed, result)
}
