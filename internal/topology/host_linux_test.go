//go:build linux && amd64

package topology

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/procfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cpuinfoFixture = `processor	: 0
vendor_id	: GenuineIntel
cpu family	: 6
model		: 183
model name	: 13th Gen Intel(R) Core(TM) i9-13900K
stepping	: 1
cpu MHz		: 3000.000
cache size	: 36864 KB
physical id	: 0
siblings	: 2
core id		: 0
cpu cores	: 1
flags		: fpu vme de pse

processor	: 1
vendor_id	: GenuineIntel
cpu family	: 6
model		: 183
model name	: 13th Gen Intel(R) Core(TM) i9-13900K
stepping	: 1
cpu MHz		: 3000.000
cache size	: 36864 KB
physical id	: 0
siblings	: 2
core id		: 0
cpu cores	: 1
flags		: fpu vme de pse

`

func TestReadCPUInfo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cpuinfo"), []byte(cpuinfoFixture), 0644))
	fs, err := procfs.NewFS(dir)
	require.NoError(t, err)
	brand, threads := readCPUInfo(fs)
	assert.Equal(t, "13th Gen Intel(R) Core(TM) i9-13900K", brand)
	assert.Equal(t, 2, threads)
}

func TestDetectNeverFails(t *testing.T) {
	topo := Detect()
	assert.NotEmpty(t, topo.Groups)
	assert.GreaterOrEqual(t, topo.TotalThreads, 0)
}
