//go:build !linux && !windows

package affinity

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "math/bits"

// stubController reports every OS call as failed on platforms without a
// process affinity API.
type stubController struct{}

func newPlatformController() controller {
	return stubController{}
}

func (stubController) maxThreads() int {
	return bits.UintSize
}

func (stubController) setAffinity(int, []int) BindResult {
	return BindOperationFailed
}

func (stubController) getAffinity(int) ([]int, QueryResult) {
	return nil, QueryFailed
}
