package bind

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"testing"

	"coresched/internal/topology"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setFlags(t *testing.T, pid int, threads, class, policy string) {
	t.Helper()
	flagPID, flagThreads, flagClass, flagPolicy = pid, threads, class, policy
	t.Cleanup(func() {
		flagPID, flagThreads, flagClass, flagPolicy = 0, "", "", ""
	})
}

func TestSelectThreads(t *testing.T) {
	x3d := topology.Classify("AMD Ryzen 9 7950X3D 16-Core Processor", 32)
	tests := []struct {
		name     string
		threads  string
		class    string
		policy   string
		expected []int
		wantErr  bool
	}{
		{name: "explicit", threads: "0-3,16", expected: []int{0, 1, 2, 3, 16}},
		{name: "class", class: "frequency", expected: []int{16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31}},
		{name: "policy", policy: "cachestacked && index == 0", expected: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
		{name: "empty selection", class: "efficiency", wantErr: true},
		{name: "bad policy", policy: "cores", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setFlags(t, 1, tt.threads, tt.class, tt.policy)
			threads, err := selectThreads(x3d)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, threads)
		})
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		pid     int
		flag    string
		value   string
		wantErr bool
	}{
		{"threads", 10, flagThreadsName, "0-7", false},
		{"bad threads", 10, flagThreadsName, "7-0", true},
		{"class", 10, flagClassName, "performance", false},
		{"bad class", 10, flagClassName, "turbo", true},
		{"policy", 10, flagPolicyName, "efficiency || lowpower", false},
		{"bad policy", 10, flagPolicyName, "efficiency ||", true},
		{"bad pid", 0, flagThreadsName, "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{}
			cmd.Flags().StringVar(&flagThreads, flagThreadsName, "", "")
			cmd.Flags().StringVar(&flagClass, flagClassName, "", "")
			cmd.Flags().StringVar(&flagPolicy, flagPolicyName, "", "")
			setFlags(t, tt.pid, "", "", "")
			require.NoError(t, cmd.Flags().Set(tt.flag, tt.value))
			err := validateFlags(cmd, nil)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClassOptions(t *testing.T) {
	assert.Equal(t, []string{"cachestacked", "efficiency", "frequency", "lowpower", "performance"}, classOptions())
}
