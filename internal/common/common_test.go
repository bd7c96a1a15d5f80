package common

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestUsageFunc(t *testing.T) {
	root := &cobra.Command{Use: "app"}
	root.PersistentFlags().Bool("debug", false, "enable debug logging")
	child := &cobra.Command{Use: "query", Example: "  $ app query --pid 1", Run: func(*cobra.Command, []string) {}}
	child.Flags().Int(FlagPIDName, 0, "")
	root.AddCommand(child)
	child.SetUsageFunc(UsageFunc(func() []FlagGroup {
		return []FlagGroup{{GroupName: "Options", Flags: []Flag{{Name: FlagPIDName, Help: "process id"}}}}
	}))
	var out bytes.Buffer
	child.SetOut(&out)

	assert.NoError(t, child.Usage())
	text := out.String()
	assert.Contains(t, text, "Usage: app query [flags]")
	assert.Contains(t, text, "  Options:\n    --pid"+strings.Repeat(" ", 18)+"process id (default: 0)\n")
	assert.Contains(t, text, "Global Flags:\n  --debug"+strings.Repeat(" ", 16)+"enable debug logging (default: false)\n")
}

func TestGetAppContext(t *testing.T) {
	root := &cobra.Command{Use: "app"}
	child := &cobra.Command{Use: "topology"}
	root.AddCommand(child)
	assert.Equal(t, AppContext{}, GetAppContext(child))

	root.SetContext(context.WithValue(context.Background(), AppContext{}, AppContext{Version: "1.0.0", Debug: true}))
	assert.Equal(t, AppContext{Version: "1.0.0", Debug: true}, GetAppContext(child))
	assert.Equal(t, AppContext{}, GetAppContext(root))
}
