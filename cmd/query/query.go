// Package query is a subcommand of the root command. It prints the logical
// threads a process may run on.
package query

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"coresched/internal/affinity"
	"coresched/internal/common"
	"coresched/internal/util"

	"github.com/spf13/cobra"
)

const cmdName = "query"

var examples = []string{
	fmt.Sprintf("  Show the threads of a process:   $ %s %s --pid 1234", common.AppName, cmdName),
	fmt.Sprintf("  As JSON:                         $ %s %s --pid 1234 --format json", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Show the logical threads a process is bound to",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

const (
	formatTxt  = "txt"
	formatJson = "json"
)

var formatOptions = []string{formatTxt, formatJson}

var (
	flagPID    int
	flagFormat string
)

func init() {
	Cmd.Flags().IntVar(&flagPID, common.FlagPIDName, 0, "")
	Cmd.Flags().StringVar(&flagFormat, common.FlagFormatName, formatTxt, "")
	_ = Cmd.MarkFlagRequired(common.FlagPIDName)

	Cmd.SetUsageFunc(common.UsageFunc(getFlagGroups))
}

func getFlagGroups() []common.FlagGroup {
	return []common.FlagGroup{
		{
			GroupName: "Options",
			Flags: []common.Flag{
				{Name: common.FlagPIDName, Help: "id of the process to query"},
				{Name: common.FlagFormatName, Help: fmt.Sprintf("choose output format from: %s", strings.Join(formatOptions, ", "))},
			},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if flagPID <= 0 {
		return common.FlagError(fmt.Errorf("--%s must be greater than 0", common.FlagPIDName))
	}
	if !slices.Contains(formatOptions, flagFormat) {
		return common.FlagError(fmt.Errorf("format options are: %s", strings.Join(formatOptions, ", ")))
	}
	return nil
}

type queryOutput struct {
	PID     int    `json:"pid"`
	Result  string `json:"result"`
	Code    int    `json:"code"`
	Threads []int  `json:"threads"`
}

func formatResult(format string, pid int, threads []int, result affinity.QueryResult) (string, error) {
	if format == formatJson {
		if threads == nil {
			threads = []int{}
		}
		out, err := json.Marshal(queryOutput{PID: pid, Result: result.String(), Code: int(result), Threads: threads})
		if err != nil {
			return "", err
		}
		return string(out) + "\n", nil
	}
	if result != affinity.QuerySuccess {
		return fmt.Sprintf("process %d: %s\n", pid, result), nil
	}
	return fmt.Sprintf("process %d: threads %s (%d)\n", pid, util.IntListToSelectiveIntRange(threads), len(threads)), nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	threads, result := affinity.NewScheduler().Query(flagPID)
	slog.Info("query", slog.Int("pid", flagPID), slog.String("threads", util.IntListToSelectiveIntRange(threads)), slog.String("result", result.String()))
	out, err := formatResult(flagFormat, flagPID, threads, result)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	if result != affinity.QuerySuccess {
		return fmt.Errorf("failed to query process %d: %s", flagPID, result)
	}
	return nil
}
