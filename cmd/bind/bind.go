// Package bind is a subcommand of the root command. It restricts a running
// process to a set of logical threads.
package bind

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"coresched/internal/affinity"
	"coresched/internal/common"
	"coresched/internal/policy"
	"coresched/internal/topology"
	"coresched/internal/util"

	"github.com/spf13/cobra"
)

const cmdName = "bind"

var examples = []string{
	fmt.Sprintf("  Bind to explicit threads:           $ %s %s --pid 1234 --threads 0-7,16", common.AppName, cmdName),
	fmt.Sprintf("  Bind to the performance cores:      $ %s %s --pid 1234 --class performance", common.AppName, cmdName),
	fmt.Sprintf("  Bind to the V-Cache CCD:            $ %s %s --pid 1234 --policy \"cachestacked\"", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Bind a process to logical threads",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var (
	flagPID     int
	flagThreads string
	flagClass   string
	flagPolicy  string
)

const (
	flagThreadsName = "threads"
	flagClassName   = "class"
	flagPolicyName  = "policy"
)

// classPolicies maps --class values to policy expressions.
var classPolicies = map[string]string{
	"performance":  "performance",
	"efficiency":   "efficiency",
	"lowpower":     "lowpower",
	"cachestacked": "cachestacked",
	"frequency":    "performance && !cachestacked",
}

func classOptions() []string {
	options := make([]string, 0, len(classPolicies))
	for class := range classPolicies {
		options = append(options, class)
	}
	slices.Sort(options)
	return options
}

func init() {
	Cmd.Flags().IntVar(&flagPID, common.FlagPIDName, 0, "")
	Cmd.Flags().StringVar(&flagThreads, flagThreadsName, "", "")
	Cmd.Flags().StringVar(&flagClass, flagClassName, "", "")
	Cmd.Flags().StringVar(&flagPolicy, flagPolicyName, "", "")
	Cmd.MarkFlagsOneRequired(flagThreadsName, flagClassName, flagPolicyName)
	Cmd.MarkFlagsMutuallyExclusive(flagThreadsName, flagClassName, flagPolicyName)
	_ = Cmd.MarkFlagRequired(common.FlagPIDName)

	Cmd.SetUsageFunc(common.UsageFunc(getFlagGroups))
}

func getFlagGroups() []common.FlagGroup {
	return []common.FlagGroup{
		{
			GroupName: "Options",
			Flags: []common.Flag{
				{Name: common.FlagPIDName, Help: "id of the process to bind"},
			},
		},
		{
			GroupName: "Thread Selection (choose one)",
			Flags: []common.Flag{
				{Name: flagThreadsName, Help: "comma-separated list of thread indices and ranges, e.g., 0-7,16"},
				{Name: flagClassName, Help: fmt.Sprintf("select core groups by class, one of: %s", strings.Join(classOptions(), ", "))},
				{Name: flagPolicyName, Help: "select core groups with an expression, e.g., \"performance && cores >= 8\""},
			},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if flagPID <= 0 {
		return common.FlagError(fmt.Errorf("--%s must be greater than 0", common.FlagPIDName))
	}
	if cmd.Flags().Changed(flagThreadsName) {
		if _, err := util.SelectiveIntRangeToIntList(flagThreads); err != nil {
			return common.FlagError(fmt.Errorf("invalid --%s: %w", flagThreadsName, err))
		}
	}
	if cmd.Flags().Changed(flagClassName) {
		if _, ok := classPolicies[flagClass]; !ok {
			return common.FlagError(fmt.Errorf("class options are: %s", strings.Join(classOptions(), ", ")))
		}
	}
	if cmd.Flags().Changed(flagPolicyName) {
		if _, err := policy.Compile(flagPolicy); err != nil {
			return common.FlagError(err)
		}
	}
	return nil
}

// selectThreads resolves the thread selection flags against the topology.
func selectThreads(topo topology.Topology) ([]int, error) {
	if flagThreads != "" {
		return util.SelectiveIntRangeToIntList(flagThreads)
	}
	expression := flagPolicy
	if flagClass != "" {
		expression = classPolicies[flagClass]
	}
	p, err := policy.Compile(expression)
	if err != nil {
		return nil, err
	}
	threads, err := p.Select(topo)
	if err != nil {
		return nil, err
	}
	if len(threads) == 0 {
		return nil, fmt.Errorf("no core group of %s matches %q", topo.BrandString, expression)
	}
	return threads, nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	topo := topology.Detect()
	if topo.Degraded && flagThreads == "" {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", topo.Diagnostic)
	}
	threads, err := selectThreads(topo)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		return err
	}
	result := affinity.NewScheduler().Bind(flagPID, threads)
	slog.Info("bind", slog.Int("pid", flagPID), slog.String("threads", util.IntListToSelectiveIntRange(threads)), slog.String("result", result.String()))
	if result != affinity.BindSuccess {
		err = fmt.Errorf("failed to bind process %d: %s", flagPID, result)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if result == affinity.BindPermissionDenied {
			fmt.Fprintln(os.Stderr, "Run again with elevated privileges.")
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Bound process %d to threads %s\n", flagPID, util.IntListToSelectiveIntRange(threads))
	return nil
}
