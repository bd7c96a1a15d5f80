// Package topology is a subcommand of the root command. It prints the core
// groups of the host CPU, or of a CPU given by brand string and thread count.
package topology

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"coresched/internal/common"
	"coresched/internal/report"
	"coresched/internal/topology"
	"coresched/internal/util"

	"github.com/spf13/cobra"
)

const cmdName = "topology"

var examples = []string{
	fmt.Sprintf("  Show the core groups of this CPU:   $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  Save them as a spreadsheet:         $ %s %s --format xlsx --output cpu.xlsx", common.AppName, cmdName),
	fmt.Sprintf("  Classify another CPU:               $ %s %s --brand \"AMD Ryzen 9 7950X3D 16-Core Processor\" --threads 32", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Show the core groups of the CPU",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var (
	flagFormat  string
	flagOutput  string
	flagBrand   string
	flagThreads int
)

const (
	flagOutputName  = "output"
	flagBrandName   = "brand"
	flagThreadsName = "threads"
)

func init() {
	Cmd.Flags().StringVar(&flagFormat, common.FlagFormatName, report.FormatTxt, "")
	Cmd.Flags().StringVar(&flagOutput, flagOutputName, "", "")
	Cmd.Flags().StringVar(&flagBrand, flagBrandName, "", "")
	Cmd.Flags().IntVar(&flagThreads, flagThreadsName, 0, "")
	Cmd.MarkFlagsRequiredTogether(flagBrandName, flagThreadsName)

	Cmd.SetUsageFunc(common.UsageFunc(getFlagGroups))
}

func getFlagGroups() []common.FlagGroup {
	return []common.FlagGroup{
		{
			GroupName: "Options",
			Flags: []common.Flag{
				{Name: common.FlagFormatName, Help: fmt.Sprintf("choose output format from: %s", strings.Join(report.FormatOptions, ", "))},
				{Name: flagOutputName, Help: "write the report to this file instead of stdout"},
			},
		},
		{
			GroupName: "CPU Override",
			Flags: []common.Flag{
				{Name: flagBrandName, Help: "classify this brand string instead of the host CPU"},
				{Name: flagThreadsName, Help: "logical thread count of the --brand CPU"},
			},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if !slices.Contains(report.FormatOptions, flagFormat) {
		return common.FlagError(fmt.Errorf("format options are: %s", strings.Join(report.FormatOptions, ", ")))
	}
	if flagFormat == report.FormatXlsx && flagOutput == "" {
		return common.FlagError(fmt.Errorf("--%s is required with --%s %s", flagOutputName, common.FlagFormatName, report.FormatXlsx))
	}
	if cmd.Flags().Changed(flagThreadsName) && flagThreads <= 0 {
		return common.FlagError(fmt.Errorf("--%s must be greater than 0", flagThreadsName))
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	var topo topology.Topology
	if flagBrand != "" {
		topo = topology.Classify(flagBrand, flagThreads)
	} else {
		topo = topology.Detect()
	}
	slog.Info("classified CPU", slog.String("brand", topo.BrandString), slog.String("vendor", string(topo.Vendor)), slog.Int("groups", len(topo.Groups)), slog.Bool("degraded", topo.Degraded))
	out, err := report.Create(flagFormat, report.TopologyTables(topo))
	if err != nil {
		err = fmt.Errorf("failed to create report: %w", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		return err
	}
	if flagOutput == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	outputPath, err := util.AbsPath(flagOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	if err = os.WriteFile(outputPath, out, 0644); err != nil { // #nosec G306
		err = fmt.Errorf("failed to write report: %w", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
	return nil
}
