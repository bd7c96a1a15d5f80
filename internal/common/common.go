// Package common includes functions that are used across the commands.
package common

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var AppName = filepath.Base(os.Args[0])

// AppContext represents the application context that can be accessed from all commands.
type AppContext struct {
	Timestamp   string // Timestamp is the application start time.
	LogFilePath string // LogFilePath is empty when logging to syslog or stdout.
	Version     string
	Debug       bool
}

// GetAppContext returns the context set by the root command, or a zero value
// when the command runs outside the root command (tests).
func GetAppContext(cmd *cobra.Command) AppContext {
	if cmd.Parent() == nil || cmd.Parent().Context() == nil {
		return AppContext{}
	}
	if appContext, ok := cmd.Parent().Context().Value(AppContext{}).(AppContext); ok {
		return appContext
	}
	return AppContext{}
}

type Flag struct {
	Name string
	Help string
}
type FlagGroup struct {
	GroupName string
	Flags     []Flag
}

const (
	FlagFormatName = "format"
	FlagPIDName    = "pid"
)

// UsageFunc prints the command's flags by group followed by the global flags.
func UsageFunc(getFlagGroups func() []FlagGroup) func(*cobra.Command) error {
	return func(cmd *cobra.Command) error {
		cmd.Printf("Usage: %s [flags]\n\n", cmd.CommandPath())
		cmd.Printf("Examples:\n%s\n\n", cmd.Example)
		cmd.Println("Flags:")
		for _, group := range getFlagGroups() {
			cmd.Printf("  %s:\n", group.GroupName)
			for _, flag := range group.Flags {
				flagDefault := ""
				if cmd.Flags().Lookup(flag.Name).DefValue != "" {
					flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(flag.Name).DefValue)
				}
				cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Help, flagDefault)
			}
		}
		if cmd.Parent() == nil {
			return nil
		}
		cmd.Println("\nGlobal Flags:")
		cmd.Parent().PersistentFlags().VisitAll(func(pf *pflag.Flag) {
			flagDefault := ""
			if pf.DefValue != "" {
				flagDefault = fmt.Sprintf(" (default: %s)", pf.DefValue)
			}
			cmd.Printf("  --%-20s %s%s\n", pf.Name, pf.Usage, flagDefault)
		})
		return nil
	}
}

// FlagError prints the error the way validateFlags functions report problems
// and returns it.
func FlagError(err error) error {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}
