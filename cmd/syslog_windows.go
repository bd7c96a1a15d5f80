package cmd

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"log/slog"
)

// NewSyslogHandler fails on Windows, which has no syslog daemon.
func NewSyslogHandler(logOpts *slog.HandlerOptions) (slog.Handler, error) {
	return nil, errors.New("syslog is not available on Windows, use --log-stdout or the log file")
}
