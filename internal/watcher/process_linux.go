//go:build linux

package watcher

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"strings"

	"github.com/prometheus/procfs"
)

// commLength is TASK_COMM_LEN minus the terminating NUL; longer names are
// truncated by the kernel.
const commLength = 15

type procfsLister struct {
	mountPoint string
}

func newPlatformLister() ProcessLister {
	return procfsLister{mountPoint: procfs.DefaultMountPoint}
}

// Processes reads /proc/<pid>/comm for every process. Names truncated by the
// kernel are completed from the first command line argument when it starts
// with the truncated name, which covers Wine/Proton games with long .exe names.
func (l procfsLister) Processes() ([]Process, error) {
	fs, err := procfs.NewFS(l.mountPoint)
	if err != nil {
		return nil, err
	}
	procs, err := fs.AllProcs()
	if err != nil {
		return nil, err
	}
	result := make([]Process, 0, len(procs))
	for _, p := range procs {
		comm, err := p.Comm()
		if err != nil {
			// exited while enumerating
			continue
		}
		name := comm
		if len(comm) == commLength {
			name = completeName(p, comm)
		}
		result = append(result, Process{PID: p.PID, Executable: name})
	}
	return result, nil
}

func completeName(p procfs.Proc, comm string) string {
	args, err := p.CmdLine()
	if err != nil || len(args) == 0 {
		return comm
	}
	base := basename(args[0])
	if strings.HasPrefix(base, comm) {
		return base
	}
	return comm
}

// basename splits on both separators since Wine passes Windows paths.
func basename(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
