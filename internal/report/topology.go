package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"strconv"

	"coresched/internal/topology"
	"coresched/internal/util"
)

const (
	CPUTableName        = "CPU"
	CoreGroupsTableName = "Core Groups"
)

// TopologyTables lays out a topology as the CPU summary and core group tables.
func TopologyTables(topo topology.Topology) []TableValues {
	microArchitecture := topo.MicroArchitecture
	if microArchitecture == "" {
		microArchitecture = "n/a"
	}
	cpu := TableValues{
		Name: CPUTableName,
		Fields: []Field{
			{Name: "Vendor", Values: []string{string(topo.Vendor)}},
			{Name: "Brand", Values: []string{topo.BrandString}},
			{Name: "Threads", Values: []string{strconv.Itoa(topo.TotalThreads)}},
			{Name: "Microarchitecture", Values: []string{microArchitecture}},
			{Name: "Model Known", Values: []string{strconv.FormatBool(!topo.Degraded)}},
		},
	}
	if topo.Diagnostic != "" {
		cpu.Fields = append(cpu.Fields, Field{Name: "Diagnostic", Values: []string{topo.Diagnostic}})
	}
	groups := TableValues{
		Name:        CoreGroupsTableName,
		HasRows:     true,
		NoDataFound: "No core groups detected.",
		Fields: []Field{
			{Name: "Group"},
			{Name: "Class"},
			{Name: "Cores"},
			{Name: "Threads"},
			{Name: "Threads/Core"},
			{Name: "Thread Range"},
			{Name: "Cache Stacked"},
		},
	}
	for i, group := range topo.Groups {
		threadRange := util.IntListToSelectiveIntRange(group.Threads())
		values := []string{
			strconv.Itoa(i),
			group.CoreClass.String(),
			strconv.Itoa(group.CoreCount),
			strconv.Itoa(group.ThreadCount),
			strconv.Itoa(group.ThreadsPerCore()),
			threadRange,
			strconv.FormatBool(group.IsCacheStacked),
		}
		for j := range groups.Fields {
			groups.Fields[j].Values = append(groups.Fields[j].Values, values[j])
		}
	}
	return []TableValues{cpu, groups}
}
