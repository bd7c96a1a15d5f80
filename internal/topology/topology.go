// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package topology classifies the cores of the host CPU into ordered core groups
// (AMD CCDs, Intel P/E/LP-E clusters) using the brand string, the logical thread
// count, and a compiled-in model database.
package topology

import (
	"fmt"
	"log/slog"
	"strings"
)

type Vendor string

const (
	VendorAMD     Vendor = "AMD"
	VendorIntel   Vendor = "Intel"
	VendorUnknown Vendor = "Unknown"
)

// brand string markers used to classify the vendor
const (
	amdMarker   = "AMD "
	intelMarker = "Intel"
	x3dMarker   = "X3D"
)

type CoreClass int

const (
	ClassPerformance CoreClass = iota
	ClassEfficiency
	ClassLowPowerEfficiency
)

func (c CoreClass) String() string {
	switch c {
	case ClassPerformance:
		return "performance"
	case ClassEfficiency:
		return "efficiency"
	case ClassLowPowerEfficiency:
		return "low-power-efficiency"
	}
	return fmt.Sprintf("CoreClass(%d)", int(c))
}

// MarshalText renders the class by name so JSON and YAML output stay readable.
func (c CoreClass) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// CoreGroup is one cluster of cores sharing a class, e.g., an AMD CCD or the
// P-cores of an Intel hybrid part. Thread indices are inclusive.
type CoreGroup struct {
	CoreCount        int       `json:"coreCount" yaml:"coreCount"`
	ThreadCount      int       `json:"threadCount" yaml:"threadCount"`
	CoreClass        CoreClass `json:"coreClass" yaml:"coreClass"`
	IsCacheStacked   bool      `json:"isCacheStacked" yaml:"isCacheStacked"`
	FirstThreadIndex int       `json:"firstThreadIndex" yaml:"firstThreadIndex"`
	LastThreadIndex  int       `json:"lastThreadIndex" yaml:"lastThreadIndex"`
}

// ThreadsPerCore returns 0 for a group without cores.
func (g CoreGroup) ThreadsPerCore() int {
	if g.CoreCount == 0 {
		return 0
	}
	return g.ThreadCount / g.CoreCount
}

// Threads returns the logical thread indices covered by the group, ascending.
func (g CoreGroup) Threads() []int {
	if g.ThreadCount <= 0 {
		return nil
	}
	threads := make([]int, 0, g.ThreadCount)
	for i := g.FirstThreadIndex; i <= g.LastThreadIndex; i++ {
		threads = append(threads, i)
	}
	return threads
}

// Topology is created fresh by every Detect/Classify call and is not shared.
type Topology struct {
	Vendor       Vendor      `json:"vendor" yaml:"vendor"`
	BrandString  string      `json:"brandString" yaml:"brandString"`
	TotalThreads int         `json:"totalThreads" yaml:"totalThreads"`
	Groups       []CoreGroup `json:"groups" yaml:"groups"`
	// MicroArchitecture is only set for Intel parts found in the model database.
	MicroArchitecture string `json:"microArchitecture,omitempty" yaml:"microArchitecture,omitempty"`
	// Degraded is set when the layout is a fallback guess for a vendor that
	// has a model database. Callers should avoid aggressive core parking then.
	Degraded   bool   `json:"degraded" yaml:"degraded"`
	Diagnostic string `json:"diagnostic,omitempty" yaml:"diagnostic,omitempty"`
}

// Detect reads the brand string and logical thread count of the host and
// classifies them. It never fails.
func Detect() Topology {
	brand, threads := readHost()
	slog.Debug("read host CPU", slog.String("brand", brand), slog.Int("threads", threads))
	return Classify(brand, threads)
}

// Classify builds the topology for the given brand string and hardware thread
// count. Unrecognized input degrades to a single group covering all threads.
func Classify(brand string, threads int) Topology {
	if threads < 0 {
		threads = 0
	}
	t := Topology{
		Vendor:       classifyVendor(brand),
		BrandString:  brand,
		TotalThreads: threads,
	}
	switch t.Vendor {
	case VendorAMD:
		classifyAMD(&t)
	case VendorIntel:
		classifyIntel(&t)
	default:
		t.Groups = []CoreGroup{newGroup(threads, threads, ClassPerformance, false, 0)}
	}
	return t
}

func classifyVendor(brand string) Vendor {
	switch {
	case strings.Contains(brand, amdMarker):
		return VendorAMD
	case strings.Contains(brand, intelMarker):
		return VendorIntel
	}
	return VendorUnknown
}

func classifyAMD(t *Topology) {
	isX3D := strings.Contains(t.BrandString, x3dMarker)
	coresPerDie := findCoresPerDie(t.BrandString)
	if coresPerDie <= 0 {
		t.Groups = []CoreGroup{newGroup(t.TotalThreads/2, t.TotalThreads, ClassPerformance, isX3D, 0)}
		return
	}
	threadsPerDie := coresPerDie * 2
	// only the first die carries the stacked cache on dual-CCD X3D parts
	t.Groups = []CoreGroup{newGroup(coresPerDie, threadsPerDie, ClassPerformance, isX3D, 0)}
	if t.TotalThreads > threadsPerDie {
		t.Groups = append(t.Groups, newGroup(coresPerDie, threadsPerDie, ClassPerformance, false, threadsPerDie))
	}
}

func classifyIntel(t *Topology) {
	model := findIntelModel(t.BrandString)
	if model == nil {
		t.Degraded = true
		t.Diagnostic = fmt.Sprintf("CPU '%s' not in database, P/E/LP-core count is unknown, using fallback (expected for CPUs older than Alder Lake)", t.BrandString)
		slog.Warn("unknown Intel CPU model, using fallback topology", slog.String("brand", t.BrandString), slog.Int("threads", t.TotalThreads))
		t.Groups = []CoreGroup{newGroup(t.TotalThreads/2, t.TotalThreads, ClassEfficiency, false, 0)}
		return
	}
	t.MicroArchitecture = model.MicroArchitecture
	cursor := 0
	for _, layout := range model.Groups[:model.ActiveGroups] {
		t.Groups = append(t.Groups, newGroup(layout.Cores, layout.Threads, layout.Class, false, cursor))
		cursor += layout.Threads
	}
}

func newGroup(cores, threads int, class CoreClass, cacheStacked bool, firstThread int) CoreGroup {
	return CoreGroup{
		CoreCount:        cores,
		ThreadCount:      threads,
		CoreClass:        class,
		IsCacheStacked:   cacheStacked,
		FirstThreadIndex: firstThread,
		LastThreadIndex:  firstThread + threads - 1,
	}
}
