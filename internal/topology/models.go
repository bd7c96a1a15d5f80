package topology

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import "strings"

// Microarchitecture constants
const (
	UarchADL = "ADL" // Alder Lake
	UarchRPL = "RPL" // Raptor Lake (and Refresh)
	UarchMTL = "MTL" // Meteor Lake
	UarchARL = "ARL" // Arrow Lake
	UarchLNL = "LNL" // Lunar Lake
)

// AMDModel maps a model-family substring to the number of cores on each CCD.
type AMDModel struct {
	Name        string
	CoresPerDie int
}

// amdModels is scanned in order and the first entry found in the brand string
// wins, so more specific names must precede names they contain.
var amdModels = []AMDModel{
	{"3950", 8},
	{"5950", 8},
	{"7950", 8},
	{"9950", 8},
	{"7945HX", 8},
	{"8945HX", 8},
	{"9955HX", 8},
	{"Max+ 395", 8},
	{"3900", 6},
	{"5900", 6},
	{"7900", 6},
	{"9900", 6},
	{"7845HX", 6},
	{"8940HX", 6},
	{"9850HX", 6},
	{"Max 390", 6},
}

// IntelGroupLayout is the template of one core group of an Intel model.
type IntelGroupLayout struct {
	Cores   int
	Threads int
	Class   CoreClass
}

// IntelModel describes up to three core groups, ordered P, E, LP-E.
type IntelModel struct {
	Name              string
	MicroArchitecture string
	Groups            [3]IntelGroupLayout
	ActiveGroups      int
}

func p(cores, threads int) IntelGroupLayout {
	return IntelGroupLayout{Cores: cores, Threads: threads, Class: ClassPerformance}
}

func e(cores int) IntelGroupLayout {
	return IntelGroupLayout{Cores: cores, Threads: cores, Class: ClassEfficiency}
}

func lpe(cores int) IntelGroupLayout {
	return IntelGroupLayout{Cores: cores, Threads: cores, Class: ClassLowPowerEfficiency}
}

func eOnly(name string, cores int) IntelModel {
	return IntelModel{Name: name, MicroArchitecture: UarchADL, Groups: [3]IntelGroupLayout{e(cores)}, ActiveGroups: 1}
}

func hybrid(name, uarch string, pc, pt, ec int) IntelModel {
	if ec == 0 {
		return IntelModel{Name: name, MicroArchitecture: uarch, Groups: [3]IntelGroupLayout{p(pc, pt)}, ActiveGroups: 1}
	}
	return IntelModel{Name: name, MicroArchitecture: uarch, Groups: [3]IntelGroupLayout{p(pc, pt), e(ec)}, ActiveGroups: 2}
}

func tiled(name, uarch string, pc, pt, ec, lpc int) IntelModel {
	if ec == 0 {
		return IntelModel{Name: name, MicroArchitecture: uarch, Groups: [3]IntelGroupLayout{p(pc, pt), lpe(lpc)}, ActiveGroups: 2}
	}
	return IntelModel{Name: name, MicroArchitecture: uarch, Groups: [3]IntelGroupLayout{p(pc, pt), e(ec), lpe(lpc)}, ActiveGroups: 3}
}

// intelModels lists hybrid Intel parts from Alder Lake onwards. Short model
// numbers are substrings of more specific SKUs (14900 / 14900HX), so lookups
// use the longest matching name rather than table order.
//
// The Alder Lake and Raptor Lake desktop and HX parts, 12450H, 12500H,
// 12650H, 12700H, 12900H, 13620H, 225H, 255H, 255HX, the Arrow Lake desktop
// parts and Lunar Lake are additions from published core counts and have not
// been checked against a running system.
var intelModels = []IntelModel{
	// Alder Lake-N, efficient cores only, no Hyper-Threading
	eOnly("N95", 4),
	eOnly("N100", 4),
	eOnly("N200", 4),
	eOnly("N250", 4),
	eOnly("N300", 8),
	eOnly("i3-N300", 8),
	eOnly("i3-N305", 8),

	// Alder Lake desktop
	hybrid("12400", UarchADL, 6, 12, 0),
	hybrid("12490F", UarchADL, 6, 12, 0),
	hybrid("12500", UarchADL, 6, 12, 0),
	hybrid("12600K", UarchADL, 6, 12, 4),
	hybrid("12700", UarchADL, 8, 16, 4),
	hybrid("12900", UarchADL, 8, 16, 8),

	// Alder Lake U-series
	hybrid("1210U", UarchADL, 2, 4, 4),
	hybrid("1215U", UarchADL, 2, 4, 4),
	hybrid("1235U", UarchADL, 2, 4, 8),
	hybrid("1240U", UarchADL, 2, 4, 8),
	hybrid("1255U", UarchADL, 2, 4, 8),
	hybrid("1260U", UarchADL, 2, 4, 8),

	// Alder Lake P-series
	hybrid("1220P", UarchADL, 2, 4, 8),
	hybrid("1240P", UarchADL, 4, 8, 8),
	hybrid("1250P", UarchADL, 4, 8, 8),
	hybrid("1260P", UarchADL, 4, 8, 8),
	hybrid("1280P", UarchADL, 6, 12, 8),

	// Alder Lake H/HX-series
	hybrid("12450H", UarchADL, 4, 8, 4),
	hybrid("12500H", UarchADL, 4, 8, 8),
	hybrid("12650H", UarchADL, 6, 12, 4),
	hybrid("12700H", UarchADL, 6, 12, 8),
	hybrid("12900H", UarchADL, 6, 12, 8),
	hybrid("12650HX", UarchADL, 6, 12, 4),
	hybrid("12800HX", UarchADL, 8, 16, 8),
	hybrid("12900HX", UarchADL, 8, 16, 8),

	// Raptor Lake desktop
	hybrid("13400", UarchRPL, 6, 12, 4),
	hybrid("13500", UarchRPL, 6, 12, 8),
	hybrid("13600", UarchRPL, 6, 12, 8),
	hybrid("13700", UarchRPL, 8, 16, 8),
	hybrid("13900", UarchRPL, 8, 16, 16),

	// Raptor Lake U-series
	hybrid("1315U", UarchRPL, 2, 4, 4),
	hybrid("1335U", UarchRPL, 2, 4, 8),
	hybrid("1355U", UarchRPL, 2, 4, 8),

	// Raptor Lake H-series
	hybrid("13420H", UarchRPL, 4, 8, 4),
	hybrid("13500H", UarchRPL, 4, 8, 8),
	hybrid("13620H", UarchRPL, 6, 12, 4),
	hybrid("13700H", UarchRPL, 6, 12, 8),
	hybrid("13900H", UarchRPL, 6, 12, 8),

	// Raptor Lake HX-series
	hybrid("13450HX", UarchRPL, 6, 12, 4),
	hybrid("13500HX", UarchRPL, 6, 12, 8),
	hybrid("13650HX", UarchRPL, 6, 12, 8),
	hybrid("13700HX", UarchRPL, 8, 16, 8),
	hybrid("13900HX", UarchRPL, 8, 16, 16),
	hybrid("13980HX", UarchRPL, 8, 16, 16),

	// Raptor Lake P-series
	hybrid("1340P", UarchRPL, 4, 8, 8),
	hybrid("1350P", UarchRPL, 4, 8, 8),
	hybrid("1360P", UarchRPL, 4, 8, 8),
	hybrid("1370P", UarchRPL, 6, 12, 8),

	// Raptor Lake Refresh
	hybrid("14400", UarchRPL, 6, 12, 4),
	hybrid("14500", UarchRPL, 6, 12, 8),
	hybrid("14600", UarchRPL, 6, 12, 8),
	hybrid("14700", UarchRPL, 8, 16, 12),
	hybrid("14900", UarchRPL, 8, 16, 16),
	hybrid("14450HX", UarchRPL, 6, 12, 4),
	hybrid("14500HX", UarchRPL, 6, 12, 8),
	hybrid("14650HX", UarchRPL, 8, 16, 8),
	hybrid("14700HX", UarchRPL, 8, 16, 12),
	hybrid("14900HX", UarchRPL, 8, 16, 16),

	// Core 200H/U (Raptor Lake refresh for mobile)
	hybrid("210H", UarchRPL, 4, 8, 4),
	hybrid("220H", UarchRPL, 4, 8, 8),
	hybrid("240H", UarchRPL, 6, 12, 4),
	hybrid("250H", UarchRPL, 6, 12, 8),
	hybrid("270H", UarchRPL, 6, 12, 8),
	hybrid("220U", UarchRPL, 2, 4, 8),
	hybrid("250U", UarchRPL, 2, 4, 8),

	// Meteor Lake
	tiled("125H", UarchMTL, 4, 8, 8, 2),
	tiled("155H", UarchMTL, 6, 12, 8, 2),
	tiled("165H", UarchMTL, 6, 12, 8, 2),
	tiled("185H", UarchMTL, 6, 12, 8, 2),
	tiled("125U", UarchMTL, 2, 4, 8, 2),
	tiled("135U", UarchMTL, 2, 4, 8, 2),
	tiled("155U", UarchMTL, 2, 4, 8, 2),
	tiled("165U", UarchMTL, 2, 4, 8, 2),
	tiled("134U", UarchMTL, 2, 4, 8, 2),
	tiled("164U", UarchMTL, 2, 4, 8, 2),
	tiled("125HL", UarchMTL, 4, 8, 8, 2),
	tiled("125UL", UarchMTL, 2, 4, 8, 2),
	tiled("155UL", UarchMTL, 2, 4, 8, 2),

	// Arrow Lake U/H, Hyper-Threading only on 235H
	tiled("235U", UarchARL, 2, 4, 8, 2),
	tiled("265U", UarchARL, 2, 4, 8, 2),
	tiled("225H", UarchARL, 4, 4, 8, 2),
	tiled("235H", UarchARL, 4, 8, 8, 2),
	tiled("255H", UarchARL, 6, 6, 8, 2),
	tiled("265H", UarchARL, 6, 6, 8, 2),
	tiled("285H", UarchARL, 6, 6, 8, 2),

	// Arrow Lake HX and desktop
	hybrid("245HX", UarchARL, 6, 6, 8),
	hybrid("255HX", UarchARL, 8, 8, 12),
	hybrid("265HX", UarchARL, 8, 8, 12),
	hybrid("275HX", UarchARL, 8, 8, 16),
	hybrid("285HX", UarchARL, 8, 8, 16),
	hybrid("225F", UarchARL, 6, 6, 4),
	hybrid("245K", UarchARL, 6, 6, 8),
	hybrid("265K", UarchARL, 8, 8, 12),
	hybrid("285K", UarchARL, 8, 8, 16),

	// Lunar Lake, P-cores plus a low-power E-core island
	tiled("226V", UarchLNL, 4, 4, 0, 4),
	tiled("228V", UarchLNL, 4, 4, 0, 4),
	tiled("236V", UarchLNL, 4, 4, 0, 4),
	tiled("238V", UarchLNL, 4, 4, 0, 4),
	tiled("256V", UarchLNL, 4, 4, 0, 4),
	tiled("258V", UarchLNL, 4, 4, 0, 4),
	tiled("266V", UarchLNL, 4, 4, 0, 4),
	tiled("268V", UarchLNL, 4, 4, 0, 4),
	tiled("288V", UarchLNL, 4, 4, 0, 4),
}

// findCoresPerDie returns the CCD core count of the first AMD table entry
// contained in the brand string, or 0.
func findCoresPerDie(brand string) int {
	for _, model := range amdModels {
		if strings.Contains(brand, model.Name) {
			return model.CoresPerDie
		}
	}
	return 0
}

// findIntelModel returns the entry with the longest name contained in the
// brand string. On equal lengths the earlier entry is kept.
func findIntelModel(brand string) *IntelModel {
	var best *IntelModel
	for i := range intelModels {
		model := &intelModels[i]
		if best != nil && len(model.Name) <= len(best.Name) {
			continue
		}
		if strings.Contains(brand, model.Name) {
			best = model
		}
	}
	return best
}
