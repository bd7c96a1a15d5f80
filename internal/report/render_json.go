package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"encoding/json"

	"gopkg.in/yaml.v2"
)

func createJsonReport(allTableValues []TableValues) (out []byte, err error) {
	type outRecord map[string]string
	type outTable []outRecord
	type outReport map[string]outTable
	oReport := make(outReport)
	for _, tableValues := range allTableValues {
		oTable := outTable{}
		for recordIdx := range numRows(tableValues) {
			oRecord := make(outRecord)
			for _, field := range tableValues.Fields {
				oRecord[field.Name] = field.Values[recordIdx]
			}
			oTable = append(oTable, oRecord)
		}
		oReport[tableValues.Name] = oTable
	}
	return json.MarshalIndent(oReport, "", " ")
}

// createYamlReport keeps tables and fields in their defined order.
func createYamlReport(allTableValues []TableValues) (out []byte, err error) {
	oReport := yaml.MapSlice{}
	for _, tableValues := range allTableValues {
		oTable := []yaml.MapSlice{}
		for recordIdx := range numRows(tableValues) {
			oRecord := yaml.MapSlice{}
			for _, field := range tableValues.Fields {
				oRecord = append(oRecord, yaml.MapItem{Key: field.Name, Value: field.Values[recordIdx]})
			}
			oTable = append(oTable, oRecord)
		}
		oReport = append(oReport, yaml.MapItem{Key: tableValues.Name, Value: oTable})
	}
	return yaml.Marshal(oReport)
}
