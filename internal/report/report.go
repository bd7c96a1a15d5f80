// Package report renders tables in txt, json, yaml and xlsx formats.
package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"
)

const (
	FormatTxt  = "txt"
	FormatJson = "json"
	FormatYaml = "yaml"
	FormatXlsx = "xlsx"
)

const NoDataFound = "No data found."

var FormatOptions = []string{FormatTxt, FormatJson, FormatYaml, FormatXlsx}

// Create generates a report in the specified format. All fields of a table
// must have the same number of values.
func Create(format string, allTableValues []TableValues) (out []byte, err error) {
	for _, tableValue := range allTableValues {
		rows := -1
		for _, fieldValues := range tableValue.Fields {
			if rows == -1 {
				rows = len(fieldValues.Values)
				continue
			}
			if len(fieldValues.Values) != rows {
				return nil, fmt.Errorf("table %s: expected %d value(s) for field %s, found %d", tableValue.Name, rows, fieldValues.Name, len(fieldValues.Values))
			}
		}
	}
	switch format {
	case FormatTxt:
		return createTextReport(allTableValues)
	case FormatJson:
		return createJsonReport(allTableValues)
	case FormatYaml:
		return createYamlReport(allTableValues)
	case FormatXlsx:
		return createXlsxReport(allTableValues)
	}
	return nil, fmt.Errorf("expected one of %s, got %s", strings.Join(FormatOptions, ", "), format)
}
