package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"
)

func createTextReport(allTableValues []TableValues) (out []byte, err error) {
	var sb strings.Builder
	for _, tableValues := range allTableValues {
		sb.WriteString(tableValues.Name + "\n")
		sb.WriteString(strings.Repeat("=", len(tableValues.Name)) + "\n")
		if numRows(tableValues) == 0 {
			msg := NoDataFound
			if tableValues.NoDataFound != "" {
				msg = tableValues.NoDataFound
			}
			sb.WriteString(msg + "\n\n")
			continue
		}
		sb.WriteString(renderTextTable(tableValues))
		sb.WriteString("\n")
	}
	out = []byte(sb.String())
	return
}

func renderTextTable(tableValues TableValues) string {
	var sb strings.Builder
	if tableValues.HasRows { // print the field names as column headings across the top of the table
		// find the longest item per column -- can be the field name (column header) or a value
		columnWidth := make([]int, len(tableValues.Fields))
		for i, field := range tableValues.Fields {
			// the last column shouldn't be padded
			if i == len(tableValues.Fields)-1 {
				continue
			}
			columnWidth[i] = len(field.Name)
			for _, val := range field.Values {
				columnWidth[i] = max(columnWidth[i], len(val))
			}
		}
		columnSpacing := 3
		writeRow := func(cell func(field Field) string) {
			var line strings.Builder
			for i, field := range tableValues.Fields {
				fmt.Fprintf(&line, "%-*s", columnWidth[i]+columnSpacing, cell(field))
			}
			sb.WriteString(strings.TrimRight(line.String(), " ") + "\n")
		}
		writeRow(func(field Field) string { return field.Name })
		writeRow(func(field Field) string { return strings.Repeat("-", len(field.Name)) })
		for row := range numRows(tableValues) {
			writeRow(func(field Field) string { return field.Values[row] })
		}
	} else {
		// get the longest field name to format the table nicely
		maxFieldNameLen := 0
		for _, field := range tableValues.Fields {
			maxFieldNameLen = max(maxFieldNameLen, len(field.Name))
		}
		for _, field := range tableValues.Fields {
			var value string
			if len(field.Values) > 0 {
				value = field.Values[0]
			}
			fmt.Fprintf(&sb, "%s%-*s %s\n", field.Name, maxFieldNameLen-len(field.Name)+1, ":", value)
		}
	}
	return sb.String()
}
