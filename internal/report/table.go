package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Field represents the values for a field in a table
type Field struct {
	Name   string
	Values []string
}

// TableValues is a named table. All fields must have the same number of values.
type TableValues struct {
	Name        string
	HasRows     bool   // table is meant to be displayed in row form, i.e., a field may have multiple values
	NoDataFound string // message to display when no data is found
	Fields      []Field
}

// GetFieldIndex returns the index of the named field, or -1.
func GetFieldIndex(fieldName string, tableValues TableValues) int {
	for i, field := range tableValues.Fields {
		if field.Name == fieldName {
			return i
		}
	}
	return -1
}

func numRows(tableValues TableValues) int {
	if len(tableValues.Fields) == 0 {
		return 0
	}
	return len(tableValues.Fields[0].Values)
}
