// Package timecard models timecard export rows and reads them from tabular files.
//
// It exposes Row with optional shift fields, tolerant parsers that report
// absence instead of failing, and RowReader which streams rows out of CSV or
// XLSX exports while validating the required columns.
package timecard
