package timecard

import (
	"errors"
	"fmt"
)

const (
	rowErrorTemplateConstant = "row %d: column %q: %v"
)

var (
	// ErrMissingHeader indicates the source contained no header row.
	ErrMissingHeader = errors.New("timecard source has no header row")
	// ErrMissingColumn indicates a required column is absent from the header row.
	ErrMissingColumn = errors.New("required column missing")
	// ErrMissingRequiredField indicates a non-blank row lacks a required value.
	ErrMissingRequiredField = errors.New("required field empty")
	// ErrUnsupportedFormat indicates the input format cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported timecard format")
)

// RowError identifies the data row and column responsible for a fatal read failure.
type RowError struct {
	RowIndex int
	Column   string
	Err      error
}

// Error describes the failing row and column.
func (rowError *RowError) Error() string {
	return fmt.Sprintf(rowErrorTemplateConstant, rowError.RowIndex, rowError.Column, rowError.Err)
}

// Unwrap exposes the underlying cause.
func (rowError *RowError) Unwrap() error {
	return rowError.Err
}
