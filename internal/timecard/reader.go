package timecard

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Column headers expected in a timecard export.
const (
	ColumnEmployeeName  = "Employee Name"
	ColumnPositionID    = "Position ID"
	ColumnShiftStart    = "Time"
	ColumnShiftEnd      = "Time Out"
	ColumnShiftHours    = "Timecard Hours (as Time)"
	ColumnPayCycleStart = "Pay Cycle Start Date"
)

const (
	missingColumnTemplateConstant   = "%w: %q"
	headerReadErrorTemplateConstant = "unable to read header row: %w"
	recordReadErrorTemplateConstant = "unable to read row %d: %w"
	byteOrderMarkConstant           = "\ufeff"
)

var requiredColumns = []string{
	ColumnEmployeeName,
	ColumnPositionID,
	ColumnShiftStart,
	ColumnShiftEnd,
	ColumnShiftHours,
	ColumnPayCycleStart,
}

// RecordSource yields raw table records, returning io.EOF after the last one.
type RecordSource interface {
	Next() ([]string, error)
}

// CSVRecordSource reads records from comma-separated input.
type CSVRecordSource struct {
	csvReader *csv.Reader
}

// NewCSVRecordSource wraps the reader with a lenient CSV decoder.
func NewCSVRecordSource(reader io.Reader) *CSVRecordSource {
	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.LazyQuotes = true
	return &CSVRecordSource{csvReader: csvReader}
}

// Next returns the following CSV record.
func (source *CSVRecordSource) Next() ([]string, error) {
	return source.csvReader.Read()
}

// SliceRecordSource replays records held in memory.
type SliceRecordSource struct {
	records  [][]string
	position int
}

// NewSliceRecordSource constructs a source over the provided records.
func NewSliceRecordSource(records [][]string) *SliceRecordSource {
	return &SliceRecordSource{records: records}
}

// Next returns the following record or io.EOF.
func (source *SliceRecordSource) Next() ([]string, error) {
	if source.position >= len(source.records) {
		return nil, io.EOF
	}
	record := source.records[source.position]
	source.position++
	return record, nil
}

// RowReader converts raw records into Rows using the header row for column positions.
type RowReader struct {
	source        RecordSource
	columnIndexes map[string]int
	rowIndex      int
}

// NewRowReader consumes the header row and validates that every required column is present.
func NewRowReader(source RecordSource) (*RowReader, error) {
	headerRecord, headerError := source.Next()
	if headerError != nil {
		if errors.Is(headerError, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf(headerReadErrorTemplateConstant, headerError)
	}

	columnIndexes := make(map[string]int, len(headerRecord))
	for headerPosition, headerValue := range headerRecord {
		normalizedHeader := normalizeHeader(headerValue)
		if _, alreadyMapped := columnIndexes[normalizedHeader]; alreadyMapped {
			continue
		}
		columnIndexes[normalizedHeader] = headerPosition
	}

	for _, requiredColumn := range requiredColumns {
		if _, present := columnIndexes[normalizeHeader(requiredColumn)]; !present {
			return nil, fmt.Errorf(missingColumnTemplateConstant, ErrMissingColumn, requiredColumn)
		}
	}

	return &RowReader{source: source, columnIndexes: columnIndexes}, nil
}

// Next returns the following Row, io.EOF at the end of input, or a *RowError for a structurally invalid row.
func (reader *RowReader) Next() (Row, error) {
	record, recordError := reader.source.Next()
	if recordError != nil {
		if errors.Is(recordError, io.EOF) {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf(recordReadErrorTemplateConstant, reader.rowIndex+1, recordError)
	}
	reader.rowIndex++

	if isBlankRecord(record) {
		return Row{Index: reader.rowIndex}, nil
	}

	row := Row{
		Index:        reader.rowIndex,
		EmployeeName: reader.cellValue(record, ColumnEmployeeName),
		PositionID:   reader.cellValue(record, ColumnPositionID),
	}

	if len(row.EmployeeName) == 0 {
		return Row{}, &RowError{RowIndex: reader.rowIndex, Column: ColumnEmployeeName, Err: ErrMissingRequiredField}
	}
	if len(row.PositionID) == 0 {
		return Row{}, &RowError{RowIndex: reader.rowIndex, Column: ColumnPositionID, Err: ErrMissingRequiredField}
	}

	if shiftStart, present := ParseShiftTimestamp(reader.cellValue(record, ColumnShiftStart)); present {
		row.ShiftStart = &shiftStart
	}
	if shiftEnd, present := ParseShiftTimestamp(reader.cellValue(record, ColumnShiftEnd)); present {
		row.ShiftEnd = &shiftEnd
	}
	if shiftHours, present := ParseShiftHours(reader.cellValue(record, ColumnShiftHours)); present {
		row.ShiftHours = &shiftHours
	}
	if payCycleStart, present := ParsePayCycleDate(reader.cellValue(record, ColumnPayCycleStart)); present {
		row.PayCycleStart = &payCycleStart
	}

	return row, nil
}

// ReadAll drains the reader into memory.
func (reader *RowReader) ReadAll() ([]Row, error) {
	var rows []Row
	for {
		row, nextError := reader.Next()
		if errors.Is(nextError, io.EOF) {
			return rows, nil
		}
		if nextError != nil {
			return nil, nextError
		}
		rows = append(rows, row)
	}
}

func (reader *RowReader) cellValue(record []string, column string) string {
	columnIndex, present := reader.columnIndexes[normalizeHeader(column)]
	if !present || columnIndex >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[columnIndex])
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if len(strings.TrimSpace(cell)) > 0 {
			return false
		}
	}
	return true
}

func normalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, byteOrderMarkConstant)))
}
