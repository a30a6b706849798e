package timecard

import "time"

// Row is a single timecard record. Nil pointer fields are absent values.
type Row struct {
	Index         int
	EmployeeName  string
	PositionID    string
	ShiftStart    *time.Time
	ShiftEnd      *time.Time
	ShiftHours    *float64
	PayCycleStart *time.Time
}

// IsBlank reports whether the row is a separator row with every field empty.
func (row Row) IsBlank() bool {
	return len(row.EmployeeName) == 0 &&
		len(row.PositionID) == 0 &&
		row.ShiftStart == nil &&
		row.ShiftEnd == nil &&
		row.ShiftHours == nil &&
		row.PayCycleStart == nil
}
