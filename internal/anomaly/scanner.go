package anomaly

import (
	"time"

	"github.com/temirov/shiftwatch/internal/timecard"
)

const (
	consecutiveDayRunLengthConstant = 7
	minimumRestGapHoursConstant     = 1.0
	maximumRestGapHoursConstant     = 10.0
	longShiftHoursConstant          = 14.0
)

// ScanState holds the rolling values carried between rows of a single scan.
type ScanState struct {
	// ConsecutiveDates is the current run of equal pay cycle dates on adjacent non-blank rows.
	ConsecutiveDates []time.Time
	// PreviousShiftEnd is the shift end of the most recent non-blank row, nil when that row had none.
	PreviousShiftEnd *time.Time
	// Flagged holds employees that already produced an anomaly. It only grows.
	Flagged map[string]struct{}
}

// NewScanState returns empty state for a fresh scan.
func NewScanState() *ScanState {
	return &ScanState{Flagged: make(map[string]struct{})}
}

// IsFlagged reports whether the employee already produced an anomaly.
func (state *ScanState) IsFlagged(employeeName string) bool {
	_, flagged := state.Flagged[employeeName]
	return flagged
}

func (state *ScanState) flag(employeeName string) {
	state.Flagged[employeeName] = struct{}{}
}

// Scanner applies the anomaly rules to rows in input order. It is not safe for concurrent use.
type Scanner struct {
	state *ScanState
}

// NewScanner constructs a Scanner with fresh state.
func NewScanner() *Scanner {
	return NewScannerWithState(NewScanState())
}

// NewScannerWithState constructs a Scanner around caller-provided state.
func NewScannerWithState(state *ScanState) *Scanner {
	if state == nil {
		state = NewScanState()
	}
	if state.Flagged == nil {
		state.Flagged = make(map[string]struct{})
	}
	return &Scanner{state: state}
}

// State exposes the scanner's rolling state.
func (scanner *Scanner) State() *ScanState {
	return scanner.state
}

// Process evaluates one row and returns the anomaly it triggered, if any.
// Blank rows leave the state untouched.
func (scanner *Scanner) Process(row timecard.Row) (Anomaly, bool) {
	if row.IsBlank() {
		return Anomaly{}, false
	}

	var detected Anomaly
	var triggered bool
	emit := func(rule Rule) {
		if scanner.state.IsFlagged(row.EmployeeName) {
			return
		}
		scanner.state.flag(row.EmployeeName)
		detected = Anomaly{
			EmployeeName: row.EmployeeName,
			PositionID:   row.PositionID,
			Rule:         rule,
			RowIndex:     row.Index,
		}
		triggered = true
	}

	if scanner.trackConsecutiveDates(row) {
		emit(RuleConsecutiveDays)
	}

	if scanner.restGapTooShort(row) {
		emit(RuleShortRest)
	}

	scanner.state.PreviousShiftEnd = row.ShiftEnd

	if row.ShiftHours != nil && *row.ShiftHours > longShiftHoursConstant {
		emit(RuleLongShift)
	}

	return detected, triggered
}

// trackConsecutiveDates extends or resets the run and reports whether it just reached the threshold.
func (scanner *Scanner) trackConsecutiveDates(row timecard.Row) bool {
	if row.PayCycleStart == nil {
		return false
	}

	currentDate := *row.PayCycleStart
	runLength := len(scanner.state.ConsecutiveDates)
	if runLength > 0 && scanner.state.ConsecutiveDates[runLength-1].Equal(currentDate) {
		scanner.state.ConsecutiveDates = append(scanner.state.ConsecutiveDates, currentDate)
	} else {
		scanner.state.ConsecutiveDates = []time.Time{currentDate}
	}

	return len(scanner.state.ConsecutiveDates) == consecutiveDayRunLengthConstant
}

func (scanner *Scanner) restGapTooShort(row timecard.Row) bool {
	if scanner.state.PreviousShiftEnd == nil || row.ShiftStart == nil {
		return false
	}

	gapHours := row.ShiftStart.Sub(*scanner.state.PreviousShiftEnd).Hours()
	return gapHours > minimumRestGapHoursConstant && gapHours < maximumRestGapHoursConstant
}

// Scan runs a fresh Scanner over the rows and returns the anomalies in emission order.
func Scan(rows []timecard.Row) []Anomaly {
	scanner := NewScanner()
	var anomalies []Anomaly
	for _, row := range rows {
		if detected, triggered := scanner.Process(row); triggered {
			anomalies = append(anomalies, detected)
		}
	}
	return anomalies
}
