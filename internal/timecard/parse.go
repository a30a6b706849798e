package timecard

import (
	"strconv"
	"strings"
	"time"
)

const (
	shiftTimestampLayoutConstant = "1/2/2006 3:04 PM"
	payCycleDateLayoutConstant   = "1/2/2006"
	shiftHoursSeparatorConstant  = ":"
	shiftHoursPartCountConstant  = 2
	minutesPerHourConstant       = 60.0
)

// ParseShiftTimestamp parses a "month/day/year hour:minute AM|PM" value.
func ParseShiftTimestamp(rawValue string) (time.Time, bool) {
	trimmedValue := strings.ToUpper(strings.TrimSpace(rawValue))
	if len(trimmedValue) == 0 {
		return time.Time{}, false
	}

	parsedTimestamp, parseError := time.Parse(shiftTimestampLayoutConstant, trimmedValue)
	if parseError != nil {
		return time.Time{}, false
	}

	return parsedTimestamp, true
}

// ParsePayCycleDate parses a "month/day/year" value.
func ParsePayCycleDate(rawValue string) (time.Time, bool) {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return time.Time{}, false
	}

	parsedDate, parseError := time.Parse(payCycleDateLayoutConstant, trimmedValue)
	if parseError != nil {
		return time.Time{}, false
	}

	return parsedDate, true
}

// ParseShiftHours converts an "H:MM" duration into fractional hours.
func ParseShiftHours(rawValue string) (float64, bool) {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return 0, false
	}

	durationParts := strings.Split(trimmedValue, shiftHoursSeparatorConstant)
	if len(durationParts) != shiftHoursPartCountConstant {
		return 0, false
	}

	hours, hoursValid := parseNonNegativeInteger(durationParts[0])
	if !hoursValid {
		return 0, false
	}

	minutes, minutesValid := parseNonNegativeInteger(durationParts[1])
	if !minutesValid {
		return 0, false
	}

	return float64(hours) + float64(minutes)/minutesPerHourConstant, true
}

func parseNonNegativeInteger(rawValue string) (int, bool) {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return 0, false
	}

	parsedValue, parseError := strconv.Atoi(trimmedValue)
	if parseError != nil || parsedValue < 0 {
		return 0, false
	}

	return parsedValue, true
}
