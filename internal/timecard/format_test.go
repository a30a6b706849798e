package timecard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/shiftwatch/internal/timecard"
)

func TestParseFormat(testInstance *testing.T) {
	testCases := []struct {
		name           string
		rawValue       string
		expectedFormat timecard.Format
		expectError    bool
	}{
		{name: "empty_defaults_to_auto", rawValue: "", expectedFormat: timecard.FormatAuto},
		{name: "csv", rawValue: "csv", expectedFormat: timecard.FormatCSV},
		{name: "xlsx_mixed_case", rawValue: " XLSX ", expectedFormat: timecard.FormatXLSX},
		{name: "unknown", rawValue: "ods", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			parsedFormat, parseError := timecard.ParseFormat(testCase.rawValue)
			if testCase.expectError {
				require.ErrorIs(testInstance, parseError, timecard.ErrUnsupportedFormat)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedFormat, parsedFormat)
		})
	}
}

func TestResolveFormat(testInstance *testing.T) {
	testCases := []struct {
		name           string
		format         timecard.Format
		filePath       string
		expectedFormat timecard.Format
		expectError    bool
	}{
		{name: "auto_csv", format: timecard.FormatAuto, filePath: "week.csv", expectedFormat: timecard.FormatCSV},
		{name: "auto_xlsx_upper", format: timecard.FormatAuto, filePath: "WEEK.XLSX", expectedFormat: timecard.FormatXLSX},
		{name: "auto_without_extension", format: timecard.FormatAuto, filePath: "timecards", expectedFormat: timecard.FormatCSV},
		{name: "empty_format_behaves_as_auto", format: "", filePath: "week.xlsx", expectedFormat: timecard.FormatXLSX},
		{name: "explicit_overrides_extension", format: timecard.FormatCSV, filePath: "week.txt", expectedFormat: timecard.FormatCSV},
		{name: "auto_unknown_extension", format: timecard.FormatAuto, filePath: "week.ods", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedFormat, resolveError := timecard.ResolveFormat(testCase.format, testCase.filePath)
			if testCase.expectError {
				require.ErrorIs(testInstance, resolveError, timecard.ErrUnsupportedFormat)
				return
			}
			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedFormat, resolvedFormat)
		})
	}
}
