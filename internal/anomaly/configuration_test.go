package anomaly_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/shiftwatch/internal/anomaly"
)

func TestCommandConfigurationSanitize(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		configuration         anomaly.CommandConfiguration
		expectedConfiguration anomaly.CommandConfiguration
	}{
		{
			name:                  "empty_fills_defaults",
			configuration:         anomaly.CommandConfiguration{},
			expectedConfiguration: anomaly.CommandConfiguration{Output: "output.txt", Format: "auto"},
		},
		{
			name:          "trims_and_lowercases",
			configuration: anomaly.CommandConfiguration{Input: " week.csv ", Output: " - ", Format: " XLSX ", Sheet: " Week 1 "},
			expectedConfiguration: anomaly.CommandConfiguration{
				Input:  "week.csv",
				Output: "-",
				Format: "xlsx",
				Sheet:  "Week 1",
			},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedConfiguration, testCase.configuration.Sanitize())
		})
	}

}

func TestCommandConfigurationSanitizeExpandsHome(testInstance *testing.T) {
	homeDirectory, homeError := os.UserHomeDir()
	if homeError != nil {
		testInstance.Skip("home directory unavailable")
	}

	homeRelative := anomaly.CommandConfiguration{Input: "~/timecards/week.csv"}.Sanitize()
	require.Equal(testInstance, filepath.Join(homeDirectory, "timecards", "week.csv"), homeRelative.Input)
}

func TestDefaultConfigurationValues(testInstance *testing.T) {
	require.Equal(testInstance, map[string]any{
		"tools.scan.input":  "",
		"tools.scan.output": "output.txt",
		"tools.scan.format": "auto",
		"tools.scan.sheet":  "",
	}, anomaly.DefaultConfigurationValues("tools.scan"))
}
