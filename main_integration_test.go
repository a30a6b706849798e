package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationCommandTimeout          = 2 * time.Minute
	integrationTimecardContentConstant = "Position ID,Time,Time Out,Timecard Hours (as Time),Pay Cycle Start Date,Employee Name\n" +
		"POS1,1/1/2024 8:00 AM,1/1/2024 4:00 PM,8:00,1/1/2024,Jane Doe\n" +
		"POS1,1/2/2024 1:00 AM,1/2/2024 9:00 AM,8:00,1/1/2024,Jane Doe\n" +
		"POS2,1/2/2024 6:00 AM,1/2/2024 10:00 PM,16:00,1/1/2024,John Roe\n"
	integrationExpectedReportConstant   = "Jane Doe (POS1) has less than 10 hours between shifts but greater than 1 hour.\nJohn Roe (POS2) worked for more than 14 hours in a single shift.\n"
	integrationScanCompletedLogConstant = "\"msg\":\"scan completed\""
	integrationOptionsLogConstant       = "\"msg\":\"scan options resolved\""
)

func TestShiftwatchBinaryScan(testInstance *testing.T) {
	if testing.Short() {
		testInstance.Skip("integration test builds the binary")
	}

	testCases := []struct {
		name               string
		environment        []string
		argumentsBuilder   func(timecardPath string, reportPath string) []string
		expectDebugVisible bool
	}{
		{
			name: "flags",
			argumentsBuilder: func(timecardPath string, reportPath string) []string {
				return []string{"scan", timecardPath, "--output", reportPath}
			},
		},
		{
			name: "environment",
			environment: []string{
				"SHIFTWATCH_COMMON_LOG_LEVEL=debug",
			},
			argumentsBuilder: func(timecardPath string, reportPath string) []string {
				return []string{"scan", timecardPath, "-o", reportPath}
			},
			expectDebugVisible: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			temporaryDirectory := testInstance.TempDir()
			timecardPath := filepath.Join(temporaryDirectory, "timecards.csv")
			require.NoError(testInstance, os.WriteFile(timecardPath, []byte(integrationTimecardContentConstant), 0o600))
			reportPath := filepath.Join(temporaryDirectory, "output.txt")

			executionContext, cancel := context.WithTimeout(context.Background(), integrationCommandTimeout)
			defer cancel()

			command := exec.CommandContext(executionContext, "go", append([]string{"run", "."}, testCase.argumentsBuilder(timecardPath, reportPath)...)...)
			command.Env = append(append([]string{}, os.Environ()...), "XDG_CONFIG_HOME="+filepath.Join(temporaryDirectory, "xdg"))
			command.Env = append(command.Env, testCase.environment...)

			standardError := &bytes.Buffer{}
			command.Stderr = standardError
			runError := command.Run()
			require.NoError(testInstance, runError, standardError.String())

			reportContent, readError := os.ReadFile(reportPath)
			require.NoError(testInstance, readError)
			require.Equal(testInstance, integrationExpectedReportConstant, string(reportContent))

			require.Contains(testInstance, standardError.String(), integrationScanCompletedLogConstant)
			require.Equal(testInstance, testCase.expectDebugVisible, strings.Contains(standardError.String(), integrationOptionsLogConstant))
		})
	}
}
