package anomaly

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/temirov/shiftwatch/internal/timecard"
)

const (
	standardOutputPathConstant        = "-"
	scanStartedMessageConstant        = "scan started"
	timecardOpenedMessageConstant     = "timecard opened"
	scanCompletedMessageConstant      = "scan completed"
	blankRowSkippedMessageConstant    = "blank row skipped"
	anomalyDetectedMessageConstant    = "anomaly detected"
	logFieldScanIDConstant            = "scan_id"
	logFieldInputConstant             = "input"
	logFieldOutputConstant            = "output"
	logFieldFormatConstant            = "format"
	logFieldRowIndexConstant          = "row_index"
	logFieldEmployeeConstant          = "employee"
	logFieldPositionConstant          = "position"
	logFieldRuleConstant              = "rule"
	logFieldRowsConstant              = "rows"
	logFieldBlankRowsConstant         = "blank_rows"
	logFieldAnomaliesConstant         = "anomalies"
	missingInputPathMessageConstant   = "input path is required"
	missingOutputPathMessageConstant  = "output path is required"
	outputCreateErrorTemplateConstant = "unable to create report %s: %w"
	outputCloseErrorTemplateConstant  = "unable to close report %s: %w"
	outputCommitErrorTemplateConstant = "unable to replace report %s: %w"
	outputTemporaryPatternConstant    = ".%s.*.tmp"
	outputFileModeConstant            = os.FileMode(0o644)
	rowReadErrorTemplateConstant      = "unable to read timecard rows: %w"
)

// RowSource yields timecard rows in input order, returning io.EOF after the last row.
type RowSource interface {
	Next() (timecard.Row, error)
}

// ScanEventObserver receives progress notifications from a running scan.
type ScanEventObserver interface {
	ScanStarted(descriptor ScanDescriptor)
	AnomalyDetected(anomaly Anomaly)
	ScanCompleted(summary Summary)
}

// ScanDescriptor identifies a scan and its endpoints.
type ScanDescriptor struct {
	ScanID string
	Input  string
	Output string
}

// Summary aggregates the outcome of a scan.
type Summary struct {
	ScanDescriptor
	RowsRead        int
	BlankRows       int
	AnomaliesByRule map[Rule]int
}

// AnomalyCount returns the total number of reported anomalies.
func (summary Summary) AnomalyCount() int {
	total := 0
	for _, count := range summary.AnomaliesByRule {
		total += count
	}
	return total
}

// Options configures a file-to-file scan.
type Options struct {
	InputPath  string
	OutputPath string
	Format     timecard.Format
	SheetName  string
}

// Service reads timecard rows, scans them, and writes the report.
type Service struct {
	logger         *zap.Logger
	observer       ScanEventObserver
	standardOutput io.Writer
	idGenerator    func() string
}

// NewService constructs a Service. The observer may be nil.
func NewService(logger *zap.Logger, observer ScanEventObserver, standardOutput io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if standardOutput == nil {
		standardOutput = os.Stdout
	}
	return &Service{
		logger:         logger,
		observer:       observer,
		standardOutput: standardOutput,
		idGenerator:    uuid.NewString,
	}
}

// Run opens the input file, scans it, and writes the report to the output path ("-" for standard output).
func (service *Service) Run(executionContext context.Context, options Options) (Summary, error) {
	inputPath := strings.TrimSpace(options.InputPath)
	if len(inputPath) == 0 {
		return Summary{}, errors.New(missingInputPathMessageConstant)
	}
	outputPath := strings.TrimSpace(options.OutputPath)
	if len(outputPath) == 0 {
		return Summary{}, errors.New(missingOutputPathMessageConstant)
	}

	rowReader, openError := timecard.OpenFile(inputPath, timecard.OpenOptions{Format: options.Format, SheetName: options.SheetName})
	if openError != nil {
		return Summary{}, openError
	}
	defer func() { _ = rowReader.Close() }()

	service.logger.Debug(
		timecardOpenedMessageConstant,
		zap.String(logFieldInputConstant, inputPath),
		zap.String(logFieldFormatConstant, string(rowReader.Format)),
	)

	if outputPath == standardOutputPathConstant {
		return service.Scan(executionContext, rowReader, service.standardOutput, ScanDescriptor{Input: inputPath, Output: outputPath})
	}

	var summary Summary
	writeError := writeReportFile(outputPath, func(sink io.Writer) error {
		var scanError error
		summary, scanError = service.Scan(executionContext, rowReader, sink, ScanDescriptor{Input: inputPath, Output: outputPath})
		return scanError
	})
	return summary, writeError
}

// writeReportFile stages the report next to outputPath and renames it into place only when produce succeeds.
// A failed scan leaves any existing report untouched.
func writeReportFile(outputPath string, produce func(sink io.Writer) error) error {
	temporaryFile, createError := os.CreateTemp(filepath.Dir(outputPath), fmt.Sprintf(outputTemporaryPatternConstant, filepath.Base(outputPath)))
	if createError != nil {
		return fmt.Errorf(outputCreateErrorTemplateConstant, outputPath, createError)
	}
	temporaryPath := temporaryFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = temporaryFile.Close()
			_ = os.Remove(temporaryPath)
		}
	}()

	if produceError := produce(temporaryFile); produceError != nil {
		return produceError
	}
	if chmodError := temporaryFile.Chmod(outputFileModeConstant); chmodError != nil {
		return fmt.Errorf(outputCreateErrorTemplateConstant, outputPath, chmodError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(outputCloseErrorTemplateConstant, outputPath, closeError)
	}
	if renameError := os.Rename(temporaryPath, outputPath); renameError != nil {
		_ = os.Remove(temporaryPath)
		committed = true
		return fmt.Errorf(outputCommitErrorTemplateConstant, outputPath, renameError)
	}
	committed = true
	return nil
}

// Scan consumes the source in order and writes one line per anomaly to the sink.
func (service *Service) Scan(executionContext context.Context, source RowSource, sink io.Writer, descriptor ScanDescriptor) (Summary, error) {
	if len(descriptor.ScanID) == 0 {
		descriptor.ScanID = service.idGenerator()
	}

	scanLogger := service.logger.With(zap.String(logFieldScanIDConstant, descriptor.ScanID))
	scanLogger.Info(
		scanStartedMessageConstant,
		zap.String(logFieldInputConstant, descriptor.Input),
		zap.String(logFieldOutputConstant, descriptor.Output),
	)
	if service.observer != nil {
		service.observer.ScanStarted(descriptor)
	}

	summary := Summary{ScanDescriptor: descriptor, AnomaliesByRule: make(map[Rule]int)}
	scanner := NewScanner()
	reportWriter := NewReportWriter(sink)

	for {
		if executionContext != nil {
			if contextError := executionContext.Err(); contextError != nil {
				return summary, contextError
			}
		}

		row, nextError := source.Next()
		if errors.Is(nextError, io.EOF) {
			break
		}
		if nextError != nil {
			return summary, fmt.Errorf(rowReadErrorTemplateConstant, nextError)
		}

		summary.RowsRead++
		if row.IsBlank() {
			summary.BlankRows++
			scanLogger.Debug(blankRowSkippedMessageConstant, zap.Int(logFieldRowIndexConstant, row.Index))
			continue
		}

		detected, triggered := scanner.Process(row)
		if !triggered {
			continue
		}

		if writeError := reportWriter.Write(detected); writeError != nil {
			return summary, writeError
		}
		summary.AnomaliesByRule[detected.Rule]++

		scanLogger.Debug(
			anomalyDetectedMessageConstant,
			zap.Int(logFieldRowIndexConstant, detected.RowIndex),
			zap.String(logFieldEmployeeConstant, detected.EmployeeName),
			zap.String(logFieldPositionConstant, detected.PositionID),
			zap.String(logFieldRuleConstant, string(detected.Rule)),
		)
		if service.observer != nil {
			service.observer.AnomalyDetected(detected)
		}
	}

	scanLogger.Info(
		scanCompletedMessageConstant,
		zap.Int(logFieldRowsConstant, summary.RowsRead),
		zap.Int(logFieldBlankRowsConstant, summary.BlankRows),
		zap.Int(logFieldAnomaliesConstant, summary.AnomalyCount()),
	)
	if service.observer != nil {
		service.observer.ScanCompleted(summary)
	}

	return summary, nil
}
