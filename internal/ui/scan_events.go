package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/shiftwatch/internal/anomaly"
)

const (
	scanStartedMessageTemplateConstant   = "Scanning %s into %s"
	anomalyMessageTemplateConstant       = "Row %d: %s"
	scanCompletedMessageTemplateConstant = "Scanned %d rows (%d blank), reported %d anomalies%s"
	ruleBreakdownTemplateConstant        = "%s=%d"
	ruleBreakdownSeparatorConstant       = ", "
	ruleBreakdownWrapperTemplateConstant = ": %s"
	standardOutputLabelConstant          = "standard output"
	standardOutputPathConstant           = "-"
	emptyStringConstant                  = ""
)

// ScanEventFormatter builds human-readable messages for scan lifecycle events.
type ScanEventFormatter struct{}

// BuildStartedMessage formats the message describing a scan about to run.
func (formatter ScanEventFormatter) BuildStartedMessage(descriptor anomaly.ScanDescriptor) string {
	return fmt.Sprintf(scanStartedMessageTemplateConstant, descriptor.Input, formatter.formatOutputLabel(descriptor.Output))
}

// BuildAnomalyMessage formats the message describing a detected anomaly.
func (formatter ScanEventFormatter) BuildAnomalyMessage(detected anomaly.Anomaly) string {
	return fmt.Sprintf(anomalyMessageTemplateConstant, detected.RowIndex, detected.Message())
}

// BuildCompletedMessage formats the message summarizing a finished scan.
func (formatter ScanEventFormatter) BuildCompletedMessage(summary anomaly.Summary) string {
	return fmt.Sprintf(
		scanCompletedMessageTemplateConstant,
		summary.RowsRead,
		summary.BlankRows,
		summary.AnomalyCount(),
		formatter.formatRuleBreakdown(summary.AnomaliesByRule),
	)
}

func (formatter ScanEventFormatter) formatOutputLabel(output string) string {
	trimmedOutput := strings.TrimSpace(output)
	if trimmedOutput == standardOutputPathConstant {
		return standardOutputLabelConstant
	}
	return trimmedOutput
}

func (formatter ScanEventFormatter) formatRuleBreakdown(anomaliesByRule map[anomaly.Rule]int) string {
	breakdownParts := make([]string, 0, len(anomaliesByRule))
	for _, rule := range anomaly.Rules() {
		ruleCount := anomaliesByRule[rule]
		if ruleCount == 0 {
			continue
		}
		breakdownParts = append(breakdownParts, fmt.Sprintf(ruleBreakdownTemplateConstant, rule, ruleCount))
	}
	if len(breakdownParts) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(ruleBreakdownWrapperTemplateConstant, strings.Join(breakdownParts, ruleBreakdownSeparatorConstant))
}

// ConsoleScanEventLogger renders scan events using a zap logger configured for human-readable output.
type ConsoleScanEventLogger struct {
	logger    *zap.Logger
	formatter ScanEventFormatter
}

// NewConsoleScanEventLogger constructs a console event logger backed by the provided zap logger.
func NewConsoleScanEventLogger(logger *zap.Logger) *ConsoleScanEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleScanEventLogger{logger: logger, formatter: ScanEventFormatter{}}
}

// ScanStarted implements anomaly.ScanEventObserver.
func (eventLogger *ConsoleScanEventLogger) ScanStarted(descriptor anomaly.ScanDescriptor) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(descriptor))
}

// AnomalyDetected implements anomaly.ScanEventObserver.
func (eventLogger *ConsoleScanEventLogger) AnomalyDetected(detected anomaly.Anomaly) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildAnomalyMessage(detected))
}

// ScanCompleted implements anomaly.ScanEventObserver.
func (eventLogger *ConsoleScanEventLogger) ScanCompleted(summary anomaly.Summary) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildCompletedMessage(summary))
}
