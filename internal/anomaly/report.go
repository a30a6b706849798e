package anomaly

import (
	"fmt"
	"io"

	"github.com/temirov/shiftwatch/internal/utils"
)

const (
	reportLineTemplateConstant       = "%s\n"
	reportWriteErrorTemplateConstant = "unable to write report line: %w"
)

// ReportWriter appends anomaly lines to a text sink.
type ReportWriter struct {
	writer       io.Writer
	linesWritten int
}

// NewReportWriter wraps the sink so that every line is flushed as soon as it is written.
func NewReportWriter(writer io.Writer) *ReportWriter {
	return &ReportWriter{writer: utils.NewFlushingWriter(writer)}
}

// Write appends the anomaly's message as a single line.
func (reportWriter *ReportWriter) Write(anomaly Anomaly) error {
	if reportWriter == nil || reportWriter.writer == nil {
		return nil
	}

	if _, writeError := fmt.Fprintf(reportWriter.writer, reportLineTemplateConstant, anomaly.Message()); writeError != nil {
		return fmt.Errorf(reportWriteErrorTemplateConstant, writeError)
	}

	reportWriter.linesWritten++
	return nil
}

// LinesWritten returns the number of lines appended so far.
func (reportWriter *ReportWriter) LinesWritten() int {
	if reportWriter == nil {
		return 0
	}
	return reportWriter.linesWritten
}
