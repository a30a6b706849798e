// Package anomaly detects scheduling anomalies in timecard rows and reports them.
//
// Scanner performs the single ordered pass over rows using an explicit
// ScanState, ReportWriter renders one line per anomaly, Service ties a row
// source to the scanner and the report sink, and CommandBuilder exposes the
// workflow as the scan Cobra command.
package anomaly
