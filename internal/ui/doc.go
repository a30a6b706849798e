// Package ui provides helpers for formatting human-readable console output.
//
// The helpers translate scan events into concise messages so that progress
// feedback remains readable for CLI users while detailed telemetry continues
// to flow through structured loggers.
package ui
