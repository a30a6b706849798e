// Package utils holds the plumbing shared by shiftwatch commands.
//
// ConfigurationLoader layers embedded defaults, configuration files, and
// SHIFTWATCH_* environment overrides through Viper. LoggerFactory builds the
// diagnostic and human-readable zap loggers. FlushingWriter keeps report lines
// visible as soon as they are written.
package utils
