package anomaly

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/shiftwatch/internal/timecard"
	"github.com/temirov/shiftwatch/internal/utils"
	flagutils "github.com/temirov/shiftwatch/internal/utils/flags"
)

const (
	scanCommandUseConstant                = "scan [timecard-file]"
	scanCommandShortDescriptionConstant   = "Flag scheduling anomalies in a timecard export"
	scanCommandLongDescriptionConstant    = "scan reads a CSV or XLSX timecard export in row order and reports employees who worked 7 consecutive days, rested between 1 and 10 hours between shifts, or worked more than 14 hours in a single shift."
	outputFlagNameConstant                = "output"
	outputFlagShorthandConstant           = "o"
	outputFlagDescriptionConstant         = "Report destination file, or - for standard output"
	formatFlagNameConstant                = "format"
	formatFlagDescriptionConstant         = "Input format of the timecard export"
	sheetFlagNameConstant                 = "sheet"
	sheetFlagDescriptionConstant          = "Worksheet to read from an XLSX export (defaults to the first sheet)"
	tooManyArgumentsErrorMessageConstant  = "scan accepts at most one timecard file"
	missingInputErrorMessageConstant      = "timecard file is required (argument or tools.scan.input)"
	formatParseErrorTemplateConstant      = "invalid format: %w"
	commandExecutionErrorTemplateConstant = "scan failed: %w"
	maximumPositionalArgumentsConstant    = 1
	scanOptionsResolvedMessageConstant    = "scan options resolved"
	logFieldConfigFileConstant            = "config_file"
	logFieldEnvironmentPrefixConstant     = "environment_prefix"
	logFieldSheetConstant                 = "sheet"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider returns the current scan configuration.
type ConfigurationProvider func() CommandConfiguration

// ObserverProvider supplies the event observer used while a scan runs.
type ObserverProvider func() ScanEventObserver

// CommandBuilder assembles the scan cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	ObserverProvider             ObserverProvider
}

// Build constructs the scan command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   scanCommandUseConstant,
		Short: scanCommandShortDescriptionConstant,
		Long:  scanCommandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().StringP(outputFlagNameConstant, outputFlagShorthandConstant, "", outputFlagDescriptionConstant)
	command.Flags().Var(
		flagutils.NewChoiceValue("", timecard.SupportedFormats()),
		formatFlagNameConstant,
		flagutils.FormatChoiceUsage(string(timecard.FormatAuto), timecard.SupportedFormats(), formatFlagDescriptionConstant),
	)
	command.Flags().String(sheetFlagNameConstant, "", sheetFlagDescriptionConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()
	configurationMetadata, _ := utils.NewCommandContextAccessor().Configuration(command.Context())
	logger.Debug(
		scanOptionsResolvedMessageConstant,
		zap.String(logFieldConfigFileConstant, configurationMetadata.ConfigFileUsed),
		zap.String(logFieldEnvironmentPrefixConstant, configurationMetadata.EnvironmentPrefix),
		zap.String(logFieldFormatConstant, string(options.Format)),
		zap.String(logFieldSheetConstant, options.SheetName),
	)

	service := NewService(logger, builder.resolveObserver(), command.OutOrStdout())

	if _, executionError := service.Run(command.Context(), options); executionError != nil {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, executionError)
	}

	return nil
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (Options, error) {
	if len(arguments) > maximumPositionalArgumentsConstant {
		return Options{}, errors.New(tooManyArgumentsErrorMessageConstant)
	}

	configuration := builder.resolveConfiguration()

	inputValue := configuration.Input
	if len(arguments) == maximumPositionalArgumentsConstant {
		inputValue = expandPath(arguments[0])
	}
	if len(inputValue) == 0 {
		return Options{}, errors.New(missingInputErrorMessageConstant)
	}

	outputFlagValue, outputFlagError := command.Flags().GetString(outputFlagNameConstant)
	if outputFlagError != nil {
		return Options{}, outputFlagError
	}
	outputValue := configuration.Output
	if trimmedOutput := expandPath(outputFlagValue); len(trimmedOutput) > 0 {
		outputValue = trimmedOutput
	}

	formatFlagValue := ""
	if formatFlag := command.Flags().Lookup(formatFlagNameConstant); formatFlag != nil {
		formatFlagValue = formatFlag.Value.String()
	}
	parsedFormat, formatParseError := timecard.ParseFormat(selectStringValue(formatFlagValue, configuration.Format))
	if formatParseError != nil {
		return Options{}, fmt.Errorf(formatParseErrorTemplateConstant, formatParseError)
	}

	sheetFlagValue, sheetFlagError := command.Flags().GetString(sheetFlagNameConstant)
	if sheetFlagError != nil {
		return Options{}, sheetFlagError
	}

	return Options{
		InputPath:  inputValue,
		OutputPath: outputValue,
		Format:     parsedFormat,
		SheetName:  selectStringValue(sheetFlagValue, configuration.Sheet),
	}, nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	return configuration.Sanitize()
}

func (builder *CommandBuilder) resolveObserver() ScanEventObserver {
	if builder.ObserverProvider == nil {
		return nil
	}
	if builder.HumanReadableLoggingProvider != nil && !builder.HumanReadableLoggingProvider() {
		return nil
	}
	return builder.ObserverProvider()
}

func selectStringValue(flagValue string, configurationValue string) string {
	trimmedFlagValue := strings.TrimSpace(flagValue)
	if len(trimmedFlagValue) > 0 {
		return trimmedFlagValue
	}

	return strings.TrimSpace(configurationValue)
}
