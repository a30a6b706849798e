package anomaly

import (
	"strings"

	"github.com/temirov/shiftwatch/internal/timecard"
	pathutils "github.com/temirov/shiftwatch/internal/utils/path"
)

const (
	// DefaultOutputPath is the report destination used when none is configured.
	DefaultOutputPath = "output.txt"

	inputConfigurationKeySuffixConstant  = ".input"
	outputConfigurationKeySuffixConstant = ".output"
	formatConfigurationKeySuffixConstant = ".format"
	sheetConfigurationKeySuffixConstant  = ".sheet"
)

var scanConfigurationHomeDirectoryExpander = pathutils.NewHomeExpander()

// CommandConfiguration captures persistent settings for the scan command.
type CommandConfiguration struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
	Format string `mapstructure:"format"`
	Sheet  string `mapstructure:"sheet"`
}

// DefaultCommandConfiguration returns baseline configuration values for the scan command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Output: DefaultOutputPath,
		Format: string(timecard.FormatAuto),
	}
}

// DefaultConfigurationValues returns viper defaults keyed under the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + inputConfigurationKeySuffixConstant:  defaults.Input,
		configurationKeyPrefix + outputConfigurationKeySuffixConstant: defaults.Output,
		configurationKeyPrefix + formatConfigurationKeySuffixConstant: defaults.Format,
		configurationKeyPrefix + sheetConfigurationKeySuffixConstant:  defaults.Sheet,
	}
}

// Sanitize trims values, expands home shortcuts, and fills in defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Input = expandPath(configuration.Input)
	sanitized.Output = expandPath(configuration.Output)
	if len(sanitized.Output) == 0 {
		sanitized.Output = DefaultOutputPath
	}
	sanitized.Format = strings.ToLower(strings.TrimSpace(configuration.Format))
	if len(sanitized.Format) == 0 {
		sanitized.Format = string(timecard.FormatAuto)
	}
	sanitized.Sheet = strings.TrimSpace(configuration.Sheet)
	return sanitized
}

func expandPath(candidatePath string) string {
	return scanConfigurationHomeDirectoryExpander.Expand(candidatePath)
}
