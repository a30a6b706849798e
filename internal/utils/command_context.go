package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	environmentPrefixContextKeyConstant     = commandContextKey("environmentPrefix")
)

type commandContextKey string

// CommandContextAccessor stores configuration metadata on command contexts so subcommands can report where settings came from.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfiguration attaches the resolved configuration metadata to parentContext.
func (accessor CommandContextAccessor) WithConfiguration(parentContext context.Context, metadata LoadedConfiguration) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	updatedContext := context.WithValue(parentContext, configurationFilePathContextKeyConstant, metadata.ConfigFileUsed)
	return context.WithValue(updatedContext, environmentPrefixContextKeyConstant, metadata.EnvironmentPrefix)
}

// Configuration extracts configuration metadata previously stored by WithConfiguration.
func (accessor CommandContextAccessor) Configuration(executionContext context.Context) (LoadedConfiguration, bool) {
	if executionContext == nil {
		return LoadedConfiguration{}, false
	}
	configurationFilePath, configurationFilePathAvailable := executionContext.Value(configurationFilePathContextKeyConstant).(string)
	if !configurationFilePathAvailable {
		return LoadedConfiguration{}, false
	}
	environmentPrefix, _ := executionContext.Value(environmentPrefixContextKeyConstant).(string)
	return LoadedConfiguration{ConfigFileUsed: configurationFilePath, EnvironmentPrefix: environmentPrefix}, true
}
