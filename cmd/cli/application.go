package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/baselines"
	"github.com/headmin/mscpgen/internal/catalog"
	"github.com/headmin/mscpgen/internal/generation"
	"github.com/headmin/mscpgen/internal/reposync"
	"github.com/headmin/mscpgen/internal/utils"
	flagutils "github.com/headmin/mscpgen/internal/utils/flags"
	"github.com/headmin/mscpgen/internal/workflow"
)

const (
	applicationNameConstant                 = "mscpgen"
	applicationShortDescriptionConstant     = "Command-line interface for macOS security baseline generation"
	applicationLongDescriptionConstant      = "mscpgen synchronizes the macOS Security Compliance Project repository, discovers its baselines, and runs the guidance generator to produce deployable artifacts."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "MSCPGEN"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "mscpgen CLI executed"
	rootCommandDebugMessageConstant         = "mscpgen CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	defaultConfigurationSearchPathConstant  = "."
	catalogConfigurationKeyConstant         = "catalog"
	syncConfigurationKeyConstant            = "sync"
	generateConfigurationKeyConstant        = "generate"
	versionFlagArgumentConstant             = "--version"
	versionOutputTemplateConstant           = "mscpgen version: %s\n"
	defaultVersionValueConstant             = "dev"
	developmentVersionMarkerConstant        = "(devel)"
	initFlagNameConstant                    = "init"
	initFlagUsageConstant                   = "Write the embedded default configuration to the selected scope."
	forceFlagNameConstant                   = "force"
	forceFlagUsageConstant                  = "Overwrite an existing configuration file when combined with --init."
	localConfigurationScopeConstant         = "local"
	userConfigurationScopeConstant          = "user"
	userConfigurationDirectoryConstant      = ".mscpgen"
	configurationFileNameConstant           = "config.yaml"
	configurationFileWrittenMessageConstant = "default configuration written"
	configurationWrittenTemplateConstant    = "Configuration written to %s\n"
	configurationExistsTemplateConstant     = "configuration file %s already exists; pass --force to overwrite"
	unsupportedInitScopeTemplateConstant    = "unsupported configuration scope: %s"
	homeDirectoryErrorTemplateConstant      = "unable to resolve home directory: %w"
	configurationWriteErrorTemplateConstant = "unable to write configuration file: %w"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common   ApplicationCommonConfiguration  `mapstructure:"common"`
	Catalog  catalog.CommandConfiguration    `mapstructure:"catalog"`
	Sync     reposync.CommandConfiguration   `mapstructure:"sync"`
	Generate generation.CommandConfiguration `mapstructure:"generate"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	initScopeFlagValue     string
	forceFlagValue         bool
	commandContextAccessor utils.CommandContextAccessor
	versionResolver        func(context.Context) string
	exitFunction           func(int)
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	embeddedConfiguration, _ := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		versionResolver:        resolveBuildVersion,
		exitFunction:           os.Exit,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	logLevelFlagUsage := flagutils.FormatChoiceUsage(
		string(utils.LogLevelInfo),
		[]string{string(utils.LogLevelDebug), string(utils.LogLevelInfo), string(utils.LogLevelWarn), string(utils.LogLevelError)},
		logLevelFlagUsageConstant,
	)
	logFormatFlagUsage := flagutils.FormatChoiceUsage(
		string(utils.LogFormatStructured),
		[]string{string(utils.LogFormatStructured), string(utils.LogFormatConsole)},
		logFormatFlagUsageConstant,
	)
	initFlagUsage := flagutils.FormatChoiceUsage(
		localConfigurationScopeConstant,
		[]string{localConfigurationScopeConstant, userConfigurationScopeConstant},
		initFlagUsageConstant,
	)

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsage)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsage)
	cobraCommand.PersistentFlags().StringVar(&application.initScopeFlagValue, initFlagNameConstant, "", initFlagUsage)
	cobraCommand.PersistentFlags().Lookup(initFlagNameConstant).NoOptDefVal = localConfigurationScopeConstant
	cobraCommand.PersistentFlags().BoolVar(&application.forceFlagValue, forceFlagNameConstant, false, forceFlagUsageConstant)

	branchCatalogBuilder := catalog.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() catalog.CommandConfiguration {
			return application.configuration.Catalog
		},
	}
	branchCatalogCommand, branchCatalogBuildError := branchCatalogBuilder.Build()
	if branchCatalogBuildError == nil {
		cobraCommand.AddCommand(branchCatalogCommand)
	}

	synchronizeBuilder := reposync.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() reposync.CommandConfiguration {
			return application.configuration.Sync
		},
	}
	synchronizeCommand, synchronizeBuildError := synchronizeBuilder.Build()
	if synchronizeBuildError == nil {
		cobraCommand.AddCommand(synchronizeCommand)
	}

	baselineListingBuilder := baselines.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		SyncConfigurationProvider: func() reposync.CommandConfiguration {
			return application.configuration.Sync
		},
	}
	baselineListingCommand, baselineListingBuildError := baselineListingBuilder.Build()
	if baselineListingBuildError == nil {
		cobraCommand.AddCommand(baselineListingCommand)
	}

	generateBuilder := workflow.GenerateCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		SyncConfigurationProvider: func() reposync.CommandConfiguration {
			return application.configuration.Sync
		},
		GenerationConfigurationProvider: func() generation.CommandConfiguration {
			return application.configuration.Generate
		},
	}
	generateCommand, generateBuildError := generateBuilder.Build()
	if generateBuildError == nil {
		cobraCommand.AddCommand(generateCommand)
	}

	reportBuilder := workflow.ReportCommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		SyncConfigurationProvider: func() reposync.CommandConfiguration {
			return application.configuration.Sync
		},
		GenerationConfigurationProvider: func() generation.CommandConfiguration {
			return application.configuration.Generate
		},
	}
	reportCommand, reportBuildError := reportBuilder.Build()
	if reportBuildError == nil {
		cobraCommand.AddCommand(reportCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	normalizedArguments := flagutils.NormalizeToggleArguments(os.Args[1:])

	if argumentsRequestVersion(normalizedArguments) {
		fmt.Printf(versionOutputTemplateConstant, application.resolveVersion())
		if syncError := application.flushLogger(); syncError != nil {
			return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
		}
		application.exitFunction(0)
		return nil
	}

	application.rootCommand.SetArgs(normalizedArguments)
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatStructured),
	}
	for configurationKey, configurationValue := range catalog.DefaultConfigurationValues(catalogConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range reposync.DefaultConfigurationValues(syncConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range generation.DefaultConfigurationValues(generateConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if command.PersistentFlags().Changed(initFlagNameConstant) {
		return application.initializeDefaultConfigurationFile(command)
	}

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) initializeDefaultConfigurationFile(command *cobra.Command) error {
	targetPath, resolveError := resolveConfigurationTargetPath(application.initScopeFlagValue)
	if resolveError != nil {
		return resolveError
	}

	if !application.forceFlagValue {
		if _, statError := os.Stat(targetPath); statError == nil {
			return fmt.Errorf(configurationExistsTemplateConstant, targetPath)
		}
	}

	configurationData, _ := EmbeddedDefaultConfiguration()
	if directoryError := os.MkdirAll(filepath.Dir(targetPath), 0o755); directoryError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, directoryError)
	}
	if writeError := os.WriteFile(targetPath, configurationData, 0o644); writeError != nil {
		return fmt.Errorf(configurationWriteErrorTemplateConstant, writeError)
	}

	application.logger.Info(
		configurationFileWrittenMessageConstant,
		zap.String(configurationFileFieldConstant, targetPath),
	)
	fmt.Fprintf(command.OutOrStdout(), configurationWrittenTemplateConstant, targetPath)

	return nil
}

func resolveConfigurationTargetPath(scope string) (string, error) {
	normalizedScope := strings.ToLower(strings.TrimSpace(scope))
	switch normalizedScope {
	case localConfigurationScopeConstant:
		return configurationFileNameConstant, nil
	case userConfigurationScopeConstant:
		homeDirectory, homeDirectoryError := os.UserHomeDir()
		if homeDirectoryError != nil {
			return "", fmt.Errorf(homeDirectoryErrorTemplateConstant, homeDirectoryError)
		}
		return filepath.Join(homeDirectory, userConfigurationDirectoryConstant, configurationFileNameConstant), nil
	default:
		return "", fmt.Errorf(unsupportedInitScopeTemplateConstant, scope)
	}
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	homeDirectory, homeDirectoryError := os.UserHomeDir()
	if homeDirectoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(homeDirectory, userConfigurationDirectoryConstant))
	}
	return searchPaths
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) resolveVersion() string {
	executionContext := application.rootCommand.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	if application.versionResolver != nil {
		resolvedVersion := strings.TrimSpace(application.versionResolver(executionContext))
		if len(resolvedVersion) > 0 {
			return resolvedVersion
		}
	}

	return defaultVersionValueConstant
}

func argumentsRequestVersion(arguments []string) bool {
	for _, argument := range arguments {
		if argument == versionFlagArgumentConstant {
			return true
		}
	}
	return false
}

func resolveBuildVersion(context.Context) string {
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if !buildInfoAvailable {
		return defaultVersionValueConstant
	}

	moduleVersion := strings.TrimSpace(buildInfo.Main.Version)
	if len(moduleVersion) == 0 || moduleVersion == developmentVersionMarkerConstant {
		return defaultVersionValueConstant
	}

	return moduleVersion
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
