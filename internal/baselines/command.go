package baselines

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/dependencies"
	"github.com/headmin/mscpgen/internal/reposync"
	"github.com/headmin/mscpgen/internal/shared"
)

const (
	commandUseConstant              = "baselines"
	commandShortDescriptionConstant = "List baselines in the synchronized working copy"
	commandLongDescriptionConstant  = "baselines inspects the synchronized working copy and prints the baseline documents available for guidance generation."
	baselineListingTemplateConstant = "%s (%s)\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the baselines command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	HumanReadableLoggingProvider func() bool
	SyncConfigurationProvider    func() reposync.CommandConfiguration
}

// Build constructs the baselines command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.humanReadableLoggingEnabled())
	if executorError != nil {
		return executorError
	}

	synchronizer, synchronizerError := reposync.NewService(reposync.Dependencies{GitExecutor: gitExecutor}, builder.resolveSyncConfiguration())
	if synchronizerError != nil {
		return synchronizerError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	repositoryState, inspectError := synchronizer.Inspect(executionContext)
	if inspectError != nil {
		return inspectError
	}

	discoveryService := NewService(Dependencies{Logger: logger})
	descriptors, discoveryError := discoveryService.Discover(executionContext, repositoryState)
	if discoveryError != nil {
		return discoveryError
	}

	printBaselineListing(command.OutOrStdout(), descriptors)
	return nil
}

func printBaselineListing(outputWriter io.Writer, descriptors []Descriptor) {
	for _, descriptor := range descriptors {
		fmt.Fprintf(outputWriter, baselineListingTemplateConstant, descriptor.DisplayName, descriptor.ID)
	}
}

func (builder *CommandBuilder) resolveSyncConfiguration() reposync.CommandConfiguration {
	if builder.SyncConfigurationProvider == nil {
		return reposync.DefaultCommandConfiguration()
	}
	return builder.SyncConfigurationProvider().Sanitize()
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

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	return builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider()
}
