package reposync

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/dependencies"
	"github.com/headmin/mscpgen/internal/shared"
	flagutils "github.com/headmin/mscpgen/internal/utils/flags"
)

const (
	commandUseConstant                 = "sync [branch]"
	commandShortDescriptionConstant    = "Synchronize the working copy with a branch"
	commandLongDescriptionConstant     = "sync clones the compliance repository on first use and switches or fast-forwards the working copy to the requested branch."
	missingBranchNameMessageConstant   = "branch name is required; pass it as an argument or with --branch"
	syncSuccessMessageTemplateConstant = "SYNCED: %s (%s)\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the sync command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the sync command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.MaximumNArgs(1),
		RunE:  builder.run,
	}

	flagutils.BindBranchFlags(command, flagutils.BranchFlagValues{}, flagutils.BranchFlagDefinition{
		Name:    flagutils.BranchFlagName,
		Usage:   flagutils.BranchFlagUsage,
		Enabled: true,
	})

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	branchName, branchResolutionError := resolveBranchArgument(command, arguments)
	if branchResolutionError != nil {
		return branchResolutionError
	}
	if len(branchName) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return errors.New(missingBranchNameMessageConstant)
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.humanReadableLoggingEnabled())
	if executorError != nil {
		return executorError
	}

	synchronizer, serviceError := NewService(Dependencies{GitExecutor: gitExecutor}, builder.resolveConfiguration())
	if serviceError != nil {
		return serviceError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	synchronizedState, syncError := synchronizer.Sync(executionContext, branchName)
	if syncError != nil {
		return syncError
	}

	fmt.Fprintf(command.OutOrStdout(), syncSuccessMessageTemplateConstant, synchronizedState.CurrentBranch, synchronizedState.LocalPath)
	return nil
}

func resolveBranchArgument(command *cobra.Command, arguments []string) (string, error) {
	if len(arguments) > 0 {
		return strings.TrimSpace(arguments[0]), nil
	}
	flagValue, flagError := command.Flags().GetString(flagutils.BranchFlagName)
	if flagError != nil {
		return "", flagError
	}
	return strings.TrimSpace(flagValue), nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
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
