package catalog

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/dependencies"
	"github.com/headmin/mscpgen/internal/shared"
	flagutils "github.com/headmin/mscpgen/internal/utils/flags"
)

const (
	commandUseConstant                = "branches"
	commandShortDescriptionConstant   = "List selectable release branches"
	commandLongDescriptionConstant    = "branches queries the compliance repository remote and prints the selectable release branches grouped by platform."
	labeledBranchLineTemplateConstant = "%s (%s)\n"
	plainBranchLineTemplateConstant   = "%s\n"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the branches command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the branches command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	command.Flags().Bool(flagutils.RefreshFlagName, false, flagutils.RefreshFlagUsage)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, _ []string) error {
	refreshRequested, refreshFlagError := command.Flags().GetBool(flagutils.RefreshFlagName)
	if refreshFlagError != nil {
		return refreshFlagError
	}

	logger := builder.resolveLogger()
	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.humanReadableLoggingEnabled())
	if executorError != nil {
		return executorError
	}

	catalogService, serviceError := NewService(Dependencies{Logger: logger, GitExecutor: gitExecutor}, builder.resolveConfiguration())
	if serviceError != nil {
		return serviceError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	var branchRefs []BranchRef
	var listError error
	if refreshRequested {
		branchRefs, listError = catalogService.RefreshBranches(executionContext)
	} else {
		branchRefs, listError = catalogService.ListBranches(executionContext)
	}
	if listError != nil {
		return listError
	}

	printBranchCatalog(command.OutOrStdout(), branchRefs)
	return nil
}

func printBranchCatalog(outputWriter io.Writer, branchRefs []BranchRef) {
	for _, branchRef := range branchRefs {
		if branchRef.DisplayLabel == branchRef.Name {
			fmt.Fprintf(outputWriter, plainBranchLineTemplateConstant, branchRef.Name)
			continue
		}
		fmt.Fprintf(outputWriter, labeledBranchLineTemplateConstant, branchRef.DisplayLabel, branchRef.Name)
	}
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
