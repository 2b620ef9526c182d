package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/headmin/mscpgen/internal/generation"
	"github.com/headmin/mscpgen/internal/reposync"
	"github.com/headmin/mscpgen/internal/shared"
	"github.com/headmin/mscpgen/internal/utils"
	flagutils "github.com/headmin/mscpgen/internal/utils/flags"
)

const (
	reportCommandUseConstant              = "report"
	reportCommandShortDescriptionConstant = "Report artifacts produced for a baseline"
	reportCommandLongDescriptionConstant  = "report lists the files currently under the build directory for a baseline together with artifact counts, without running the generator."
	reportHeaderTemplateConstant          = "REPORT: %s (%d files)\n"
	reportFileLineTemplateConstant        = "  %s\n"
)

// ReportCommandBuilder assembles the report command.
type ReportCommandBuilder struct {
	LoggerProvider                  LoggerProvider
	GitExecutor                     shared.GitExecutor
	ToolExecutor                    shared.ToolExecutor
	HumanReadableLoggingProvider    func() bool
	SyncConfigurationProvider       func() reposync.CommandConfiguration
	GenerationConfigurationProvider func() generation.CommandConfiguration

	baselineFlagValues *flagutils.BaselineFlagValues
}

// Build constructs the report command.
func (builder *ReportCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   reportCommandUseConstant,
		Short: reportCommandShortDescriptionConstant,
		Long:  reportCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	builder.baselineFlagValues = flagutils.BindBaselineFlags(command, flagutils.BaselineFlagValues{}, flagutils.BaselineFlagDefinition{
		Name:    flagutils.BaselineFlagName,
		Usage:   flagutils.BaselineFlagUsage,
		Enabled: true,
	})

	return command, nil
}

func (builder *ReportCommandBuilder) run(command *cobra.Command, _ []string) error {
	baselineID := strings.TrimSpace(builder.baselineFlagValues.ID)
	if len(baselineID) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return errors.New(missingBaselineIDMessageConstant)
	}

	logger := resolveLogger(builder.LoggerProvider)
	humanReadableLogging := builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider()
	session, sessionError := newCommandSession(logger, builder.GitExecutor, builder.ToolExecutor, humanReadableLogging,
		resolveSyncConfiguration(builder.SyncConfigurationProvider),
		resolveGenerationConfiguration(builder.GenerationConfigurationProvider))
	if sessionError != nil {
		return sessionError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	artifactReport, reportError := session.Inventory(executionContext, baselineID)
	if reportError != nil {
		return reportError
	}

	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())
	fmt.Fprintf(outputWriter, reportHeaderTemplateConstant, artifactReport.BaselineID, len(artifactReport.ProducedFiles))
	printArtifactInventory(outputWriter, artifactReport.Inventory)
	for _, producedFile := range artifactReport.ProducedFiles {
		fmt.Fprintf(outputWriter, reportFileLineTemplateConstant, producedFile)
	}
	return nil
}
