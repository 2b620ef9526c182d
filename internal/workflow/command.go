package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/headmin/mscpgen/internal/generation"
	"github.com/headmin/mscpgen/internal/reposync"
	"github.com/headmin/mscpgen/internal/shared"
	"github.com/headmin/mscpgen/internal/utils"
	flagutils "github.com/headmin/mscpgen/internal/utils/flags"
)

const (
	generateCommandUseConstant              = "generate"
	generateCommandShortDescriptionConstant = "Generate guidance artifacts for a baseline"
	generateCommandLongDescriptionConstant  = "generate resolves a baseline in the synchronized working copy, builds the generator command for the selected artifact classes, and runs it, printing a summary of the produced artifacts."
	missingBaselineIDMessageConstant        = "baseline identifier is required; pass it with --baseline"
	generationFailedMessageConstant         = "baseline generation failed"
	dryRunPreviewTemplateConstant           = "DRY RUN: %s\n"
	generateSuccessTemplateConstant         = "GENERATED: %s (%s)\n"
	generateFailureTemplateConstant         = "FAILED: %s (%s)\n"
	profileCountTemplateConstant            = "profiles: %d\n"
	complianceScriptTemplateConstant        = "compliance script: %s\n"
	declarativeArtifactsTemplateConstant    = "ddm artifacts: %s\n"
	affirmativeLiteralConstant              = "yes"
	negativeLiteralConstant                 = "no"
)

// GenerateCommandBuilder assembles the generate command.
type GenerateCommandBuilder struct {
	LoggerProvider                  LoggerProvider
	GitExecutor                     shared.GitExecutor
	ToolExecutor                    shared.ToolExecutor
	HumanReadableLoggingProvider    func() bool
	SyncConfigurationProvider       func() reposync.CommandConfiguration
	GenerationConfigurationProvider func() generation.CommandConfiguration

	baselineFlagValues *flagutils.BaselineFlagValues
	branchFlagValues   *flagutils.BranchFlagValues
	toggleValues       *flagutils.ArtifactToggleValues
}

// Build constructs the generate command.
func (builder *GenerateCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   generateCommandUseConstant,
		Short: generateCommandShortDescriptionConstant,
		Long:  generateCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	builder.baselineFlagValues = flagutils.BindBaselineFlags(command, flagutils.BaselineFlagValues{}, flagutils.BaselineFlagDefinition{
		Name:    flagutils.BaselineFlagName,
		Usage:   flagutils.BaselineFlagUsage,
		Enabled: true,
	})
	builder.branchFlagValues = flagutils.BindBranchFlags(command, flagutils.BranchFlagValues{}, flagutils.BranchFlagDefinition{
		Name:    flagutils.BranchFlagName,
		Usage:   flagutils.BranchFlagUsage,
		Enabled: true,
	})

	staticDefaults := generation.DefaultCommandConfiguration().DefaultOptions()
	builder.toggleValues = flagutils.BindArtifactToggleFlags(command, flagutils.ArtifactToggleDefaults{
		Profiles: staticDefaults.Profiles,
		Scripts:  staticDefaults.Scripts,
		DDM:      staticDefaults.DDM,
		SCAP:     staticDefaults.SCAP,
	})
	command.Flags().Bool(flagutils.DryRunFlagName, false, flagutils.DryRunFlagUsage)

	return command, nil
}

func (builder *GenerateCommandBuilder) run(command *cobra.Command, _ []string) error {
	baselineID := strings.TrimSpace(builder.baselineFlagValues.ID)
	if len(baselineID) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return errors.New(missingBaselineIDMessageConstant)
	}

	logger := resolveLogger(builder.LoggerProvider)
	humanReadableLogging := builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider()
	generationConfiguration := resolveGenerationConfiguration(builder.GenerationConfigurationProvider)
	session, sessionError := newCommandSession(logger, builder.GitExecutor, builder.ToolExecutor, humanReadableLogging,
		resolveSyncConfiguration(builder.SyncConfigurationProvider), generationConfiguration)
	if sessionError != nil {
		return sessionError
	}

	executionContext := command.Context()
	if executionContext == nil {
		executionContext = context.Background()
	}

	branchName := strings.TrimSpace(builder.branchFlagValues.Name)
	if len(branchName) > 0 {
		if _, syncError := session.Sync(executionContext, branchName); syncError != nil {
			return syncError
		}
	}

	request := GenerateRequest{BaselineID: baselineID, Options: builder.effectiveOptions(command, generationConfiguration)}
	outputWriter := utils.NewFlushingWriter(command.OutOrStdout())

	dryRun, _ := command.Flags().GetBool(flagutils.DryRunFlagName)
	if dryRun {
		invocation, previewError := session.Preview(executionContext, request)
		if previewError != nil {
			return previewError
		}
		fmt.Fprintf(outputWriter, dryRunPreviewTemplateConstant, invocation.CommandLine())
		return nil
	}

	outcome, generateError := session.Generate(executionContext, request)
	if generateError != nil {
		return generateError
	}

	if !outcome.Summary.Succeeded {
		fmt.Fprintf(outputWriter, generateFailureTemplateConstant, baselineID, outcome.Summary.Message)
		return errors.New(generationFailedMessageConstant)
	}

	fmt.Fprintf(outputWriter, generateSuccessTemplateConstant, baselineID, outcome.Summary.Message)
	printArtifactInventory(outputWriter, outcome.Inventory)
	return nil
}

// effectiveOptions starts from the configured defaults and applies only the
// toggles the invocation explicitly set.
func (builder *GenerateCommandBuilder) effectiveOptions(command *cobra.Command, configuration generation.CommandConfiguration) generation.Options {
	generationOptions := configuration.DefaultOptions()
	if command == nil || builder.toggleValues == nil {
		return generationOptions
	}

	flagSet := command.Flags()
	if flagSet.Changed(flagutils.ProfilesFlagName) {
		generationOptions.Profiles = builder.toggleValues.Profiles
	}
	if flagSet.Changed(flagutils.ScriptsFlagName) {
		generationOptions.Scripts = builder.toggleValues.Scripts
	}
	if flagSet.Changed(flagutils.DDMFlagName) {
		generationOptions.DDM = builder.toggleValues.DDM
	}
	if flagSet.Changed(flagutils.SCAPFlagName) {
		generationOptions.SCAP = builder.toggleValues.SCAP
	}
	return generationOptions
}

func printArtifactInventory(outputWriter io.Writer, inventory generation.ArtifactInventory) {
	fmt.Fprintf(outputWriter, profileCountTemplateConstant, inventory.ProfileCount)
	fmt.Fprintf(outputWriter, complianceScriptTemplateConstant, describeToggle(inventory.HasComplianceScript))
	fmt.Fprintf(outputWriter, declarativeArtifactsTemplateConstant, describeToggle(inventory.HasDeclarativeArtifacts))
}

func describeToggle(enabled bool) string {
	if enabled {
		return affirmativeLiteralConstant
	}
	return negativeLiteralConstant
}
