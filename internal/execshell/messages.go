package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
)

const (
	gitVersionFlagConstant                   = "--version"
	gitLSRemoteSubcommandNameConstant        = "ls-remote"
	gitHeadsFlagConstant                     = "--heads"
	gitCloneSubcommandNameConstant           = "clone"
	gitBranchFlagConstant                    = "--branch"
	gitShortBranchFlagConstant               = "-b"
	gitDepthFlagConstant                     = "--depth"
	gitFetchSubcommandNameConstant           = "fetch"
	gitCheckoutSubcommandNameConstant        = "checkout"
	gitPullSubcommandNameConstant            = "pull"
	gitRemoteSubcommandNameConstant          = "remote"
	gitSetBranchesSubcommandNameConstant     = "set-branches"
	gitRevParseSubcommandNameConstant        = "rev-parse"
	gitWorkTreeFlagConstant                  = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant                 = "--abbrev-ref"
	gitHeadReferenceConstant                 = "HEAD"
	gitFetchDefaultRemoteLabelConstant       = "all remotes"
	gitCloneTargetArgumentCountThreshold     = 2
	gitRemoteSubcommandArgumentIndexConstant = 1
)

const (
	gitVersionStartTemplateConstant                  = "Checking git availability"
	gitVersionSuccessTemplateConstant                = "git is available (%s)"
	gitVersionFailureTemplateConstant                = "git availability check failed (exit code %d%s)"
	gitVersionExecutionFailureTemplateConstant       = "git is not available: %s"
	gitLSRemoteHeadsStartTemplateConstant            = "Listing branches on %s"
	gitLSRemoteHeadsSuccessTemplateConstant          = "Listed branches on %s"
	gitLSRemoteHeadsFailureTemplateConstant          = "Failed to list branches on %s (exit code %d%s)"
	gitLSRemoteHeadsExecutionFailureTemplateConstant = "Unable to list branches on %s: %s"
	gitLSRemoteGenericStartTemplateConstant          = "Querying remote references on %s"
	gitLSRemoteGenericSuccessTemplateConstant        = "Queried remote references on %s"
	gitLSRemoteGenericFailureTemplateConstant        = "Failed to query remote references on %s (exit code %d%s)"
	gitLSRemoteGenericExecutionFailureTemplate       = "Unable to query remote references on %s: %s"
	gitCloneStartTemplateConstant                    = "Cloning branch %s of %s into %s"
	gitCloneWithoutBranchStartTemplateConstant       = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                  = "Cloned branch %s of %s into %s"
	gitCloneWithoutBranchSuccessTemplateConstant     = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                  = "Failed to clone branch %s of %s into %s (exit code %d%s)"
	gitCloneWithoutBranchFailureTemplateConstant     = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant         = "Unable to clone branch %s of %s into %s: %s"
	gitCloneWithoutBranchExecutionFailureTemplate    = "Unable to clone %s into %s: %s"
	gitFetchStartTemplateConstant                    = "Fetching %s from %s in %s"
	gitFetchWithoutRefsStartTemplateConstant         = "Fetching from %s in %s"
	gitFetchSuccessTemplateConstant                  = "Fetched %s from %s in %s"
	gitFetchWithoutRefsSuccessTemplateConstant       = "Fetched from %s in %s"
	gitFetchFailureTemplateConstant                  = "Failed to fetch %s from %s in %s (exit code %d%s)"
	gitFetchWithoutRefsFailureTemplateConstant       = "Failed to fetch from %s in %s (exit code %d%s)"
	gitFetchExecutionFailureTemplateConstant         = "Unable to fetch %s from %s in %s: %s"
	gitFetchWithoutRefsExecutionFailureTemplate      = "Unable to fetch from %s in %s: %s"
	gitCheckoutStartTemplateConstant                 = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant               = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant               = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant      = "Unable to switch %s to branch %s: %s"
	gitPullStartTemplateConstant                     = "Updating branch %s from %s in %s"
	gitPullSuccessTemplateConstant                   = "Updated branch %s from %s in %s"
	gitPullFailureTemplateConstant                   = "Failed to update branch %s from %s in %s (exit code %d%s)"
	gitPullExecutionFailureTemplateConstant          = "Unable to update branch %s from %s in %s: %s"
	gitSetBranchesStartTemplateConstant              = "Tracking branch %s on %s in %s"
	gitSetBranchesSuccessTemplateConstant            = "Now tracking branch %s on %s in %s"
	gitSetBranchesFailureTemplateConstant            = "Failed to track branch %s on %s in %s (exit code %d%s)"
	gitSetBranchesExecutionFailureTemplateConstant   = "Unable to track branch %s on %s in %s: %s"
	gitWorkTreeStartTemplateConstant                 = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant               = "%s is a Git repository"
	gitWorkTreeFailureTemplateConstant               = "Could not confirm %s is a Git repository (exit code %d%s)"
	gitWorkTreeExecutionFailureTemplateConstant      = "Could not analyze %s: %s"
	gitCurrentBranchStartTemplateConstant            = "Identifying current branch in %s"
	gitCurrentBranchSuccessTemplateConstant          = "Current branch in %s is %s"
	gitCurrentBranchDetachedSuccessTemplateConstant  = "%s is in a detached HEAD state"
	gitCurrentBranchFailureTemplateConstant          = "Failed to identify current branch in %s (exit code %d%s)"
	gitCurrentBranchExecutionFailureTemplateConstant = "Unable to identify current branch in %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) shouldLogStartMessage(command ShellCommand) bool {
	if command.Name != CommandGit {
		return true
	}
	if len(command.Details.Arguments) == 0 {
		return true
	}
	firstArgument := strings.TrimSpace(command.Details.Arguments[0])
	if firstArgument == gitRevParseSubcommandNameConstant {
		return false
	}
	if firstArgument == gitVersionFlagConstant {
		return false
	}
	return true
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGit {
		return formatter.describeGitMessage(command, result, failure, stage)
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	subcommand := strings.TrimSpace(command.Details.Arguments[0])
	switch subcommand {
	case gitVersionFlagConstant:
		return formatter.describeGitVersionMessage(command, result, failure, stage)
	case gitLSRemoteSubcommandNameConstant:
		return formatter.describeGitLSRemoteMessage(command, result, failure, stage)
	case gitCloneSubcommandNameConstant:
		return formatter.describeGitCloneMessage(command, result, failure, stage)
	case gitFetchSubcommandNameConstant:
		return formatter.describeGitFetchMessage(command, result, failure, stage)
	case gitCheckoutSubcommandNameConstant:
		return formatter.describeGitCheckoutMessage(command, result, failure, stage)
	case gitPullSubcommandNameConstant:
		return formatter.describeGitPullMessage(command, result, failure, stage)
	case gitRemoteSubcommandNameConstant:
		return formatter.describeGitRemoteMessage(command, result, failure, stage)
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitVersionMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return gitVersionStartTemplateConstant
	case messageStageSuccess:
		return fmt.Sprintf(gitVersionSuccessTemplateConstant, formatter.ensureValue(strings.TrimSpace(result.StandardOutput)))
	case messageStageFailure:
		return fmt.Sprintf(gitVersionFailureTemplateConstant, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitVersionExecutionFailureTemplateConstant, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitLSRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	remote := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))

	if containsArgument(arguments, gitHeadsFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitLSRemoteHeadsStartTemplateConstant, remote)
		case messageStageSuccess:
			return fmt.Sprintf(gitLSRemoteHeadsSuccessTemplateConstant, remote)
		case messageStageFailure:
			return fmt.Sprintf(gitLSRemoteHeadsFailureTemplateConstant, remote, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitLSRemoteHeadsExecutionFailureTemplateConstant, remote, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitLSRemoteGenericStartTemplateConstant, remote)
	case messageStageSuccess:
		return fmt.Sprintf(gitLSRemoteGenericSuccessTemplateConstant, remote)
	case messageStageFailure:
		return fmt.Sprintf(gitLSRemoteGenericFailureTemplateConstant, remote, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitLSRemoteGenericExecutionFailureTemplate, remote, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCloneMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	branch := formatter.extractFlagValue(arguments, gitBranchFlagConstant)
	if len(branch) == 0 {
		branch = formatter.extractFlagValue(arguments, gitShortBranchFlagConstant)
	}
	remote, destination := formatter.extractCloneEndpoints(arguments[1:])
	remote = formatter.ensureValue(remote)
	destination = formatter.ensureValue(destination)

	if len(branch) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCloneStartTemplateConstant, branch, remote, destination)
		case messageStageSuccess:
			return fmt.Sprintf(gitCloneSuccessTemplateConstant, branch, remote, destination)
		case messageStageFailure:
			return fmt.Sprintf(gitCloneFailureTemplateConstant, branch, remote, destination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCloneExecutionFailureTemplateConstant, branch, remote, destination, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCloneWithoutBranchStartTemplateConstant, remote, destination)
	case messageStageSuccess:
		return fmt.Sprintf(gitCloneWithoutBranchSuccessTemplateConstant, remote, destination)
	case messageStageFailure:
		return fmt.Sprintf(gitCloneWithoutBranchFailureTemplateConstant, remote, destination, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCloneWithoutBranchExecutionFailureTemplate, remote, destination, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitFetchMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	positional := formatter.collectPositionalArguments(arguments[1:])

	remote := gitFetchDefaultRemoteLabelConstant
	if len(positional) > 0 {
		remote = positional[0]
	}
	references := emptyStringConstant
	if len(positional) > 1 {
		references = strings.Join(positional[1:], ", ")
	}

	if len(references) > 0 {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitFetchStartTemplateConstant, references, remote, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitFetchSuccessTemplateConstant, references, remote, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitFetchFailureTemplateConstant, references, remote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitFetchExecutionFailureTemplateConstant, references, remote, workingDirectory, formatter.describeFailure(failure))
		}
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitFetchWithoutRefsStartTemplateConstant, remote, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitFetchWithoutRefsSuccessTemplateConstant, remote, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitFetchWithoutRefsFailureTemplateConstant, remote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitFetchWithoutRefsExecutionFailureTemplate, remote, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitCheckoutMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	branch := formatter.ensureValue(formatter.extractFirstNonFlagArgument(arguments[1:]))

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitCheckoutStartTemplateConstant, workingDirectory, branch)
	case messageStageSuccess:
		return fmt.Sprintf(gitCheckoutSuccessTemplateConstant, workingDirectory, branch)
	case messageStageFailure:
		return fmt.Sprintf(gitCheckoutFailureTemplateConstant, workingDirectory, branch, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitCheckoutExecutionFailureTemplateConstant, workingDirectory, branch, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitPullMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)
	positional := formatter.collectPositionalArguments(arguments[1:])

	remote := fallbackUnknownValueLabelConstant
	branch := fallbackUnknownValueLabelConstant
	if len(positional) > 0 {
		remote = positional[0]
	}
	if len(positional) > 1 {
		branch = positional[1]
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitPullStartTemplateConstant, branch, remote, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitPullSuccessTemplateConstant, branch, remote, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitPullFailureTemplateConstant, branch, remote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitPullExecutionFailureTemplateConstant, branch, remote, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRemoteMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	subcommand := strings.TrimSpace(formatter.argumentAtIndex(arguments, gitRemoteSubcommandArgumentIndexConstant))
	if subcommand != gitSetBranchesSubcommandNameConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	positional := formatter.collectPositionalArguments(arguments[2:])
	remote := fallbackUnknownValueLabelConstant
	branch := fallbackUnknownValueLabelConstant
	if len(positional) > 0 {
		remote = positional[0]
	}
	if len(positional) > 1 {
		branch = positional[1]
	}

	switch stage {
	case messageStageStart:
		return fmt.Sprintf(gitSetBranchesStartTemplateConstant, branch, remote, workingDirectory)
	case messageStageSuccess:
		return fmt.Sprintf(gitSetBranchesSuccessTemplateConstant, branch, remote, workingDirectory)
	case messageStageFailure:
		return fmt.Sprintf(gitSetBranchesFailureTemplateConstant, branch, remote, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(gitSetBranchesExecutionFailureTemplateConstant, branch, remote, workingDirectory, formatter.describeFailure(failure))
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitWorkTreeExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	if containsArgument(arguments, gitAbbrevRefFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCurrentBranchStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			trimmed := strings.TrimSpace(result.StandardOutput)
			if strings.EqualFold(trimmed, gitHeadReferenceConstant) || len(trimmed) == 0 {
				return fmt.Sprintf(gitCurrentBranchDetachedSuccessTemplateConstant, workingDirectory)
			}
			return fmt.Sprintf(gitCurrentBranchSuccessTemplateConstant, workingDirectory, trimmed)
		case messageStageFailure:
			return fmt.Sprintf(gitCurrentBranchFailureTemplateConstant, workingDirectory, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		case messageStageExecutionFailure:
			return fmt.Sprintf(gitCurrentBranchExecutionFailureTemplateConstant, workingDirectory, formatter.describeFailure(failure))
		}
	}

	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf("%s %s", commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	workingDirectorySuffix := formatter.formatWorkingDirectorySuffix(command)
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if strings.TrimSpace(argument) == value {
			return true
		}
	}
	return false
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index >= 0 && index < len(arguments) {
		return arguments[index]
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func (formatter CommandMessageFormatter) extractFirstNonFlagArgument(arguments []string) string {
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			continue
		}
		return trimmed
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) extractFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments); index++ {
		if strings.TrimSpace(arguments[index]) == flag && index+1 < len(arguments) {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) collectPositionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	skipNext := false
	for _, argument := range arguments {
		trimmed := strings.TrimSpace(argument)
		if skipNext {
			skipNext = false
			continue
		}
		if len(trimmed) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "-") {
			if flagExpectsValue(trimmed) {
				skipNext = true
			}
			continue
		}
		positional = append(positional, trimmed)
	}
	return positional
}

func (formatter CommandMessageFormatter) extractCloneEndpoints(arguments []string) (string, string) {
	positional := formatter.collectPositionalArguments(arguments)
	if len(positional) >= gitCloneTargetArgumentCountThreshold {
		return positional[0], positional[1]
	}
	if len(positional) == 1 {
		return positional[0], emptyStringConstant
	}
	return emptyStringConstant, emptyStringConstant
}

func flagExpectsValue(flag string) bool {
	switch flag {
	case gitBranchFlagConstant, gitShortBranchFlagConstant, gitDepthFlagConstant:
		return true
	default:
		return false
	}
}
