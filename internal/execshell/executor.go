package execshell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

const (
	loggerNotConfiguredMessageConstant        = "logger not configured"
	commandRunnerNotConfiguredMessageConstant = "command runner not configured"
	executableNameRequiredMessageConstant     = "executable name must be provided"
	commandStartedLogMessageConstant          = "executing command"
	commandCompletedLogMessageConstant        = "command completed"
	commandFailedLogMessageConstant           = "command failed"
	commandExecutionFailedLogMessageConstant  = "command execution failed"
	logFieldCommandNameConstant               = "command"
	logFieldCommandArgumentsConstant          = "arguments"
	logFieldWorkingDirectoryConstant          = "working_directory"
	logFieldExitCodeConstant                  = "exit_code"
	logFieldStandardErrorConstant             = "standard_error"
	commandFailedErrorTemplateConstant        = "%s exited with code %d%s"
	commandExecutionErrorTemplateConstant     = "%s could not be executed: %s"
	commandArgumentsSeparatorConstant         = " "
)

// CommandName identifies the executable a ShellCommand launches.
type CommandName string

// CommandGit names the version-control executable required by repository operations.
const CommandGit CommandName = "git"

// CommandDetails describes the arguments and environment of a single invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
}

// ShellCommand couples an executable name with its invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable outputs of a completed process.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandRunner abstracts process execution for testability.
type CommandRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// Sentinel errors reported by constructor validation.
var (
	// ErrLoggerNotConfigured indicates the executor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrCommandRunnerNotConfigured indicates the executor was constructed without a runner.
	ErrCommandRunnerNotConfigured = errors.New(commandRunnerNotConfiguredMessageConstant)
	// ErrExecutableNameRequired indicates a command was built without an executable name.
	ErrExecutableNameRequired = errors.New(executableNameRequiredMessageConstant)
)

// CommandFailedError reports a process that launched successfully but exited non-zero.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including captured standard error.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	trimmedStandardError := strings.TrimSpace(failure.Result.StandardError)
	if len(trimmedStandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, describeCommand(failure.Command), failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a process that could not be launched at all.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, describeCommand(failure.Command), failure.Cause)
}

// Unwrap exposes the underlying launch failure for errors.Is classification.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// ExecutorConfiguration adjusts optional ShellExecutor behavior.
type ExecutorConfiguration struct {
	HumanReadableLogging bool
	EventObserver        CommandEventObserver
}

// ShellExecutor coordinates external command execution with structured logging.
type ShellExecutor struct {
	logger               *zap.Logger
	commandRunner        CommandRunner
	messageFormatter     CommandMessageFormatter
	humanReadableLogging bool
	eventObserver        CommandEventObserver
}

// NewShellExecutor constructs a ShellExecutor with default configuration.
func NewShellExecutor(logger *zap.Logger, commandRunner CommandRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithConfiguration(logger, commandRunner, ExecutorConfiguration{})
}

// NewShellExecutorWithConfiguration constructs a ShellExecutor honoring the provided configuration.
func NewShellExecutorWithConfiguration(logger *zap.Logger, commandRunner CommandRunner, configuration ExecutorConfiguration) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if commandRunner == nil {
		return nil, ErrCommandRunnerNotConfigured
	}

	eventObserver := configuration.EventObserver
	if eventObserver == nil {
		eventObserver = noopCommandEventObserver{}
	}

	return &ShellExecutor{
		logger:               logger,
		commandRunner:        commandRunner,
		messageFormatter:     CommandMessageFormatter{},
		humanReadableLogging: configuration.HumanReadableLogging,
		eventObserver:        eventObserver,
	}, nil
}

// ExecuteGit runs the git executable with the supplied details.
func (executor *ShellExecutor) ExecuteGit(executionContext context.Context, details CommandDetails) (ExecutionResult, error) {
	return executor.Execute(executionContext, ShellCommand{Name: CommandGit, Details: details})
}

// ExecuteTool runs an arbitrary executable, such as the baseline generator, with the supplied details.
func (executor *ShellExecutor) ExecuteTool(executionContext context.Context, executable string, details CommandDetails) (ExecutionResult, error) {
	trimmedExecutable := strings.TrimSpace(executable)
	if len(trimmedExecutable) == 0 {
		return ExecutionResult{}, ErrExecutableNameRequired
	}
	return executor.Execute(executionContext, ShellCommand{Name: CommandName(trimmedExecutable), Details: details})
}

// Execute runs the supplied command, logging lifecycle events and classifying failures.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executor.logCommandStarted(command)
	executor.eventObserver.CommandStarted(command)

	executionResult, runError := executor.commandRunner.Run(executionContext, command)
	if runError != nil {
		executionFailure := CommandExecutionError{Command: command, Cause: runError}
		executor.logExecutionFailure(command, runError)
		executor.eventObserver.CommandExecutionFailed(command, runError)
		return ExecutionResult{}, executionFailure
	}

	executor.eventObserver.CommandCompleted(command, executionResult)

	if executionResult.ExitCode != 0 {
		executor.logCommandFailed(command, executionResult)
		return ExecutionResult{}, CommandFailedError{Command: command, Result: executionResult}
	}

	executor.logCommandCompleted(command, executionResult)
	return executionResult, nil
}

func (executor *ShellExecutor) logCommandStarted(command ShellCommand) {
	if executor.humanReadableLogging {
		if !executor.messageFormatter.shouldLogStartMessage(command) {
			return
		}
		executor.logger.Info(executor.messageFormatter.BuildStartedMessage(command))
		return
	}

	executor.logger.Debug(
		commandStartedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
}

func (executor *ShellExecutor) logCommandCompleted(command ShellCommand, result ExecutionResult) {
	if executor.humanReadableLogging {
		executor.logger.Info(executor.messageFormatter.BuildSuccessMessage(command))
		return
	}

	executor.logger.Debug(
		commandCompletedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
	)
}

func (executor *ShellExecutor) logCommandFailed(command ShellCommand, result ExecutionResult) {
	if executor.humanReadableLogging {
		executor.logger.Error(executor.messageFormatter.BuildFailureMessage(command, result))
		return
	}

	executor.logger.Error(
		commandFailedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
		zap.String(logFieldStandardErrorConstant, strings.TrimSpace(result.StandardError)),
	)
}

func (executor *ShellExecutor) logExecutionFailure(command ShellCommand, failure error) {
	if executor.humanReadableLogging {
		executor.logger.Error(executor.messageFormatter.BuildExecutionFailureMessage(command, failure))
		return
	}

	executor.logger.Error(
		commandExecutionFailedLogMessageConstant,
		zap.String(logFieldCommandNameConstant, string(command.Name)),
		zap.Strings(logFieldCommandArgumentsConstant, command.Details.Arguments),
		zap.Error(failure),
	)
}

func describeCommand(command ShellCommand) string {
	commandParts := append([]string{string(command.Name)}, command.Details.Arguments...)
	return strings.Join(commandParts, commandArgumentsSeparatorConstant)
}
