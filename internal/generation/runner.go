package generation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/execshell"
	"github.com/headmin/mscpgen/internal/shared"
)

const (
	toolExecutorMissingMessageConstant        = "tool executor not configured"
	baselineIdentifierRequiredMessageConstant = "baseline identifier must be provided"
	spawnFailureTemplateConstant              = "unable to launch generator %s: %v"
	timeoutFailureTemplateConstant            = "generation run for baseline %s timed out after %s"
	pythonUnbufferedEnvironmentNameConstant   = "PYTHONUNBUFFERED"
	pythonUnbufferedEnvironmentValueConstant  = "1"
	buildDirectoryNameConstant                = "build"
	runStartedMessageConstant                 = "generation run started"
	runCompletedMessageConstant               = "generation run completed"
	runIdentifierLogFieldConstant             = "run_id"
	baselineIdentifierLogFieldConstant        = "baseline_id"
	executableLogFieldConstant                = "executable"
	exitCodeLogFieldConstant                  = "exit_code"
	runDurationLogFieldConstant               = "duration"
	producedFileCountLogFieldConstant         = "produced_file_count"
)

// ErrToolExecutorNotConfigured indicates the generator executor dependency was missing.
var ErrToolExecutorNotConfigured = errors.New(toolExecutorMissingMessageConstant)

// ErrBaselineIDRequired indicates the requested baseline identifier was empty.
var ErrBaselineIDRequired = errors.New(baselineIdentifierRequiredMessageConstant)

// SpawnError reports a generator process that could not be launched at all.
type SpawnError struct {
	Executable string
	Cause      error
}

// Error describes the failed launch.
func (spawnError SpawnError) Error() string {
	return fmt.Sprintf(spawnFailureTemplateConstant, spawnError.Executable, spawnError.Cause)
}

// Unwrap exposes the underlying launch failure.
func (spawnError SpawnError) Unwrap() error {
	return spawnError.Cause
}

// TimeoutError reports a generator run that exceeded its configured deadline.
// The child process has already been terminated; partial output on disk is
// left in place.
type TimeoutError struct {
	BaselineID string
	Timeout    time.Duration
	Cause      error
}

// Error describes the expired run.
func (timeoutError TimeoutError) Error() string {
	return fmt.Sprintf(timeoutFailureTemplateConstant, timeoutError.BaselineID, timeoutError.Timeout)
}

// Unwrap exposes the underlying deadline error.
func (timeoutError TimeoutError) Unwrap() error {
	return timeoutError.Cause
}

// ExecutionResult captures one completed generator run.
type ExecutionResult struct {
	RunID          string
	ExitCode       int
	StandardOutput string
	StandardError  string
	Duration       time.Duration
	ProducedFiles  []string
}

// Dependencies enumerates external collaborators required by the runner.
type Dependencies struct {
	Logger       *zap.Logger
	ToolExecutor shared.ToolExecutor
	Clock        shared.Clock
}

// Runner executes generator invocations and gathers their produced artifacts.
type Runner struct {
	logger        *zap.Logger
	toolExecutor  shared.ToolExecutor
	clock         shared.Clock
	configuration CommandConfiguration
}

// NewRunner validates dependencies and prepares an execution runner.
func NewRunner(dependencies Dependencies, configuration CommandConfiguration) (*Runner, error) {
	if dependencies.ToolExecutor == nil {
		return nil, ErrToolExecutorNotConfigured
	}
	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}
	resolvedClock := dependencies.Clock
	if resolvedClock == nil {
		resolvedClock = shared.SystemClock{}
	}
	return &Runner{
		logger:        resolvedLogger,
		toolExecutor:  dependencies.ToolExecutor,
		clock:         resolvedClock,
		configuration: configuration.Sanitize(),
	}, nil
}

// Run launches the invocation and captures its outcome. A non-zero generator
// exit is a normal result, not an error; the produced-file inventory is
// gathered for every exit code.
func (runner *Runner) Run(executionContext context.Context, invocation Invocation, baselineID string) (ExecutionResult, error) {
	trimmedBaselineID := strings.TrimSpace(baselineID)
	if len(trimmedBaselineID) == 0 {
		return ExecutionResult{}, ErrBaselineIDRequired
	}

	runIdentifier := uuid.NewString()
	runner.logger.Info(runStartedMessageConstant,
		zap.String(runIdentifierLogFieldConstant, runIdentifier),
		zap.String(baselineIdentifierLogFieldConstant, trimmedBaselineID),
		zap.String(executableLogFieldConstant, invocation.Executable))

	runContext := executionContext
	if runner.configuration.Timeout > 0 {
		var cancelRun context.CancelFunc
		runContext, cancelRun = context.WithTimeout(executionContext, runner.configuration.Timeout)
		defer cancelRun()
	}

	startInstant := runner.clock.Now()
	shellResult, executionError := runner.toolExecutor.ExecuteTool(runContext, invocation.Executable, execshell.CommandDetails{
		Arguments:        invocation.Arguments,
		WorkingDirectory: invocation.WorkingDirectory,
		EnvironmentVariables: map[string]string{
			pythonUnbufferedEnvironmentNameConstant: pythonUnbufferedEnvironmentValueConstant,
		},
	})
	runDuration := runner.clock.Now().Sub(startInstant)

	if executionError != nil {
		var commandFailure execshell.CommandFailedError
		switch {
		case errors.Is(executionError, context.DeadlineExceeded):
			return ExecutionResult{}, TimeoutError{BaselineID: trimmedBaselineID, Timeout: runner.configuration.Timeout, Cause: executionError}
		case errors.Is(executionError, context.Canceled):
			return ExecutionResult{}, executionError
		case errors.As(executionError, &commandFailure):
			shellResult = commandFailure.Result
		default:
			return ExecutionResult{}, SpawnError{Executable: invocation.Executable, Cause: executionError}
		}
	}

	producedFiles := CollectProducedFiles(invocation.WorkingDirectory, trimmedBaselineID)
	runResult := ExecutionResult{
		RunID:          runIdentifier,
		ExitCode:       shellResult.ExitCode,
		StandardOutput: shellResult.StandardOutput,
		StandardError:  shellResult.StandardError,
		Duration:       runDuration,
		ProducedFiles:  producedFiles,
	}
	runner.logger.Info(runCompletedMessageConstant,
		zap.String(runIdentifierLogFieldConstant, runIdentifier),
		zap.String(baselineIdentifierLogFieldConstant, trimmedBaselineID),
		zap.Int(exitCodeLogFieldConstant, runResult.ExitCode),
		zap.Duration(runDurationLogFieldConstant, runDuration),
		zap.Int(producedFileCountLogFieldConstant, len(producedFiles)))
	return runResult, nil
}

// BuildDirectoryPath locates the generator's output directory for a baseline.
func BuildDirectoryPath(repositoryRoot string, baselineID string) string {
	return filepath.Join(repositoryRoot, buildDirectoryNameConstant, baselineID)
}

// CollectProducedFiles enumerates the regular files under the baseline's build
// output directory, slash-separated relative to it and ordered
// lexicographically. A missing directory yields an empty inventory.
func CollectProducedFiles(repositoryRoot string, baselineID string) []string {
	buildDirectory := BuildDirectoryPath(repositoryRoot, baselineID)
	producedFiles := []string{}
	walkError := filepath.WalkDir(buildDirectory, func(entryPath string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return entryError
		}
		if !directoryEntry.Type().IsRegular() {
			return nil
		}
		relativePath, relativeError := filepath.Rel(buildDirectory, entryPath)
		if relativeError != nil {
			return relativeError
		}
		producedFiles = append(producedFiles, filepath.ToSlash(relativePath))
		return nil
	})
	if walkError != nil {
		return []string{}
	}
	sort.Strings(producedFiles)
	return producedFiles
}
