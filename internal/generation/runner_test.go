package generation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/execshell"
)

type stubToolExecutor struct {
	executionResult    execshell.ExecutionResult
	invocationError    error
	recordedExecutable string
	recordedDetails    execshell.CommandDetails
	invocationCount    int
}

func (executor *stubToolExecutor) ExecuteTool(_ context.Context, executable string, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.invocationCount++
	executor.recordedExecutable = executable
	executor.recordedDetails = details
	if executor.invocationError != nil {
		return execshell.ExecutionResult{}, executor.invocationError
	}
	return executor.executionResult, nil
}

type steppingClock struct {
	instants  []time.Time
	nextIndex int
}

func (clock *steppingClock) Now() time.Time {
	if clock.nextIndex >= len(clock.instants) {
		return clock.instants[len(clock.instants)-1]
	}
	instant := clock.instants[clock.nextIndex]
	clock.nextIndex++
	return instant
}

func populatedWorkingCopy(t *testing.T, baselineID string) string {
	t.Helper()
	localPath := t.TempDir()
	buildDirectory := filepath.Join(localPath, "build", baselineID)
	require.NoError(t, os.MkdirAll(filepath.Join(buildDirectory, "ddm"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(buildDirectory, "zulu.mobileconfig"), []byte("profile\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(buildDirectory, "alpha.mobileconfig"), []byte("profile\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(buildDirectory, "ddm", "activation.json"), []byte("{}\n"), 0o644))
	return localPath
}

func generatorInvocation(localPath string) Invocation {
	return Invocation{
		Executable:       filepath.Join(localPath, "scripts", "generate_guidance.py"),
		Arguments:        []string{filepath.Join("baselines", "cis_lvl1.yaml"), "-p", "-s"},
		WorkingDirectory: localPath,
	}
}

func TestNewRunnerValidatesDependencies(t *testing.T) {
	_, creationError := NewRunner(Dependencies{}, DefaultCommandConfiguration())

	require.ErrorIs(t, creationError, ErrToolExecutorNotConfigured)
}

func TestRunRequiresBaselineIdentifier(t *testing.T) {
	runner, creationError := NewRunner(Dependencies{ToolExecutor: &stubToolExecutor{}}, DefaultCommandConfiguration())
	require.NoError(t, creationError)

	_, runError := runner.Run(context.Background(), Invocation{}, "   ")

	require.ErrorIs(t, runError, ErrBaselineIDRequired)
}

func TestRunCapturesResultAndInventory(t *testing.T) {
	localPath := populatedWorkingCopy(t, "cis_lvl1")
	executor := &stubToolExecutor{executionResult: execshell.ExecutionResult{StandardOutput: "Profile creation complete.\n"}}
	startInstant := time.Date(2025, time.June, 2, 10, 0, 0, 0, time.UTC)
	runner, creationError := NewRunner(Dependencies{
		ToolExecutor: executor,
		Clock:        &steppingClock{instants: []time.Time{startInstant, startInstant.Add(90 * time.Second)}},
	}, DefaultCommandConfiguration())
	require.NoError(t, creationError)

	runResult, runError := runner.Run(context.Background(), generatorInvocation(localPath), "cis_lvl1")

	require.NoError(t, runError)
	require.Equal(t, filepath.Join(localPath, "scripts", "generate_guidance.py"), executor.recordedExecutable)
	require.Equal(t, []string{filepath.Join("baselines", "cis_lvl1.yaml"), "-p", "-s"}, executor.recordedDetails.Arguments)
	require.Equal(t, localPath, executor.recordedDetails.WorkingDirectory)
	require.Equal(t, "1", executor.recordedDetails.EnvironmentVariables["PYTHONUNBUFFERED"])
	require.Equal(t, 0, runResult.ExitCode)
	require.Equal(t, "Profile creation complete.\n", runResult.StandardOutput)
	require.Equal(t, 90*time.Second, runResult.Duration)
	require.Equal(t, []string{"alpha.mobileconfig", "ddm/activation.json", "zulu.mobileconfig"}, runResult.ProducedFiles)
	_, parseError := uuid.Parse(runResult.RunID)
	require.NoError(t, parseError)
}

func TestRunTreatsNonZeroExitAsResult(t *testing.T) {
	localPath := populatedWorkingCopy(t, "cis_lvl1")
	executor := &stubToolExecutor{invocationError: execshell.CommandFailedError{
		Result: execshell.ExecutionResult{ExitCode: 2, StandardError: "KeyError: 'rules'\n"},
	}}
	runner, creationError := NewRunner(Dependencies{ToolExecutor: executor}, DefaultCommandConfiguration())
	require.NoError(t, creationError)

	runResult, runError := runner.Run(context.Background(), generatorInvocation(localPath), "cis_lvl1")

	require.NoError(t, runError)
	require.Equal(t, 2, runResult.ExitCode)
	require.Equal(t, "KeyError: 'rules'\n", runResult.StandardError)
	require.Equal(t, []string{"alpha.mobileconfig", "ddm/activation.json", "zulu.mobileconfig"}, runResult.ProducedFiles)
}

func TestRunClassifiesSpawnFailures(t *testing.T) {
	executor := &stubToolExecutor{invocationError: execshell.CommandExecutionError{Cause: errors.New("fork/exec: no such file or directory")}}
	runner, creationError := NewRunner(Dependencies{ToolExecutor: executor}, DefaultCommandConfiguration())
	require.NoError(t, creationError)

	invocation := generatorInvocation(t.TempDir())
	_, runError := runner.Run(context.Background(), invocation, "cis_lvl1")

	var spawnError SpawnError
	require.ErrorAs(t, runError, &spawnError)
	require.Equal(t, invocation.Executable, spawnError.Executable)
}

func TestRunClassifiesTimeouts(t *testing.T) {
	executor := &stubToolExecutor{invocationError: execshell.CommandExecutionError{Cause: context.DeadlineExceeded}}
	configuration := DefaultCommandConfiguration()
	configuration.Timeout = 50 * time.Millisecond
	runner, creationError := NewRunner(Dependencies{ToolExecutor: executor}, configuration)
	require.NoError(t, creationError)

	_, runError := runner.Run(context.Background(), generatorInvocation(t.TempDir()), "cis_lvl1")

	var timeoutError TimeoutError
	require.ErrorAs(t, runError, &timeoutError)
	require.Equal(t, "cis_lvl1", timeoutError.BaselineID)
	require.Equal(t, 50*time.Millisecond, timeoutError.Timeout)
}

func TestRunTerminatesRunawayGenerator(t *testing.T) {
	shellExecutor, executorError := execshell.NewShellExecutor(zap.NewNop(), execshell.NewOSCommandRunner())
	require.NoError(t, executorError)
	configuration := DefaultCommandConfiguration()
	configuration.Timeout = 100 * time.Millisecond
	runner, creationError := NewRunner(Dependencies{ToolExecutor: shellExecutor}, configuration)
	require.NoError(t, creationError)

	invocation := Invocation{Executable: "/bin/sleep", Arguments: []string{"5"}, WorkingDirectory: t.TempDir()}
	_, runError := runner.Run(context.Background(), invocation, "cis_lvl1")

	var timeoutError TimeoutError
	require.ErrorAs(t, runError, &timeoutError)
}

func TestCollectProducedFilesHandlesMissingBuildDirectory(t *testing.T) {
	require.Empty(t, CollectProducedFiles(t.TempDir(), "cis_lvl1"))
}
