package reposync_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/execshell"
	"github.com/headmin/mscpgen/internal/reposync"
)

type recordingGitExecutor struct {
	recordedCommands []execshell.CommandDetails
}

func (executor *recordingGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	return execshell.ExecutionResult{}, nil
}

func newSyncBuilder(executor *recordingGitExecutor, localPath string) reposync.CommandBuilder {
	return reposync.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    executor,
		ConfigurationProvider: func() reposync.CommandConfiguration {
			configuration := reposync.DefaultCommandConfiguration()
			configuration.LocalPath = localPath
			return configuration
		},
	}
}

func TestBuildReturnsCommand(t *testing.T) {
	builder := reposync.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.IsType(t, &cobra.Command{}, command)
	require.NotNil(t, command.Flags().Lookup("branch"))
}

func TestCommandRequiresBranch(t *testing.T) {
	builder := newSyncBuilder(&recordingGitExecutor{}, filepath.Join(t.TempDir(), "macos_security"))
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	command.SetOut(&bytes.Buffer{})
	runError := command.RunE(command, []string{})
	require.ErrorContains(t, runError, "branch name is required")
}

func TestCommandSynchronizesPositionalBranch(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "macos_security")
	executor := &recordingGitExecutor{}
	builder := newSyncBuilder(executor, localPath)
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{"sequoia"}))
	require.Contains(t, outputBuffer.String(), "SYNCED: sequoia")
	require.Contains(t, outputBuffer.String(), localPath)

	cloneObserved := false
	for _, recordedCommand := range executor.recordedCommands {
		if len(recordedCommand.Arguments) > 0 && recordedCommand.Arguments[0] == "clone" {
			cloneObserved = true
		}
	}
	require.True(t, cloneObserved)
}

func TestCommandAcceptsBranchFlag(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "macos_security")
	executor := &recordingGitExecutor{}
	builder := newSyncBuilder(executor, localPath)
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.NoError(t, command.Flags().Set("branch", "tahoe"))

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{}))
	require.Contains(t, outputBuffer.String(), "SYNCED: tahoe")
}
