package baselines_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/baselines"
	"github.com/headmin/mscpgen/internal/execshell"
	"github.com/headmin/mscpgen/internal/reposync"
)

const commandFixtureDocumentConstant = `title: "macOS 15.0: Security Configuration - CIS Benchmark Level 1"
description: |
  This guide describes the actions to take when securing a macOS 15.0 system.
profile:
  - section: "auditing"
    rules:
      - audit_acls_files_configure
`

type scriptedGitExecutor struct {
	currentBranch    string
	recordedCommands []execshell.CommandDetails
}

func (executor *scriptedGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recordedCommands = append(executor.recordedCommands, details)
	if len(details.Arguments) == 0 {
		return execshell.ExecutionResult{}, nil
	}
	switch details.Arguments[0] {
	case "--version":
		return execshell.ExecutionResult{StandardOutput: "git version 2.44.0\n"}, nil
	case "rev-parse":
		if details.Arguments[1] == "--is-inside-work-tree" {
			return execshell.ExecutionResult{StandardOutput: "true\n"}, nil
		}
		return execshell.ExecutionResult{StandardOutput: executor.currentBranch + "\n"}, nil
	default:
		return execshell.ExecutionResult{}, nil
	}
}

func newBaselinesBuilder(executor *scriptedGitExecutor, localPath string) baselines.CommandBuilder {
	return baselines.CommandBuilder{
		LoggerProvider: func() *zap.Logger { return zap.NewNop() },
		GitExecutor:    executor,
		SyncConfigurationProvider: func() reposync.CommandConfiguration {
			configuration := reposync.DefaultCommandConfiguration()
			configuration.LocalPath = localPath
			return configuration
		},
	}
}

func TestBuildReturnsCommand(t *testing.T) {
	builder := baselines.CommandBuilder{}
	command, buildError := builder.Build()
	require.NoError(t, buildError)
	require.IsType(t, &cobra.Command{}, command)
	require.Equal(t, "baselines", command.Use)
}

func TestCommandListsDiscoveredBaselines(t *testing.T) {
	localPath := t.TempDir()
	baselinesDirectory := filepath.Join(localPath, "baselines")
	require.NoError(t, os.Mkdir(baselinesDirectory, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(baselinesDirectory, "cis_lvl1.yaml"), []byte(commandFixtureDocumentConstant), 0o644))

	executor := &scriptedGitExecutor{currentBranch: "sequoia"}
	builder := newBaselinesBuilder(executor, localPath)
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	outputBuffer := &bytes.Buffer{}
	command.SetOut(outputBuffer)

	require.NoError(t, command.RunE(command, []string{}))
	require.Contains(t, outputBuffer.String(), "CIS Lvl1 (cis_lvl1)")
}

func TestCommandReportsUnsynchronizedWorkingCopy(t *testing.T) {
	localPath := filepath.Join(t.TempDir(), "macos_security")
	executor := &scriptedGitExecutor{currentBranch: "sequoia"}
	builder := newBaselinesBuilder(executor, localPath)
	command, buildError := builder.Build()
	require.NoError(t, buildError)

	command.SetOut(&bytes.Buffer{})
	runError := command.RunE(command, []string{})

	var notSyncedError baselines.NotSyncedError
	require.ErrorAs(t, runError, &notSyncedError)
	require.Equal(t, localPath, notSyncedError.LocalPath)
}
