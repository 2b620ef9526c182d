package workflow

import (
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/dependencies"
	"github.com/headmin/mscpgen/internal/generation"
	"github.com/headmin/mscpgen/internal/reposync"
	"github.com/headmin/mscpgen/internal/shared"
)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func resolveSyncConfiguration(provider func() reposync.CommandConfiguration) reposync.CommandConfiguration {
	if provider == nil {
		return reposync.DefaultCommandConfiguration()
	}
	return provider().Sanitize()
}

func resolveGenerationConfiguration(provider func() generation.CommandConfiguration) generation.CommandConfiguration {
	if provider == nil {
		return generation.DefaultCommandConfiguration()
	}
	return provider().Sanitize()
}

func newCommandSession(logger *zap.Logger, gitExecutorCandidate shared.GitExecutor, toolExecutorCandidate shared.ToolExecutor, humanReadableLogging bool, syncConfiguration reposync.CommandConfiguration, generationConfiguration generation.CommandConfiguration) (*Session, error) {
	gitExecutor, gitExecutorError := dependencies.ResolveGitExecutor(gitExecutorCandidate, logger, humanReadableLogging)
	if gitExecutorError != nil {
		return nil, gitExecutorError
	}
	toolExecutor, toolExecutorError := dependencies.ResolveToolExecutor(toolExecutorCandidate, logger, humanReadableLogging)
	if toolExecutorError != nil {
		return nil, toolExecutorError
	}
	return NewSession(
		Dependencies{Logger: logger, GitExecutor: gitExecutor, ToolExecutor: toolExecutor},
		Configuration{Sync: syncConfiguration, Generation: generationConfiguration},
	)
}
