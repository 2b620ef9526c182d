package dependencies

import (
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/execshell"
	"github.com/headmin/mscpgen/internal/shared"
)

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	return newShellExecutor(logger, humanReadableLogging)
}

// ResolveToolExecutor returns the provided executor or constructs a shell-backed default.
func ResolveToolExecutor(existing shared.ToolExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.ToolExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	return newShellExecutor(logger, humanReadableLogging)
}

func newShellExecutor(logger *zap.Logger, humanReadableLogging bool) (*execshell.ShellExecutor, error) {
	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, creationError := execshell.NewShellExecutorWithConfiguration(logger, commandRunner, execshell.ExecutorConfiguration{HumanReadableLogging: humanReadableLogging})
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
