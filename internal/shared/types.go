package shared

import (
	"context"
	"time"

	"github.com/headmin/mscpgen/internal/execshell"
)

const (
	// OriginRemoteNameConstant identifies the upstream remote tracked by synchronized clones.
	OriginRemoteNameConstant = "origin"
)

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// GitExecutor exposes the subset of shell execution used by repository services.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ToolExecutor exposes execution of external tooling such as the guidance generator.
type ToolExecutor interface {
	ExecuteTool(executionContext context.Context, executable string, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
