package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/baselines"
	"github.com/headmin/mscpgen/internal/generation"
	"github.com/headmin/mscpgen/internal/reposync"
	"github.com/headmin/mscpgen/internal/shared"
)

const (
	unknownBaselineTemplateConstant      = "baseline %q not found in the synchronized working copy"
	workspaceSynchronizedMessageConstant = "workspace synchronized"
	branchFieldNameConstant              = "branch"
	localPathFieldNameConstant           = "local_path"
)

// UnknownBaselineError reports a requested baseline identifier absent from the
// discovered catalog of the current working copy.
type UnknownBaselineError struct {
	BaselineID string
}

// Error describes the unresolved baseline identifier.
func (unknownError UnknownBaselineError) Error() string {
	return fmt.Sprintf(unknownBaselineTemplateConstant, unknownError.BaselineID)
}

// Dependencies enumerates external collaborators required by a Session.
type Dependencies struct {
	Logger       *zap.Logger
	GitExecutor  shared.GitExecutor
	ToolExecutor shared.ToolExecutor
	Clock        shared.Clock
}

// Configuration aggregates the settings a Session hands to its collaborators.
type Configuration struct {
	Sync       reposync.CommandConfiguration
	Generation generation.CommandConfiguration
}

// GenerateRequest names the baseline to generate and the artifact classes to produce.
type GenerateRequest struct {
	BaselineID string
	Options    generation.Options
}

// GenerateOutcome collects everything a completed generator run produced.
type GenerateOutcome struct {
	Invocation generation.Invocation
	Result     generation.ExecutionResult
	Summary    generation.Summary
	Inventory  generation.ArtifactInventory
}

// ArtifactReport describes the build output currently on disk for a baseline.
type ArtifactReport struct {
	BaselineID    string
	BuildPath     string
	ProducedFiles []string
	Inventory     generation.ArtifactInventory
}

// Session owns the single repository state all operations observe. The state
// guard serializes Sync, Discover, and Generate so a branch switch can never
// interleave with a running generation.
type Session struct {
	logger                  *zap.Logger
	synchronizer            *reposync.Service
	discoverer              *baselines.Service
	runner                  *generation.Runner
	generationConfiguration generation.CommandConfiguration
	stateGuard              sync.Mutex
	repositoryState         reposync.RepositoryState
	stateSeeded             bool
}

// NewSession validates dependencies and prepares the session collaborators.
func NewSession(dependencies Dependencies, configuration Configuration) (*Session, error) {
	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	synchronizer, synchronizerError := reposync.NewService(reposync.Dependencies{GitExecutor: dependencies.GitExecutor}, configuration.Sync)
	if synchronizerError != nil {
		return nil, synchronizerError
	}

	runner, runnerError := generation.NewRunner(generation.Dependencies{
		Logger:       logger,
		ToolExecutor: dependencies.ToolExecutor,
		Clock:        dependencies.Clock,
	}, configuration.Generation)
	if runnerError != nil {
		return nil, runnerError
	}

	return &Session{
		logger:                  logger,
		synchronizer:            synchronizer,
		discoverer:              baselines.NewService(baselines.Dependencies{Logger: logger}),
		runner:                  runner,
		generationConfiguration: configuration.Generation.Sanitize(),
	}, nil
}

// Sync brings the working copy onto the requested branch and records the
// resulting state for subsequent operations.
func (session *Session) Sync(executionContext context.Context, branchName string) (reposync.RepositoryState, error) {
	session.stateGuard.Lock()
	defer session.stateGuard.Unlock()

	repositoryState, syncError := session.synchronizer.Sync(executionContext, branchName)
	if syncError != nil {
		return reposync.RepositoryState{}, syncError
	}

	session.repositoryState = repositoryState
	session.stateSeeded = true
	session.logger.Info(workspaceSynchronizedMessageConstant,
		zap.String(branchFieldNameConstant, repositoryState.CurrentBranch),
		zap.String(localPathFieldNameConstant, repositoryState.LocalPath),
	)
	return repositoryState, nil
}

// Discover lists the baselines available in the current working copy.
func (session *Session) Discover(executionContext context.Context) ([]baselines.Descriptor, error) {
	session.stateGuard.Lock()
	defer session.stateGuard.Unlock()

	repositoryState, stateError := session.currentStateLocked(executionContext)
	if stateError != nil {
		return nil, stateError
	}
	return session.discoverer.Discover(executionContext, repositoryState)
}

// Generate resolves the requested baseline, builds the generator invocation,
// and runs it to completion inside the working copy.
func (session *Session) Generate(executionContext context.Context, request GenerateRequest) (GenerateOutcome, error) {
	session.stateGuard.Lock()
	defer session.stateGuard.Unlock()

	invocation, descriptor, buildError := session.buildInvocationLocked(executionContext, request)
	if buildError != nil {
		return GenerateOutcome{}, buildError
	}

	executionResult, runError := session.runner.Run(executionContext, invocation, descriptor.ID)
	if runError != nil {
		return GenerateOutcome{}, runError
	}

	return GenerateOutcome{
		Invocation: invocation,
		Result:     executionResult,
		Summary:    generation.Summarize(executionResult),
		Inventory:  generation.CategorizeArtifacts(executionResult.ProducedFiles),
	}, nil
}

// Preview resolves the requested baseline and returns the invocation that
// Generate would execute, without launching the generator.
func (session *Session) Preview(executionContext context.Context, request GenerateRequest) (generation.Invocation, error) {
	session.stateGuard.Lock()
	defer session.stateGuard.Unlock()

	invocation, _, buildError := session.buildInvocationLocked(executionContext, request)
	return invocation, buildError
}

// Inventory reports the artifacts currently on disk for a baseline without
// running the generator.
func (session *Session) Inventory(executionContext context.Context, baselineID string) (ArtifactReport, error) {
	session.stateGuard.Lock()
	defer session.stateGuard.Unlock()

	trimmedBaselineID := strings.TrimSpace(baselineID)
	if len(trimmedBaselineID) == 0 {
		return ArtifactReport{}, generation.ErrBaselineIDRequired
	}

	repositoryState, stateError := session.currentStateLocked(executionContext)
	if stateError != nil {
		return ArtifactReport{}, stateError
	}
	if !repositoryState.Cloned {
		return ArtifactReport{}, baselines.NotSyncedError{LocalPath: repositoryState.LocalPath}
	}

	producedFiles := generation.CollectProducedFiles(repositoryState.LocalPath, trimmedBaselineID)
	return ArtifactReport{
		BaselineID:    trimmedBaselineID,
		BuildPath:     generation.BuildDirectoryPath(repositoryState.LocalPath, trimmedBaselineID),
		ProducedFiles: producedFiles,
		Inventory:     generation.CategorizeArtifacts(producedFiles),
	}, nil
}

func (session *Session) buildInvocationLocked(executionContext context.Context, request GenerateRequest) (generation.Invocation, baselines.Descriptor, error) {
	repositoryState, stateError := session.currentStateLocked(executionContext)
	if stateError != nil {
		return generation.Invocation{}, baselines.Descriptor{}, stateError
	}

	descriptor, descriptorError := session.resolveDescriptorLocked(executionContext, repositoryState, request.BaselineID)
	if descriptorError != nil {
		return generation.Invocation{}, baselines.Descriptor{}, descriptorError
	}

	invocation, invocationError := generation.BuildInvocation(descriptor, request.Options, repositoryState, session.generationConfiguration.Tool)
	if invocationError != nil {
		return generation.Invocation{}, baselines.Descriptor{}, invocationError
	}
	return invocation, descriptor, nil
}

func (session *Session) currentStateLocked(executionContext context.Context) (reposync.RepositoryState, error) {
	if session.stateSeeded {
		return session.repositoryState, nil
	}

	repositoryState, inspectError := session.synchronizer.Inspect(executionContext)
	if inspectError != nil {
		return reposync.RepositoryState{}, inspectError
	}

	session.repositoryState = repositoryState
	session.stateSeeded = true
	return repositoryState, nil
}

func (session *Session) resolveDescriptorLocked(executionContext context.Context, repositoryState reposync.RepositoryState, baselineID string) (baselines.Descriptor, error) {
	trimmedBaselineID := strings.TrimSpace(baselineID)
	if len(trimmedBaselineID) == 0 {
		return baselines.Descriptor{}, generation.ErrBaselineIDRequired
	}

	descriptors, discoveryError := session.discoverer.Discover(executionContext, repositoryState)
	if discoveryError != nil {
		return baselines.Descriptor{}, discoveryError
	}
	for _, descriptor := range descriptors {
		if descriptor.ID == trimmedBaselineID {
			return descriptor, nil
		}
	}
	return baselines.Descriptor{}, UnknownBaselineError{BaselineID: trimmedBaselineID}
}
