package reposync

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/headmin/mscpgen/internal/execshell"
	"github.com/headmin/mscpgen/internal/shared"
	pathutils "github.com/headmin/mscpgen/internal/utils/path"
)

const (
	branchNameRequiredMessageConstant    = "branch name must be provided"
	gitExecutorMissingMessageConstant    = "git executor not configured"
	remoteURLRequiredMessageConstant     = "remote repository URL must be provided"
	localPathRequiredMessageConstant     = "local repository path must be provided"
	localPathResolutionTemplateConstant  = "unable to resolve local repository path: %w"
	currentBranchFailureTemplateConstant = "unable to determine current branch: %w"
	gitUnavailableTemplateConstant       = "git is not available: %v"
	cloneFailureTemplateConstant         = "unable to clone branch %q from %s: %v"
	checkoutFailureTemplateConstant      = "unable to synchronize branch %q (%s): %v"

	gitVersionFlagConstant                      = "--version"
	gitRevParseSubcommandConstant               = "rev-parse"
	gitInsideWorkTreeFlagConstant               = "--is-inside-work-tree"
	gitAbbreviatedReferenceFlagConstant         = "--abbrev-ref"
	gitHeadReferenceConstant                    = "HEAD"
	gitCloneSubcommandConstant                  = "clone"
	gitDepthFlagConstant                        = "--depth"
	gitShallowDepthValueConstant                = "1"
	gitBranchFlagConstant                       = "--branch"
	gitRemoteSubcommandConstant                 = "remote"
	gitSetBranchesSubcommandConstant            = "set-branches"
	gitAddFlagConstant                          = "--add"
	gitFetchSubcommandConstant                  = "fetch"
	gitCheckoutSubcommandConstant               = "checkout"
	gitPullSubcommandConstant                   = "pull"
	gitFastForwardOnlyFlagConstant              = "--ff-only"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	workTreeProbeExpectedOutputConstant         = "true"

	syncStepTrackBranchConstant   = "remote set-branches"
	syncStepFetchConstant         = "fetch"
	syncStepCheckoutConstant      = "checkout"
	syncStepFastForwardConstant   = "pull --ff-only"
	syncStepCurrentBranchConstant = "rev-parse"
)

// ErrBranchNameRequired indicates the requested branch name was empty.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRemoteURLRequired indicates the synchronizer configuration lacked a remote URL.
var ErrRemoteURLRequired = errors.New(remoteURLRequiredMessageConstant)

// ErrLocalPathRequired indicates the synchronizer configuration lacked a local path.
var ErrLocalPathRequired = errors.New(localPathRequiredMessageConstant)

// GitUnavailableError reports that the git executable could not be run at all.
type GitUnavailableError struct {
	Cause error
}

// Error describes the unavailable executable.
func (unavailableError GitUnavailableError) Error() string {
	return fmt.Sprintf(gitUnavailableTemplateConstant, unavailableError.Cause)
}

// Unwrap exposes the underlying probe failure.
func (unavailableError GitUnavailableError) Unwrap() error {
	return unavailableError.Cause
}

// CloneError reports a failed initial clone of the compliance repository.
type CloneError struct {
	RemoteURL string
	Branch    string
	Cause     error
}

// Error describes the failed clone.
func (cloneError CloneError) Error() string {
	return fmt.Sprintf(cloneFailureTemplateConstant, cloneError.Branch, cloneError.RemoteURL, cloneError.Cause)
}

// Unwrap exposes the underlying clone failure.
func (cloneError CloneError) Unwrap() error {
	return cloneError.Cause
}

// CheckoutError reports a failed branch switch or fast-forward update.
type CheckoutError struct {
	Branch string
	Step   string
	Cause  error
}

// Error describes the failed synchronization step.
func (checkoutError CheckoutError) Error() string {
	return fmt.Sprintf(checkoutFailureTemplateConstant, checkoutError.Branch, checkoutError.Step, checkoutError.Cause)
}

// Unwrap exposes the underlying step failure.
func (checkoutError CheckoutError) Unwrap() error {
	return checkoutError.Cause
}

// Dependencies enumerates external collaborators required for synchronization.
type Dependencies struct {
	GitExecutor shared.GitExecutor
}

// Service synchronizes the local working copy with requested branches.
type Service struct {
	gitExecutor   shared.GitExecutor
	configuration CommandConfiguration
}

// NewService validates dependencies and prepares a synchronizer.
func NewService(dependencies Dependencies, configuration CommandConfiguration) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	sanitizedConfiguration := configuration.Sanitize()
	if len(sanitizedConfiguration.RemoteURL) == 0 {
		return nil, ErrRemoteURLRequired
	}
	if len(sanitizedConfiguration.LocalPath) == 0 {
		return nil, ErrLocalPathRequired
	}
	resolvedLocalPath, resolutionError := pathutils.NewWorkspacePathResolver().Resolve(sanitizedConfiguration.LocalPath)
	if resolutionError != nil {
		return nil, fmt.Errorf(localPathResolutionTemplateConstant, resolutionError)
	}
	sanitizedConfiguration.LocalPath = resolvedLocalPath
	return &Service{gitExecutor: dependencies.GitExecutor, configuration: sanitizedConfiguration}, nil
}

// Sync ensures the working copy exists, tracks the requested branch, and
// matches the remote tip. The returned state reflects the working copy after
// the operation.
func (service *Service) Sync(executionContext context.Context, branchName string) (RepositoryState, error) {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return RepositoryState{}, ErrBranchNameRequired
	}
	if availabilityError := service.ensureGitAvailable(executionContext); availabilityError != nil {
		return RepositoryState{}, availabilityError
	}
	if !service.isWorkingCopy(executionContext) {
		if cloneError := service.cloneBranch(executionContext, trimmedBranchName); cloneError != nil {
			return RepositoryState{}, cloneError
		}
		return service.syncedState(trimmedBranchName), nil
	}
	currentBranch, currentBranchError := service.currentBranch(executionContext)
	if currentBranchError != nil {
		return RepositoryState{}, CheckoutError{Branch: trimmedBranchName, Step: syncStepCurrentBranchConstant, Cause: currentBranchError}
	}
	if currentBranch == trimmedBranchName {
		if updateError := service.fastForwardBranch(executionContext, trimmedBranchName); updateError != nil {
			return RepositoryState{}, updateError
		}
		return service.syncedState(trimmedBranchName), nil
	}
	if switchError := service.switchBranch(executionContext, trimmedBranchName); switchError != nil {
		return RepositoryState{}, switchError
	}
	return service.syncedState(trimmedBranchName), nil
}

// Inspect reports the current working-copy state without mutating the clone.
func (service *Service) Inspect(executionContext context.Context) (RepositoryState, error) {
	inspectedState := RepositoryState{LocalPath: service.configuration.LocalPath}
	if availabilityError := service.ensureGitAvailable(executionContext); availabilityError != nil {
		return inspectedState, availabilityError
	}
	if !service.isWorkingCopy(executionContext) {
		return inspectedState, nil
	}
	currentBranch, currentBranchError := service.currentBranch(executionContext)
	if currentBranchError != nil {
		return inspectedState, currentBranchError
	}
	inspectedState.CurrentBranch = currentBranch
	inspectedState.Cloned = true
	return inspectedState, nil
}

func (service *Service) syncedState(branchName string) RepositoryState {
	return RepositoryState{LocalPath: service.configuration.LocalPath, CurrentBranch: branchName, Cloned: true}
}

func (service *Service) ensureGitAvailable(executionContext context.Context) error {
	_, probeError := service.runGitStep(executionContext, service.configuration.CheckoutTimeout, execshell.CommandDetails{
		Arguments: []string{gitVersionFlagConstant},
	})
	if probeError != nil {
		return GitUnavailableError{Cause: probeError}
	}
	return nil
}

func (service *Service) isWorkingCopy(executionContext context.Context) bool {
	if _, statError := os.Stat(service.configuration.LocalPath); statError != nil {
		return false
	}
	executionResult, probeError := service.runGitStep(executionContext, service.configuration.CheckoutTimeout, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitInsideWorkTreeFlagConstant},
		WorkingDirectory: service.configuration.LocalPath,
	})
	if probeError != nil {
		return false
	}
	return strings.TrimSpace(executionResult.StandardOutput) == workTreeProbeExpectedOutputConstant
}

func (service *Service) currentBranch(executionContext context.Context) (string, error) {
	executionResult, branchError := service.runGitStep(executionContext, service.configuration.CheckoutTimeout, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbreviatedReferenceFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: service.configuration.LocalPath,
	})
	if branchError != nil {
		return "", fmt.Errorf(currentBranchFailureTemplateConstant, branchError)
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

func (service *Service) cloneBranch(executionContext context.Context, branchName string) error {
	_, cloneError := service.runGitStep(executionContext, service.configuration.CloneTimeout, execshell.CommandDetails{
		Arguments: []string{
			gitCloneSubcommandConstant,
			gitDepthFlagConstant, gitShallowDepthValueConstant,
			gitBranchFlagConstant, branchName,
			service.configuration.RemoteURL,
			service.configuration.LocalPath,
		},
	})
	if cloneError != nil {
		return CloneError{RemoteURL: service.configuration.RemoteURL, Branch: branchName, Cause: cloneError}
	}
	return nil
}

func (service *Service) fastForwardBranch(executionContext context.Context, branchName string) error {
	if fetchError := service.fetchBranch(executionContext, branchName); fetchError != nil {
		return fetchError
	}
	return service.pullFastForward(executionContext, branchName)
}

// switchBranch registers the branch with the shallow clone's fetch refspec
// before fetching so checkout can create the local tracking branch.
func (service *Service) switchBranch(executionContext context.Context, branchName string) error {
	if _, trackError := service.runGitStep(executionContext, service.configuration.CheckoutTimeout, execshell.CommandDetails{
		Arguments:        []string{gitRemoteSubcommandConstant, gitSetBranchesSubcommandConstant, gitAddFlagConstant, shared.OriginRemoteNameConstant, branchName},
		WorkingDirectory: service.configuration.LocalPath,
	}); trackError != nil {
		return CheckoutError{Branch: branchName, Step: syncStepTrackBranchConstant, Cause: trackError}
	}
	if fetchError := service.fetchBranch(executionContext, branchName); fetchError != nil {
		return fetchError
	}
	if _, checkoutError := service.runGitStep(executionContext, service.configuration.CheckoutTimeout, execshell.CommandDetails{
		Arguments:        []string{gitCheckoutSubcommandConstant, branchName},
		WorkingDirectory: service.configuration.LocalPath,
	}); checkoutError != nil {
		return CheckoutError{Branch: branchName, Step: syncStepCheckoutConstant, Cause: checkoutError}
	}
	return service.pullFastForward(executionContext, branchName)
}

func (service *Service) fetchBranch(executionContext context.Context, branchName string) error {
	if _, fetchError := service.runGitStep(executionContext, service.configuration.FetchTimeout, execshell.CommandDetails{
		Arguments:        []string{gitFetchSubcommandConstant, gitDepthFlagConstant, gitShallowDepthValueConstant, shared.OriginRemoteNameConstant, branchName},
		WorkingDirectory: service.configuration.LocalPath,
	}); fetchError != nil {
		return CheckoutError{Branch: branchName, Step: syncStepFetchConstant, Cause: fetchError}
	}
	return nil
}

func (service *Service) pullFastForward(executionContext context.Context, branchName string) error {
	if _, pullError := service.runGitStep(executionContext, service.configuration.PullTimeout, execshell.CommandDetails{
		Arguments:        []string{gitPullSubcommandConstant, gitFastForwardOnlyFlagConstant},
		WorkingDirectory: service.configuration.LocalPath,
	}); pullError != nil {
		return CheckoutError{Branch: branchName, Step: syncStepFastForwardConstant, Cause: pullError}
	}
	return nil
}

func (service *Service) runGitStep(executionContext context.Context, stepTimeout time.Duration, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	stepContext := executionContext
	if stepTimeout > 0 {
		var cancelStep context.CancelFunc
		stepContext, cancelStep = context.WithTimeout(executionContext, stepTimeout)
		defer cancelStep()
	}
	if details.EnvironmentVariables == nil {
		details.EnvironmentVariables = map[string]string{}
	}
	details.EnvironmentVariables[gitTerminalPromptEnvironmentNameConstant] = gitTerminalPromptEnvironmentDisableConstant
	return service.gitExecutor.ExecuteGit(stepContext, details)
}
