package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/headmin/mscpgen/internal/execshell"
	"github.com/headmin/mscpgen/internal/shared"
)

const (
	remoteURLRequiredMessageConstant            = "remote repository URL must be provided"
	gitExecutorMissingMessageConstant           = "git executor not configured"
	networkFailureTemplateConstant              = "unable to list branches on %s: %v"
	parseFailureTemplateConstant                = "malformed remote reference listing (%s): %q"
	parseReasonMissingSeparatorConstant         = "missing tab separator"
	parseReasonMissingCommitHashConstant        = "missing commit hash"
	parseReasonUnexpectedReferenceConstant      = "reference outside refs/heads"
	parseReasonMissingBranchNameConstant        = "missing branch name"
	gitListRemoteSubcommandConstant             = "ls-remote"
	gitHeadsFlagConstant                        = "--heads"
	remoteHeadReferencePrefixConstant           = "refs/heads/"
	branchCatalogCacheKeyConstant               = "branch_catalog"
	gitTerminalPromptEnvironmentNameConstant    = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableConstant = "0"
	catalogCacheHitMessageConstant              = "branch catalog served from session cache"
	catalogRefreshedMessageConstant             = "branch catalog refreshed from remote"
	branchCountLogFieldConstant                 = "branch_count"
)

const sessionCacheCleanupDisabledConstant = time.Duration(0)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// ErrRemoteURLRequired indicates the catalog configuration lacked a remote repository URL.
var ErrRemoteURLRequired = errors.New(remoteURLRequiredMessageConstant)

// NetworkError reports that the remote branch listing could not be retrieved.
type NetworkError struct {
	RemoteURL string
	Cause     error
}

// Error describes the failed remote query.
func (networkError NetworkError) Error() string {
	return fmt.Sprintf(networkFailureTemplateConstant, networkError.RemoteURL, networkError.Cause)
}

// Unwrap exposes the underlying execution failure.
func (networkError NetworkError) Unwrap() error {
	return networkError.Cause
}

// ParseError reports a remote reference line that does not follow the expected layout.
type ParseError struct {
	Line   string
	Reason string
}

// Error describes the malformed listing line.
func (parseError ParseError) Error() string {
	return fmt.Sprintf(parseFailureTemplateConstant, parseError.Reason, parseError.Line)
}

// Dependencies enumerates external collaborators required by the catalog service.
type Dependencies struct {
	Logger      *zap.Logger
	GitExecutor shared.GitExecutor
}

// Service lists the selectable branches of the compliance repository.
type Service struct {
	logger        *zap.Logger
	gitExecutor   shared.GitExecutor
	configuration CommandConfiguration
	sessionCache  *cache.Cache
}

// NewService validates dependencies and prepares a branch catalog service.
func NewService(dependencies Dependencies, configuration CommandConfiguration) (*Service, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	sanitizedConfiguration := configuration.Sanitize()
	if len(sanitizedConfiguration.RemoteURL) == 0 {
		return nil, ErrRemoteURLRequired
	}
	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}
	cacheTTL := sanitizedConfiguration.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = cache.NoExpiration
	}
	return &Service{
		logger:        resolvedLogger,
		gitExecutor:   dependencies.GitExecutor,
		configuration: sanitizedConfiguration,
		sessionCache:  cache.New(cacheTTL, sessionCacheCleanupDisabledConstant),
	}, nil
}

// ListBranches returns the cached branch catalog, querying the remote on first use.
func (service *Service) ListBranches(executionContext context.Context) ([]BranchRef, error) {
	if cachedValue, cacheHit := service.sessionCache.Get(branchCatalogCacheKeyConstant); cacheHit {
		if branchRefs, converted := cachedValue.([]BranchRef); converted {
			service.logger.Debug(catalogCacheHitMessageConstant, zap.Int(branchCountLogFieldConstant, len(branchRefs)))
			return copyBranchRefs(branchRefs), nil
		}
	}
	return service.RefreshBranches(executionContext)
}

// RefreshBranches bypasses the session cache and queries the remote catalog again.
func (service *Service) RefreshBranches(executionContext context.Context) ([]BranchRef, error) {
	branchRefs, queryError := service.queryRemoteHeads(executionContext)
	if queryError != nil {
		return nil, queryError
	}
	service.sessionCache.Set(branchCatalogCacheKeyConstant, copyBranchRefs(branchRefs), cache.DefaultExpiration)
	service.logger.Debug(catalogRefreshedMessageConstant, zap.Int(branchCountLogFieldConstant, len(branchRefs)))
	return branchRefs, nil
}

func (service *Service) queryRemoteHeads(executionContext context.Context) ([]BranchRef, error) {
	queryContext := executionContext
	if service.configuration.ListTimeout > 0 {
		var cancelQuery context.CancelFunc
		queryContext, cancelQuery = context.WithTimeout(executionContext, service.configuration.ListTimeout)
		defer cancelQuery()
	}
	executionResult, executionError := service.executeGit(queryContext, execshell.CommandDetails{
		Arguments: []string{gitListRemoteSubcommandConstant, gitHeadsFlagConstant, service.configuration.RemoteURL},
	})
	if executionError != nil {
		return nil, NetworkError{RemoteURL: service.configuration.RemoteURL, Cause: executionError}
	}
	branchRefs, parseError := parseRemoteHeads(executionResult.StandardOutput)
	if parseError != nil {
		return nil, parseError
	}
	SortBranchRefs(branchRefs)
	return branchRefs, nil
}

func (service *Service) executeGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	if details.EnvironmentVariables == nil {
		details.EnvironmentVariables = map[string]string{}
	}
	details.EnvironmentVariables[gitTerminalPromptEnvironmentNameConstant] = gitTerminalPromptEnvironmentDisableConstant
	return service.gitExecutor.ExecuteGit(executionContext, details)
}

func parseRemoteHeads(listingOutput string) ([]BranchRef, error) {
	branchRefs := []BranchRef{}
	for _, rawLine := range strings.Split(listingOutput, "\n") {
		listingLine := strings.TrimRight(rawLine, "\r")
		if len(strings.TrimSpace(listingLine)) == 0 {
			continue
		}
		separatorIndex := strings.IndexByte(listingLine, '\t')
		if separatorIndex < 0 {
			return nil, ParseError{Line: listingLine, Reason: parseReasonMissingSeparatorConstant}
		}
		commitHash := strings.TrimSpace(listingLine[:separatorIndex])
		referenceName := strings.TrimSpace(listingLine[separatorIndex+1:])
		if len(commitHash) == 0 {
			return nil, ParseError{Line: listingLine, Reason: parseReasonMissingCommitHashConstant}
		}
		if !strings.HasPrefix(referenceName, remoteHeadReferencePrefixConstant) {
			return nil, ParseError{Line: listingLine, Reason: parseReasonUnexpectedReferenceConstant}
		}
		branchName := strings.TrimPrefix(referenceName, remoteHeadReferencePrefixConstant)
		if len(branchName) == 0 {
			return nil, ParseError{Line: listingLine, Reason: parseReasonMissingBranchNameConstant}
		}
		classification, catalogMember := ClassifyBranchName(branchName)
		if !catalogMember {
			continue
		}
		branchRefs = append(branchRefs, BranchRef{
			Name:         branchName,
			Family:       classification.Family,
			Version:      classification.Version,
			DisplayLabel: classification.DisplayLabel,
		})
	}
	return branchRefs, nil
}

func copyBranchRefs(branchRefs []BranchRef) []BranchRef {
	copiedRefs := make([]BranchRef, len(branchRefs))
	copy(copiedRefs, branchRefs)
	return copiedRefs
}
