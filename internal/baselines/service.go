package baselines

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/headmin/mscpgen/internal/catalog"
	"github.com/headmin/mscpgen/internal/reposync"
)

const (
	notSyncedTemplateConstant                  = "repository at %s is not synchronized; run sync before listing baselines"
	discoveryFailureTemplateConstant           = "unable to discover baselines under %s: %s"
	discoveryCauseTemplateConstant             = "unable to discover baselines under %s: %s: %v"
	discoveryReasonDirectoryUnreadableConstant = "baselines directory is not readable"
	discoveryReasonNoDocumentsConstant         = "no parsable baseline documents"
	baselinesDirectoryNameConstant             = "baselines"
	baselineFileExtensionConstant              = ".yaml"
	unreadableDocumentWarningConstant          = "skipping unreadable baseline document"
	malformedDocumentWarningConstant           = "skipping malformed baseline document"
	emptyProfileWarningConstant                = "skipping baseline document without profile sections"
	baselinesDiscoveredMessageConstant         = "baseline documents discovered"
	baselineFileLogFieldConstant               = "baseline_file"
	baselinesDirectoryLogFieldConstant         = "baselines_directory"
	baselineCountLogFieldConstant              = "baseline_count"
	discoveredBranchLogFieldConstant           = "branch"
)

// NotSyncedError reports that discovery ran against a working copy that has
// never been cloned.
type NotSyncedError struct {
	LocalPath string
}

// Error describes the unsynchronized working copy.
func (notSyncedError NotSyncedError) Error() string {
	return fmt.Sprintf(notSyncedTemplateConstant, notSyncedError.LocalPath)
}

// DiscoveryError reports that the working copy carried no usable baseline documents.
type DiscoveryError struct {
	Path   string
	Reason string
	Cause  error
}

// Error describes the failed discovery.
func (discoveryError DiscoveryError) Error() string {
	if discoveryError.Cause != nil {
		return fmt.Sprintf(discoveryCauseTemplateConstant, discoveryError.Path, discoveryError.Reason, discoveryError.Cause)
	}
	return fmt.Sprintf(discoveryFailureTemplateConstant, discoveryError.Path, discoveryError.Reason)
}

// Unwrap exposes the underlying filesystem failure when one exists.
func (discoveryError DiscoveryError) Unwrap() error {
	return discoveryError.Cause
}

// Dependencies enumerates external collaborators used during discovery.
type Dependencies struct {
	Logger *zap.Logger
}

// Service discovers baseline documents inside a synchronized working copy.
type Service struct {
	logger *zap.Logger
}

// NewService prepares a baseline discovery service.
func NewService(dependencies Dependencies) *Service {
	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}
	return &Service{logger: resolvedLogger}
}

// Discover walks the working copy's baselines directory and returns a
// descriptor for every parsable baseline document, ordered by identifier.
// Documents that cannot be parsed are logged and skipped rather than failing
// the whole listing.
func (service *Service) Discover(executionContext context.Context, repositoryState reposync.RepositoryState) ([]Descriptor, error) {
	if !repositoryState.Cloned {
		return nil, NotSyncedError{LocalPath: repositoryState.LocalPath}
	}
	if contextError := executionContext.Err(); contextError != nil {
		return nil, contextError
	}
	baselinesDirectory := filepath.Join(repositoryState.LocalPath, baselinesDirectoryNameConstant)
	directoryEntries, readDirectoryError := os.ReadDir(baselinesDirectory)
	if readDirectoryError != nil {
		return nil, DiscoveryError{Path: baselinesDirectory, Reason: discoveryReasonDirectoryUnreadableConstant, Cause: readDirectoryError}
	}
	platformFamily := platformFamilyForBranch(repositoryState.CurrentBranch)
	descriptors := make([]Descriptor, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		if directoryEntry.IsDir() || !strings.HasSuffix(directoryEntry.Name(), baselineFileExtensionConstant) {
			continue
		}
		baselineFilePath := filepath.Join(baselinesDirectory, directoryEntry.Name())
		documentContent, readFileError := os.ReadFile(baselineFilePath)
		if readFileError != nil {
			service.logger.Warn(unreadableDocumentWarningConstant,
				zap.String(baselineFileLogFieldConstant, baselineFilePath),
				zap.Error(readFileError))
			continue
		}
		var document baselineDocument
		if unmarshalError := yaml.Unmarshal(documentContent, &document); unmarshalError != nil {
			service.logger.Warn(malformedDocumentWarningConstant,
				zap.String(baselineFileLogFieldConstant, baselineFilePath),
				zap.Error(unmarshalError))
			continue
		}
		if len(document.Profile) == 0 {
			service.logger.Warn(emptyProfileWarningConstant,
				zap.String(baselineFileLogFieldConstant, baselineFilePath))
			continue
		}
		baselineIdentifier := strings.TrimSuffix(directoryEntry.Name(), baselineFileExtensionConstant)
		descriptors = append(descriptors, Descriptor{
			ID:             baselineIdentifier,
			DisplayName:    DisplayNameForBaselineID(baselineIdentifier),
			FilePath:       baselineFilePath,
			PlatformFamily: platformFamily,
			Title:          strings.TrimSpace(document.Title),
			Description:    strings.TrimSpace(document.Description),
		})
	}
	if len(descriptors) == 0 {
		return nil, DiscoveryError{Path: baselinesDirectory, Reason: discoveryReasonNoDocumentsConstant}
	}
	sort.Slice(descriptors, func(firstIndex int, secondIndex int) bool {
		return descriptors[firstIndex].ID < descriptors[secondIndex].ID
	})
	service.logger.Debug(baselinesDiscoveredMessageConstant,
		zap.String(baselinesDirectoryLogFieldConstant, baselinesDirectory),
		zap.String(discoveredBranchLogFieldConstant, repositoryState.CurrentBranch),
		zap.Int(baselineCountLogFieldConstant, len(descriptors)))
	return descriptors, nil
}

func platformFamilyForBranch(branchName string) catalog.PlatformFamily {
	classification, catalogMember := catalog.ClassifyBranchName(branchName)
	if !catalogMember {
		return catalog.PlatformFamilyUnknown
	}
	return classification.Family
}
