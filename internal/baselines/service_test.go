package baselines

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/headmin/mscpgen/internal/catalog"
	"github.com/headmin/mscpgen/internal/reposync"
)

const cisBenchmarkDocumentConstant = `title: "macOS 15.0: Security Configuration - CIS Benchmark Level 1"
description: |
  This guide describes the actions to take when securing a macOS 15.0 system against the CIS Benchmark Level 1 baseline.
profile:
  - section: "auditing"
    rules:
      - audit_acls_files_configure
      - audit_auditd_enabled
  - section: "icloud"
    rules:
      - icloud_addressbook_disable
`

const nistModerateDocumentConstant = `title: "macOS 15.0: Security Configuration - NIST SP 800-53 Rev 5 Moderate Impact"
description: |
  This guide describes the actions to take when securing a macOS 15.0 system against the NIST SP 800-53 Rev 5 Moderate Impact baseline.
profile:
  - section: "auditing"
    rules:
      - audit_acls_files_configure
`

const completeRuleDocumentConstant = `title: "macOS 15.0: Security Configuration - All Rules"
description: |
  This guide contains all of the rules carried by the compliance repository.
profile:
  - section: "all"
    rules:
      - audit_acls_files_configure
`

const missingProfileDocumentConstant = `title: "macOS 15.0: Security Configuration - Draft"
description: |
  This draft carries no profile sections yet.
`

const malformedDocumentConstant = "title: [unclosed\n"

func newWorkingCopy(t *testing.T) (string, string) {
	t.Helper()
	localPath := t.TempDir()
	baselinesDirectory := filepath.Join(localPath, baselinesDirectoryNameConstant)
	require.NoError(t, os.Mkdir(baselinesDirectory, 0o755))
	return localPath, baselinesDirectory
}

func writeBaselineDocument(t *testing.T, baselinesDirectory string, fileName string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(baselinesDirectory, fileName), []byte(content), 0o644))
}

func syncedRepositoryState(localPath string, branchName string) reposync.RepositoryState {
	return reposync.RepositoryState{LocalPath: localPath, CurrentBranch: branchName, Cloned: true}
}

func TestDiscoverRequiresSynchronizedWorkingCopy(t *testing.T) {
	service := NewService(Dependencies{})

	_, discoveryError := service.Discover(context.Background(), reposync.RepositoryState{LocalPath: "/var/empty/macos_security"})

	var notSyncedError NotSyncedError
	require.ErrorAs(t, discoveryError, &notSyncedError)
	require.Equal(t, "/var/empty/macos_security", notSyncedError.LocalPath)
}

func TestDiscoverHonorsCancelledContext(t *testing.T) {
	localPath, baselinesDirectory := newWorkingCopy(t)
	writeBaselineDocument(t, baselinesDirectory, "cis_lvl1.yaml", cisBenchmarkDocumentConstant)
	cancelledContext, cancelDiscovery := context.WithCancel(context.Background())
	cancelDiscovery()

	_, discoveryError := NewService(Dependencies{}).Discover(cancelledContext, syncedRepositoryState(localPath, "sequoia"))

	require.ErrorIs(t, discoveryError, context.Canceled)
}

func TestDiscoverReportsUnreadableBaselinesDirectory(t *testing.T) {
	localPath := t.TempDir()

	_, discoveryError := NewService(Dependencies{}).Discover(context.Background(), syncedRepositoryState(localPath, "sequoia"))

	var reportedError DiscoveryError
	require.ErrorAs(t, discoveryError, &reportedError)
	require.Equal(t, filepath.Join(localPath, baselinesDirectoryNameConstant), reportedError.Path)
	require.Equal(t, discoveryReasonDirectoryUnreadableConstant, reportedError.Reason)
	require.Error(t, reportedError.Cause)
}

func TestDiscoverParsesAndOrdersBaselineDocuments(t *testing.T) {
	localPath, baselinesDirectory := newWorkingCopy(t)
	writeBaselineDocument(t, baselinesDirectory, "cis_lvl1.yaml", cisBenchmarkDocumentConstant)
	writeBaselineDocument(t, baselinesDirectory, "800-53r5_moderate.yaml", nistModerateDocumentConstant)
	writeBaselineDocument(t, baselinesDirectory, "all_rules.yaml", completeRuleDocumentConstant)
	writeBaselineDocument(t, baselinesDirectory, "README.md", "not a baseline document\n")
	require.NoError(t, os.Mkdir(filepath.Join(baselinesDirectory, "archived"), 0o755))

	descriptors, discoveryError := NewService(Dependencies{}).Discover(context.Background(), syncedRepositoryState(localPath, "sequoia"))

	require.NoError(t, discoveryError)
	require.Len(t, descriptors, 3)

	discoveredIdentifiers := make([]string, 0, len(descriptors))
	for _, descriptor := range descriptors {
		discoveredIdentifiers = append(discoveredIdentifiers, descriptor.ID)
	}
	require.Equal(t, []string{"800-53r5_moderate", "all_rules", "cis_lvl1"}, discoveredIdentifiers)

	moderateDescriptor := descriptors[0]
	require.Equal(t, "NIST 800-53r5 Moderate", moderateDescriptor.DisplayName)
	require.Equal(t, filepath.Join(baselinesDirectory, "800-53r5_moderate.yaml"), moderateDescriptor.FilePath)
	require.Equal(t, catalog.PlatformFamilyMacOS, moderateDescriptor.PlatformFamily)
	require.Equal(t, "macOS 15.0: Security Configuration - NIST SP 800-53 Rev 5 Moderate Impact", moderateDescriptor.Title)
	require.Equal(t, "This guide describes the actions to take when securing a macOS 15.0 system against the NIST SP 800-53 Rev 5 Moderate Impact baseline.", moderateDescriptor.Description)
}

func TestDiscoverSkipsUnusableDocuments(t *testing.T) {
	localPath, baselinesDirectory := newWorkingCopy(t)
	writeBaselineDocument(t, baselinesDirectory, "cis_lvl1.yaml", cisBenchmarkDocumentConstant)
	writeBaselineDocument(t, baselinesDirectory, "draft.yaml", missingProfileDocumentConstant)
	writeBaselineDocument(t, baselinesDirectory, "broken.yaml", malformedDocumentConstant)
	observedCore, observedLogs := observer.New(zap.WarnLevel)

	descriptors, discoveryError := NewService(Dependencies{Logger: zap.New(observedCore)}).Discover(context.Background(), syncedRepositoryState(localPath, "sequoia"))

	require.NoError(t, discoveryError)
	require.Len(t, descriptors, 1)
	require.Equal(t, "cis_lvl1", descriptors[0].ID)

	warningMessages := make([]string, 0, observedLogs.Len())
	for _, observedEntry := range observedLogs.All() {
		warningMessages = append(warningMessages, observedEntry.Message)
	}
	require.ElementsMatch(t, []string{malformedDocumentWarningConstant, emptyProfileWarningConstant}, warningMessages)
}

func TestDiscoverReportsWhenNoDocumentParses(t *testing.T) {
	localPath, baselinesDirectory := newWorkingCopy(t)
	writeBaselineDocument(t, baselinesDirectory, "broken.yaml", malformedDocumentConstant)

	_, discoveryError := NewService(Dependencies{}).Discover(context.Background(), syncedRepositoryState(localPath, "sequoia"))

	var reportedError DiscoveryError
	require.ErrorAs(t, discoveryError, &reportedError)
	require.Equal(t, discoveryReasonNoDocumentsConstant, reportedError.Reason)
	require.NoError(t, reportedError.Cause)
}

func TestDiscoverDerivesPlatformFamilyFromBranch(t *testing.T) {
	testCases := []struct {
		name           string
		branchName     string
		expectedFamily catalog.PlatformFamily
	}{
		{
			name:           "ReleaseBranch",
			branchName:     "sequoia",
			expectedFamily: catalog.PlatformFamilyMacOS,
		},
		{
			name:           "MobileReleaseBranch",
			branchName:     "ios_17",
			expectedFamily: catalog.PlatformFamilyIOS,
		},
		{
			name:           "DevelopmentBranch",
			branchName:     "main",
			expectedFamily: catalog.PlatformFamilyUnknown,
		},
		{
			name:           "MissingBranch",
			branchName:     "",
			expectedFamily: catalog.PlatformFamilyUnknown,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			localPath, baselinesDirectory := newWorkingCopy(t)
			writeBaselineDocument(t, baselinesDirectory, "all_rules.yaml", completeRuleDocumentConstant)

			descriptors, discoveryError := NewService(Dependencies{}).Discover(context.Background(), syncedRepositoryState(localPath, testCase.branchName))

			require.NoError(t, discoveryError)
			require.Len(t, descriptors, 1)
			require.Equal(t, testCase.expectedFamily, descriptors[0].PlatformFamily)
		})
	}
}
