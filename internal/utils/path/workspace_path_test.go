package pathutils_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/headmin/mscpgen/internal/utils/path"
)

const testHomeDirectoryConstant = "/home/analyst"

func TestWorkspacePathResolverResolve(testInstance *testing.T) {
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return testHomeDirectoryConstant, nil
	})
	resolver := pathutils.NewWorkspacePathResolverWithExpander(homeExpander)

	testCases := []struct {
		name          string
		candidatePath string
		expectedPath  string
		expectError   error
	}{
		{
			name:          "expands_home_prefix",
			candidatePath: "~/macos_security",
			expectedPath:  filepath.Join(testHomeDirectoryConstant, "macos_security"),
		},
		{
			name:          "keeps_absolute_path",
			candidatePath: "/var/lib/macos_security",
			expectedPath:  "/var/lib/macos_security",
		},
		{
			name:          "trims_surrounding_whitespace",
			candidatePath: "  /var/lib/macos_security  ",
			expectedPath:  "/var/lib/macos_security",
		},
		{
			name:          "rejects_blank_path",
			candidatePath: "   ",
			expectError:   pathutils.ErrWorkspacePathRequired,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolvedPath, resolveError := resolver.Resolve(testCase.candidatePath)
			if testCase.expectError != nil {
				require.ErrorIs(testInstance, resolveError, testCase.expectError)
				return
			}

			require.NoError(testInstance, resolveError)
			require.Equal(testInstance, testCase.expectedPath, resolvedPath)
		})
	}
}

func TestWorkspacePathResolverRelativePathsBecomeAbsolute(testInstance *testing.T) {
	resolver := pathutils.NewWorkspacePathResolver()

	resolvedPath, resolveError := resolver.Resolve("macos_security")
	require.NoError(testInstance, resolveError)
	require.True(testInstance, filepath.IsAbs(resolvedPath))
}
