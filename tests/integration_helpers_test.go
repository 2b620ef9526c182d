package tests

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationBinaryNameConstant           = "mscpgen"
	integrationBuildTimeout                 = 2 * time.Minute
	integrationEnvironmentEntryTemplate     = "%s=%s"
	integrationHomeEnvironmentNameConstant  = "HOME"
	integrationPathEnvironmentNameConstant  = "PATH"
	integrationStubGitScriptContentConstant = "#!/bin/sh\n" +
		"case \"$1\" in\n" +
		"  --version)\n" +
		"    echo \"git version 2.44.0\"\n" +
		"    ;;\n" +
		"  rev-parse)\n" +
		"    case \"$2\" in\n" +
		"      --is-inside-work-tree)\n" +
		"        echo \"true\"\n" +
		"        ;;\n" +
		"      --abbrev-ref)\n" +
		"        echo \"main\"\n" +
		"        ;;\n" +
		"    esac\n" +
		"    ;;\n" +
		"esac\n" +
		"exit 0\n"
)

func integrationRepositoryRoot(testInstance *testing.T) string {
	testInstance.Helper()

	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)
	return filepath.Dir(currentWorkingDirectory)
}

func buildIntegrationBinary(testInstance *testing.T, repositoryRoot string) string {
	testInstance.Helper()

	binaryPath := filepath.Join(testInstance.TempDir(), integrationBinaryNameConstant)

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationBuildTimeout)
	defer cancelFunction()

	buildCommand := exec.CommandContext(executionContext, "go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = repositoryRoot
	outputBytes, buildError := buildCommand.CombinedOutput()
	require.NoError(testInstance, buildError, string(outputBytes))

	return binaryPath
}

func runBinaryIntegrationCommand(testInstance *testing.T, binaryPath string, workingDirectory string, environmentOverrides map[string]string, timeout time.Duration, arguments []string) (string, error) {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), timeout)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = workingDirectory

	environment := append([]string{}, os.Environ()...)
	for environmentKey, environmentValue := range environmentOverrides {
		environment = append(environment, fmt.Sprintf(integrationEnvironmentEntryTemplate, environmentKey, environmentValue))
	}
	command.Env = environment

	outputBytes, runError := command.CombinedOutput()
	return string(outputBytes), runError
}

func writeIntegrationFile(testInstance *testing.T, filePath string, fileContent string) {
	testInstance.Helper()

	require.NoError(testInstance, os.MkdirAll(filepath.Dir(filePath), 0o755))
	require.NoError(testInstance, os.WriteFile(filePath, []byte(fileContent), 0o644))
}

func installStubGit(testInstance *testing.T) string {
	testInstance.Helper()

	stubDirectory := testInstance.TempDir()
	stubGitPath := filepath.Join(stubDirectory, "git")
	require.NoError(testInstance, os.WriteFile(stubGitPath, []byte(integrationStubGitScriptContentConstant), 0o755))

	return stubDirectory + string(os.PathListSeparator) + os.Getenv(integrationPathEnvironmentNameConstant)
}
