package generation

import (
	"path/filepath"
	"strings"

	"github.com/headmin/mscpgen/internal/baselines"
	"github.com/headmin/mscpgen/internal/reposync"
)

const (
	invalidOptionsMessageConstant    = "no artifact classes selected; enable at least one of profiles, scripts, ddm, or scap"
	profilesArgumentConstant         = "-p"
	scriptsArgumentConstant          = "-s"
	ddmArgumentConstant              = "-D"
	scapArgumentConstant             = "-g"
	commandLineSeparatorConstant     = " "
	parentDirectoryReferenceConstant = ".."
)

// InvalidOptionsError reports a generation request with every artifact class disabled.
type InvalidOptionsError struct{}

// Error describes the empty artifact selection.
func (InvalidOptionsError) Error() string {
	return invalidOptionsMessageConstant
}

// Invocation describes a single generator command without executing it.
type Invocation struct {
	Executable       string
	Arguments        []string
	WorkingDirectory string
}

// CommandLine renders the invocation as one shell-style line for previews.
func (invocation Invocation) CommandLine() string {
	commandParts := append([]string{invocation.Executable}, invocation.Arguments...)
	return strings.Join(commandParts, commandLineSeparatorConstant)
}

// BuildInvocation assembles the generator command for one baseline without any
// I/O. The baseline document path comes first, repository-relative when
// expressible, followed by the enabled artifact flags in fixed order, so
// identical inputs always produce an identical invocation.
func BuildInvocation(baseline baselines.Descriptor, generationOptions Options, repositoryState reposync.RepositoryState, generatorToolPath string) (Invocation, error) {
	if !generationOptions.Any() {
		return Invocation{}, InvalidOptionsError{}
	}

	toolPath := strings.TrimSpace(generatorToolPath)
	if len(toolPath) == 0 {
		toolPath = defaultGeneratorToolConstant
	}
	if !filepath.IsAbs(toolPath) {
		toolPath = filepath.Join(repositoryState.LocalPath, toolPath)
	}

	arguments := []string{baselineDocumentArgument(baseline.FilePath, repositoryState.LocalPath)}
	if generationOptions.Profiles {
		arguments = append(arguments, profilesArgumentConstant)
	}
	if generationOptions.Scripts {
		arguments = append(arguments, scriptsArgumentConstant)
	}
	if generationOptions.DDM {
		arguments = append(arguments, ddmArgumentConstant)
	}
	if generationOptions.SCAP {
		arguments = append(arguments, scapArgumentConstant)
	}

	return Invocation{
		Executable:       toolPath,
		Arguments:        arguments,
		WorkingDirectory: repositoryState.LocalPath,
	}, nil
}

func baselineDocumentArgument(baselineFilePath string, repositoryRoot string) string {
	relativePath, relativeError := filepath.Rel(repositoryRoot, baselineFilePath)
	if relativeError != nil {
		return baselineFilePath
	}
	if relativePath == parentDirectoryReferenceConstant || strings.HasPrefix(relativePath, parentDirectoryReferenceConstant+string(filepath.Separator)) {
		return baselineFilePath
	}
	return relativePath
}
