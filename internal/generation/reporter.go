package generation

import (
	"fmt"
	"strings"
	"time"
)

const (
	successSummaryTemplateConstant    = "generation completed in %s with %d produced files"
	failureSummaryTemplateConstant    = "generation exited with code %d: %s"
	missingDiagnosticsMessageConstant = "no diagnostic output"
	mobileConfigExtensionConstant     = ".mobileconfig"
	complianceScriptSuffixConstant    = "_compliance.sh"
	declarativeDirectoryNameConstant  = "ddm"
	producedPathSeparatorConstant     = "/"
)

// Summary condenses one generator run for presentation.
type Summary struct {
	Succeeded bool
	FileCount int
	Message   string
}

// ArtifactInventory classifies produced files into the artifact classes the
// generator emits.
type ArtifactInventory struct {
	ProfileCount            int
	HasComplianceScript     bool
	HasDeclarativeArtifacts bool
}

// Summarize condenses an execution result. A non-zero exit yields a failed
// summary, never an error.
func Summarize(executionResult ExecutionResult) Summary {
	if executionResult.ExitCode == 0 {
		return Summary{
			Succeeded: true,
			FileCount: len(executionResult.ProducedFiles),
			Message: fmt.Sprintf(successSummaryTemplateConstant,
				executionResult.Duration.Round(time.Millisecond),
				len(executionResult.ProducedFiles)),
		}
	}
	return Summary{
		Succeeded: false,
		FileCount: len(executionResult.ProducedFiles),
		Message: fmt.Sprintf(failureSummaryTemplateConstant,
			executionResult.ExitCode,
			diagnosticHint(executionResult.StandardError)),
	}
}

// diagnosticHint surfaces the last non-blank standard error line, which for
// generator tracebacks is the exception itself.
func diagnosticHint(standardError string) string {
	errorLines := strings.Split(standardError, "\n")
	for lineIndex := len(errorLines) - 1; lineIndex >= 0; lineIndex-- {
		trimmedLine := strings.TrimSpace(errorLines[lineIndex])
		if len(trimmedLine) > 0 {
			return trimmedLine
		}
	}
	return missingDiagnosticsMessageConstant
}

// CategorizeArtifacts groups produced files by artifact class.
func CategorizeArtifacts(producedFiles []string) ArtifactInventory {
	inventory := ArtifactInventory{}
	for _, producedFile := range producedFiles {
		if strings.HasSuffix(producedFile, mobileConfigExtensionConstant) {
			inventory.ProfileCount++
		}
		if strings.HasSuffix(producedFile, complianceScriptSuffixConstant) {
			inventory.HasComplianceScript = true
		}
		if containsDirectorySegment(producedFile, declarativeDirectoryNameConstant) {
			inventory.HasDeclarativeArtifacts = true
		}
	}
	return inventory
}

func containsDirectorySegment(producedFile string, directoryName string) bool {
	pathSegments := strings.Split(producedFile, producedPathSeparatorConstant)
	for _, pathSegment := range pathSegments[:len(pathSegments)-1] {
		if pathSegment == directoryName {
			return true
		}
	}
	return false
}
