// Package pathutils normalizes filesystem paths supplied through configuration.
package pathutils

import (
	"errors"
	"path/filepath"
	"strings"
)

const workspacePathRequiredMessageConstant = "workspace path must not be empty"

// ErrWorkspacePathRequired indicates a blank workspace path was supplied.
var ErrWorkspacePathRequired = errors.New(workspacePathRequiredMessageConstant)

// WorkspacePathResolver converts configured workspace paths into absolute filesystem paths.
type WorkspacePathResolver struct {
	homeExpander *HomeExpander
}

// NewWorkspacePathResolver constructs a WorkspacePathResolver with default home expansion.
func NewWorkspacePathResolver() *WorkspacePathResolver {
	return NewWorkspacePathResolverWithExpander(nil)
}

// NewWorkspacePathResolverWithExpander constructs a WorkspacePathResolver using the provided expander.
func NewWorkspacePathResolverWithExpander(homeExpander *HomeExpander) *WorkspacePathResolver {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &WorkspacePathResolver{homeExpander: resolvedExpander}
}

// Resolve trims whitespace, expands the user's home directory, and absolutizes the path.
func (resolver *WorkspacePathResolver) Resolve(candidatePath string) (string, error) {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return "", ErrWorkspacePathRequired
	}

	expandedPath := resolver.homeExpander.Expand(trimmedPath)
	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return "", absoluteError
	}

	return filepath.Clean(absolutePath), nil
}
