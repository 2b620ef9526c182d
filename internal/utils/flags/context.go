package flags

import "github.com/spf13/cobra"

const (
	// BranchFlagName exposes the shared branch selection flag name.
	BranchFlagName = "branch"
	// BranchFlagUsage describes the shared branch selection flag purpose.
	BranchFlagUsage = "Branch of the compliance repository to target"
	// BaselineFlagName exposes the shared baseline selection flag name.
	BaselineFlagName = "baseline"
	// BaselineFlagUsage describes the shared baseline selection flag purpose.
	BaselineFlagUsage = "Baseline identifier to operate on"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview the generation command without executing it"
	// RefreshFlagName exposes the shared catalog refresh flag name.
	RefreshFlagName = "refresh"
	// RefreshFlagUsage describes the shared catalog refresh flag purpose.
	RefreshFlagUsage = "Bypass the cached branch catalog and query the remote again"
)

// BranchFlagDefinition captures configuration for branch selection flags.
type BranchFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// BranchFlagValues stores branch selection flag values.
type BranchFlagValues struct {
	Name string
}

// BindBranchFlags attaches branch selection flags to the provided command.
func BindBranchFlags(command *cobra.Command, defaults BranchFlagValues, definition BranchFlagDefinition) *BranchFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &values
	}

	command.Flags().StringVar(&values.Name, definition.Name, defaults.Name, definition.Usage)
	return &values
}

// BaselineFlagDefinition captures configuration for baseline selection flags.
type BaselineFlagDefinition struct {
	Name    string
	Usage   string
	Enabled bool
}

// BaselineFlagValues stores baseline selection flag values.
type BaselineFlagValues struct {
	ID string
}

// BindBaselineFlags attaches baseline selection flags to the provided command.
func BindBaselineFlags(command *cobra.Command, defaults BaselineFlagValues, definition BaselineFlagDefinition) *BaselineFlagValues {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled || len(definition.Name) == 0 {
		return &values
	}

	command.Flags().StringVar(&values.ID, definition.Name, defaults.ID, definition.Usage)
	return &values
}
