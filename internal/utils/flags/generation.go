// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import "github.com/spf13/cobra"

const (
	// ProfilesFlagName exposes the configuration profile artifact toggle name.
	ProfilesFlagName = "profiles"
	// ProfilesFlagUsage describes the configuration profile artifact toggle purpose.
	ProfilesFlagUsage = "Generate configuration profiles"
	// ScriptsFlagName exposes the compliance script artifact toggle name.
	ScriptsFlagName = "scripts"
	// ScriptsFlagUsage describes the compliance script artifact toggle purpose.
	ScriptsFlagUsage = "Generate the compliance script"
	// DDMFlagName exposes the declarative management artifact toggle name.
	DDMFlagName = "ddm"
	// DDMFlagUsage describes the declarative management artifact toggle purpose.
	DDMFlagUsage = "Generate declarative device management artifacts"
	// SCAPFlagName exposes the SCAP artifact toggle name.
	SCAPFlagName = "scap"
	// SCAPFlagUsage describes the SCAP artifact toggle purpose.
	SCAPFlagUsage = "Generate SCAP content"
)

// ArtifactToggleDefaults describes default enablement for generation artifact toggles.
type ArtifactToggleDefaults struct {
	Profiles bool
	Scripts  bool
	DDM      bool
	SCAP     bool
}

// ArtifactToggleValues stores parsed generation artifact toggle values.
type ArtifactToggleValues struct {
	Profiles bool
	Scripts  bool
	DDM      bool
	SCAP     bool
}

// BindArtifactToggleFlags attaches the yes/no artifact toggles to the provided command.
func BindArtifactToggleFlags(command *cobra.Command, defaults ArtifactToggleDefaults) *ArtifactToggleValues {
	values := ArtifactToggleValues{
		Profiles: defaults.Profiles,
		Scripts:  defaults.Scripts,
		DDM:      defaults.DDM,
		SCAP:     defaults.SCAP,
	}
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	AddToggleFlag(flagSet, &values.Profiles, ProfilesFlagName, "", defaults.Profiles, ProfilesFlagUsage)
	AddToggleFlag(flagSet, &values.Scripts, ScriptsFlagName, "", defaults.Scripts, ScriptsFlagUsage)
	AddToggleFlag(flagSet, &values.DDM, DDMFlagName, "", defaults.DDM, DDMFlagUsage)
	AddToggleFlag(flagSet, &values.SCAP, SCAPFlagName, "", defaults.SCAP, SCAPFlagUsage)

	return &values
}
