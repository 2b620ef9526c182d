package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestBindArtifactToggleFlagsAppliesDefaults(t *testing.T) {
	command := &cobra.Command{}

	values := BindArtifactToggleFlags(command, ArtifactToggleDefaults{Profiles: true, Scripts: true})

	require.NotNil(t, values)
	require.True(t, values.Profiles)
	require.True(t, values.Scripts)
	require.False(t, values.DDM)
	require.False(t, values.SCAP)

	for _, flagName := range []string{ProfilesFlagName, ScriptsFlagName, DDMFlagName, SCAPFlagName} {
		require.NotNil(t, command.Flags().Lookup(flagName))
	}
}

func TestBindArtifactToggleFlagsParsesYesNoValues(t *testing.T) {
	command := &cobra.Command{}

	values := BindArtifactToggleFlags(command, ArtifactToggleDefaults{Profiles: true, Scripts: true})

	arguments := NormalizeToggleArguments([]string{"--profiles", "no", "--ddm", "--scap", "yes"})
	parseError := command.ParseFlags(arguments)
	require.NoError(t, parseError)

	require.False(t, values.Profiles)
	require.True(t, values.Scripts)
	require.True(t, values.DDM)
	require.True(t, values.SCAP)
}
