package generation

import (
	"strings"
	"time"
)

const (
	toolConfigurationKeyConstant     = "tool"
	timeoutConfigurationKeyConstant  = "timeout"
	profilesConfigurationKeyConstant = "profiles"
	scriptsConfigurationKeyConstant  = "scripts"
	ddmConfigurationKeyConstant      = "ddm"
	scapConfigurationKeyConstant     = "scap"

	defaultGeneratorToolConstant   = "scripts/generate_guidance.py"
	defaultRunTimeoutConstant      = 5 * time.Minute
	defaultProfilesEnabledConstant = true
	defaultScriptsEnabledConstant  = true
	defaultDDMEnabledConstant      = false
	defaultSCAPEnabledConstant     = false
)

// CommandConfiguration captures settings for guidance generation runs.
type CommandConfiguration struct {
	Tool     string        `mapstructure:"tool"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Profiles bool          `mapstructure:"profiles"`
	Scripts  bool          `mapstructure:"scripts"`
	DDM      bool          `mapstructure:"ddm"`
	SCAP     bool          `mapstructure:"scap"`
}

// DefaultCommandConfiguration returns baseline settings for generation runs.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Tool:     defaultGeneratorToolConstant,
		Timeout:  defaultRunTimeoutConstant,
		Profiles: defaultProfilesEnabledConstant,
		Scripts:  defaultScriptsEnabledConstant,
		DDM:      defaultDDMEnabledConstant,
		SCAP:     defaultSCAPEnabledConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for generation commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + toolConfigurationKeyConstant:     defaults.Tool,
		rootKey + "." + timeoutConfigurationKeyConstant:  defaults.Timeout.String(),
		rootKey + "." + profilesConfigurationKeyConstant: defaults.Profiles,
		rootKey + "." + scriptsConfigurationKeyConstant:  defaults.Scripts,
		rootKey + "." + ddmConfigurationKeyConstant:      defaults.DDM,
		rootKey + "." + scapConfigurationKeyConstant:     defaults.SCAP,
	}
}

// Sanitize trims configured values without inventing replacements.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Tool = strings.TrimSpace(configuration.Tool)
	return sanitized
}

// DefaultOptions derives the artifact selection the configuration enables by default.
func (configuration CommandConfiguration) DefaultOptions() Options {
	return Options{
		Profiles: configuration.Profiles,
		Scripts:  configuration.Scripts,
		DDM:      configuration.DDM,
		SCAP:     configuration.SCAP,
	}
}
