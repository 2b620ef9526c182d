package catalog

import (
	"strings"
	"time"
)

const (
	remoteURLConfigurationKeyConstant   = "remote_url"
	cacheTTLConfigurationKeyConstant    = "cache_ttl"
	listTimeoutConfigurationKeyConstant = "list_timeout"

	defaultRemoteRepositoryURLConstant = "https://github.com/usnistgov/macos_security.git"
	defaultCacheTTLConstant            = 15 * time.Minute
	defaultListTimeoutConstant         = 30 * time.Second
)

// CommandConfiguration captures settings for querying the remote branch catalog.
type CommandConfiguration struct {
	RemoteURL   string        `mapstructure:"remote_url"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"`
	ListTimeout time.Duration `mapstructure:"list_timeout"`
}

// DefaultCommandConfiguration returns baseline settings for catalog queries.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RemoteURL:   defaultRemoteRepositoryURLConstant,
		CacheTTL:    defaultCacheTTLConstant,
		ListTimeout: defaultListTimeoutConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for the branch catalog.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + remoteURLConfigurationKeyConstant:   defaults.RemoteURL,
		rootKey + "." + cacheTTLConfigurationKeyConstant:    defaults.CacheTTL.String(),
		rootKey + "." + listTimeoutConfigurationKeyConstant: defaults.ListTimeout.String(),
	}
}

// Sanitize trims configured values without inventing replacements.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RemoteURL = strings.TrimSpace(configuration.RemoteURL)
	return sanitized
}
