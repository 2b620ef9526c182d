package reposync

import (
	"strings"
	"time"
)

const (
	remoteURLConfigurationKeyConstant       = "remote_url"
	localPathConfigurationKeyConstant       = "local_path"
	cloneTimeoutConfigurationKeyConstant    = "clone_timeout"
	fetchTimeoutConfigurationKeyConstant    = "fetch_timeout"
	checkoutTimeoutConfigurationKeyConstant = "checkout_timeout"
	pullTimeoutConfigurationKeyConstant     = "pull_timeout"

	defaultRemoteRepositoryURLConstant = "https://github.com/usnistgov/macos_security.git"
	defaultLocalPathConstant           = "~/.mscpgen/macos_security"
	defaultCloneTimeoutConstant        = 2 * time.Minute
	defaultFetchTimeoutConstant        = time.Minute
	defaultCheckoutTimeoutConstant     = 30 * time.Second
	defaultPullTimeoutConstant         = time.Minute
)

// CommandConfiguration captures settings for working-copy synchronization.
type CommandConfiguration struct {
	RemoteURL       string        `mapstructure:"remote_url"`
	LocalPath       string        `mapstructure:"local_path"`
	CloneTimeout    time.Duration `mapstructure:"clone_timeout"`
	FetchTimeout    time.Duration `mapstructure:"fetch_timeout"`
	CheckoutTimeout time.Duration `mapstructure:"checkout_timeout"`
	PullTimeout     time.Duration `mapstructure:"pull_timeout"`
}

// DefaultCommandConfiguration returns baseline synchronization settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		RemoteURL:       defaultRemoteRepositoryURLConstant,
		LocalPath:       defaultLocalPathConstant,
		CloneTimeout:    defaultCloneTimeoutConstant,
		FetchTimeout:    defaultFetchTimeoutConstant,
		CheckoutTimeout: defaultCheckoutTimeoutConstant,
		PullTimeout:     defaultPullTimeoutConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for synchronization commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + remoteURLConfigurationKeyConstant:       defaults.RemoteURL,
		rootKey + "." + localPathConfigurationKeyConstant:       defaults.LocalPath,
		rootKey + "." + cloneTimeoutConfigurationKeyConstant:    defaults.CloneTimeout.String(),
		rootKey + "." + fetchTimeoutConfigurationKeyConstant:    defaults.FetchTimeout.String(),
		rootKey + "." + checkoutTimeoutConfigurationKeyConstant: defaults.CheckoutTimeout.String(),
		rootKey + "." + pullTimeoutConfigurationKeyConstant:     defaults.PullTimeout.String(),
	}
}

// Sanitize trims configured values without inventing replacements.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.RemoteURL = strings.TrimSpace(configuration.RemoteURL)
	sanitized.LocalPath = strings.TrimSpace(configuration.LocalPath)
	return sanitized
}
