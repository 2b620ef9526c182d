package baselines

import "github.com/headmin/mscpgen/internal/catalog"

// Descriptor describes one baseline configuration document in the working copy.
type Descriptor struct {
	ID             string
	DisplayName    string
	FilePath       string
	PlatformFamily catalog.PlatformFamily
	Title          string
	Description    string
}

// baselineDocument mirrors the subset of a baseline YAML document the
// discoverer reads.
type baselineDocument struct {
	Title       string           `yaml:"title"`
	Description string           `yaml:"description"`
	Profile     []profileSection `yaml:"profile"`
}

type profileSection struct {
	Section string   `yaml:"section"`
	Rules   []string `yaml:"rules"`
}
