package generation

// Options selects the artifact classes a generation run should produce.
type Options struct {
	Profiles bool
	Scripts  bool
	DDM      bool
	SCAP     bool
}

// Any reports whether at least one artifact class is enabled.
func (options Options) Any() bool {
	return options.Profiles || options.Scripts || options.DDM || options.SCAP
}
