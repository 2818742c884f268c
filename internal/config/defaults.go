package config

import (
	"path/filepath"
)

// DefaultConfig returns the built-in configuration. All paths live under the
// user's config and cache directories so qd works out of the box; a home dir
// lookup failure falls back to relative paths in the current directory.
func DefaultConfig() Config {
	base := ".qd"
	state := ".qd/state"
	if home, err := osUserHomeDir(); err == nil {
		base = filepath.Join(home, ".config", "qd")
		state = filepath.Join(home, ".cache", "qd")
	}
	return Config{
		EnvironmentsDir:    filepath.Join(base, "environments"),
		ProfilesDir:        filepath.Join(base, "profiles"),
		StateDir:           state,
		Editor:             "",
		ContainerEngine:    EngineDocker,
		ComposeProjectName: "qd",
		Debug:              false,
	}
}
