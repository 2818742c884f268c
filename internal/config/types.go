package config

// Config is the top-level configuration structure for qd.
type Config struct {
	// EnvironmentsDir holds the environment YAML files, one per environment.
	EnvironmentsDir string `yaml:"environmentsDir,omitempty"`
	// ProfilesDir holds the profile YAML files, one per profile.
	ProfilesDir string `yaml:"profilesDir,omitempty"`
	// StateDir receives rendered docker-compose files and other run state.
	StateDir string `yaml:"stateDir,omitempty"`
	// Editor overrides $VISUAL/$EDITOR for `qd env edit` and friends.
	Editor string `yaml:"editor,omitempty"`
	// ContainerEngine is the compose-capable engine, "docker" or "podman".
	ContainerEngine string `yaml:"containerEngine,omitempty"`
	// ComposeProjectName is passed to the engine as the compose project name.
	ComposeProjectName string `yaml:"composeProjectName,omitempty"`
	// Debug enables verbose logging everywhere.
	Debug bool `yaml:"debug,omitempty"`
}

// Supported container engines.
const (
	EngineDocker = "docker"
	EnginePodman = "podman"
)
