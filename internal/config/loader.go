package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/qd"
	projectConfigDir = ".qd"
	configFileName   = "config.yaml"
)

// Load builds the effective configuration by layering defaults, the user
// config, the project config, and finally QD_* environment variables.
func Load() (Config, error) {
	config := DefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional; keep going with defaults.
		fmt.Fprintf(os.Stderr, "Warning: could not determine user config path: %v\n", err)
	} else {
		if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
			userConfig, err := loadConfigFromFile(userConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
			}
			config = mergeConfigs(config, userConfig)
		}
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not determine project config path: %v\n", err)
	} else {
		if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
			projectConfig, err := loadConfigFromFile(projectConfigPath)
			if err != nil {
				return Config{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
			}
			config = mergeConfigs(config, projectConfig)
		}
	}

	config = applyEnvOverrides(config)

	config.EnvironmentsDir = ExpandPath(config.EnvironmentsDir)
	config.ProfilesDir = ExpandPath(config.ProfilesDir)
	config.StateDir = ExpandPath(config.StateDir)

	if config.ContainerEngine != EngineDocker && config.ContainerEngine != EnginePodman {
		return Config{}, fmt.Errorf("unsupported container engine %q (want %q or %q)",
			config.ContainerEngine, EngineDocker, EnginePodman)
	}

	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a Config from a YAML file.
func loadConfigFromFile(filePath string) (Config, error) {
	var config Config
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Config{}, err
	}
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' into 'base'; empty overlay fields keep the
// base value. Debug is sticky: once any layer enables it, it stays on.
func mergeConfigs(base, overlay Config) Config {
	merged := base
	if overlay.EnvironmentsDir != "" {
		merged.EnvironmentsDir = overlay.EnvironmentsDir
	}
	if overlay.ProfilesDir != "" {
		merged.ProfilesDir = overlay.ProfilesDir
	}
	if overlay.StateDir != "" {
		merged.StateDir = overlay.StateDir
	}
	if overlay.Editor != "" {
		merged.Editor = overlay.Editor
	}
	if overlay.ContainerEngine != "" {
		merged.ContainerEngine = overlay.ContainerEngine
	}
	if overlay.ComposeProjectName != "" {
		merged.ComposeProjectName = overlay.ComposeProjectName
	}
	if overlay.Debug {
		merged.Debug = true
	}
	return merged
}

// applyEnvOverrides applies QD_* environment variables on top of the file
// layers; environment variables win over both config files.
func applyEnvOverrides(config Config) Config {
	if v := os.Getenv("QD_ENVIRONMENTS_DIR"); v != "" {
		config.EnvironmentsDir = v
	}
	if v := os.Getenv("QD_PROFILES_DIR"); v != "" {
		config.ProfilesDir = v
	}
	if v := os.Getenv("QD_STATE_DIR"); v != "" {
		config.StateDir = v
	}
	if v := os.Getenv("QD_EDITOR"); v != "" {
		config.Editor = v
	}
	if v := os.Getenv("QD_CONTAINER_ENGINE"); v != "" {
		config.ContainerEngine = v
	}
	if v := os.Getenv("QD_DEBUG"); v == "1" || strings.EqualFold(v, "true") {
		config.Debug = true
	}
	return config
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := osUserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}

// GetUserConfigDir returns the user configuration directory path.
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
