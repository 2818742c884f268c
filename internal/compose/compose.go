// Package compose renders docker-compose specs for environment/profile pairs
// and runs them through the configured container engine.
package compose

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chassing/qontract-development-cli/internal/store"
)

const (
	// ServiceName is the single service every rendered spec contains.
	ServiceName = "qontract-reconcile"

	// FileName is the name of the rendered compose file.
	FileName = "docker-compose.yml"

	appInterfaceMount = "/data/app-interface"
	configMount       = "/config/config.toml"
)

// Spec is the generated compose file.
type Spec struct {
	Services map[string]Service `yaml:"services"`
}

// Service is a single compose service definition. Only the fields we emit
// are modelled.
type Service struct {
	Image       string            `yaml:"image"`
	Volumes     []string          `yaml:"volumes,omitempty"`
	Environment map[string]string `yaml:"environment,omitempty"`
}

// Render builds the compose spec for one environment/profile pair. The
// profile's env entries override the environment's; the integration control
// variables are set last and always win.
func Render(env store.EnvironmentSpec, profile store.ProfileSpec) Spec {
	vars := map[string]string{}
	for k, v := range env.Env {
		vars[k] = v
	}
	for k, v := range profile.Env {
		vars[k] = v
	}

	vars["INTEGRATION_NAME"] = profile.Integration
	vars["DRY_RUN"] = strconv.FormatBool(profile.IsDryRun())
	vars["SLEEP_DURATION_SECS"] = strconv.Itoa(profile.SleepSeconds)
	if profile.RunOnce {
		vars["RUN_ONCE"] = "true"
	}
	if len(profile.ExtraArgs) > 0 {
		vars["INTEGRATION_EXTRA_ARGS"] = strings.Join(profile.ExtraArgs, " ")
	}

	var volumes []string
	if env.AppInterfacePath != "" {
		volumes = append(volumes, env.AppInterfacePath+":"+appInterfaceMount+":ro")
	}
	if env.ConfigPath != "" {
		volumes = append(volumes, env.ConfigPath+":"+configMount+":ro")
		vars["CONFIG"] = configMount
	}

	return Spec{
		Services: map[string]Service{
			ServiceName: {
				Image:       profile.Image + ":" + profile.ImageTag,
				Volumes:     volumes,
				Environment: vars,
			},
		},
	}
}

// File returns the path the rendered compose file for an environment and
// profile pair lives at, whether or not it exists yet.
func File(stateDir, envName, profileName string) string {
	return filepath.Join(stateDir, envName+"-"+profileName, FileName)
}

// Write marshals the spec into <stateDir>/<env>-<profile>/docker-compose.yml
// and returns the file path.
func Write(spec Spec, stateDir, envName, profileName string) (string, error) {
	path := File(stateDir, envName, profileName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating state dir %s: %w", filepath.Dir(path), err)
	}

	data, err := yaml.Marshal(spec)
	if err != nil {
		return "", fmt.Errorf("marshalling compose spec: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
