package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper to write a config file into dir and return its path.
func createTempConfigFile(t *testing.T, dir string, content Config) string {
	t.Helper()
	path := filepath.Join(dir, configFileName)
	data, err := yaml.Marshal(&content)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

// Clear any ambient QD_* variables so tests stay hermetic.
func clearQDEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"QD_ENVIRONMENTS_DIR", "QD_PROFILES_DIR", "QD_STATE_DIR",
		"QD_EDITOR", "QD_CONTAINER_ENGINE", "QD_DEBUG",
	} {
		t.Setenv(key, "")
	}
}

// Point the loader at non-existent files so only defaults apply.
func mockEmptyConfigPaths(t *testing.T, tempDir string) {
	t.Helper()
	clearQDEnv(t)
	originalUser := getUserConfigPath
	originalProject := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalUser
		getProjectConfigPath = originalProject
	})
	getUserConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "no-user-config.yaml"), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "no-project-config.yaml"), nil
	}
}

func TestLoad_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()
	mockEmptyConfigPaths(t, tempDir)

	loaded, err := Load()
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, defaults.EnvironmentsDir, loaded.EnvironmentsDir)
	assert.Equal(t, defaults.ProfilesDir, loaded.ProfilesDir)
	assert.Equal(t, EngineDocker, loaded.ContainerEngine)
	assert.Equal(t, "qd", loaded.ComposeProjectName)
	assert.False(t, loaded.Debug)
}

func TestLoad_UserOverride(t *testing.T) {
	tempDir := t.TempDir()
	clearQDEnv(t)

	originalUser := getUserConfigPath
	originalProject := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalUser
		getProjectConfigPath = originalProject
	})

	userDir := filepath.Join(tempDir, "user")
	createTempConfigFile(t, userDir, Config{
		Editor:          "nvim",
		ContainerEngine: EnginePodman,
	})
	getUserConfigPath = func() (string, error) {
		return filepath.Join(userDir, configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "no-project-config.yaml"), nil
	}

	loaded, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nvim", loaded.Editor)
	assert.Equal(t, EnginePodman, loaded.ContainerEngine)
	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultConfig().ProfilesDir, loaded.ProfilesDir)
}

func TestLoad_ProjectOverridesUser(t *testing.T) {
	tempDir := t.TempDir()
	clearQDEnv(t)

	originalUser := getUserConfigPath
	originalProject := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalUser
		getProjectConfigPath = originalProject
	})

	userDir := filepath.Join(tempDir, "user")
	projectDir := filepath.Join(tempDir, "project")
	createTempConfigFile(t, userDir, Config{Editor: "nvim", Debug: true})
	createTempConfigFile(t, projectDir, Config{Editor: "code"})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(userDir, configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(projectDir, configFileName), nil
	}

	loaded, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "code", loaded.Editor, "project config should win")
	assert.True(t, loaded.Debug, "debug is sticky across layers")
}

func TestLoad_EnvOverrides(t *testing.T) {
	tempDir := t.TempDir()
	mockEmptyConfigPaths(t, tempDir)

	t.Setenv("QD_EDITOR", "hx")
	t.Setenv("QD_ENVIRONMENTS_DIR", filepath.Join(tempDir, "envs"))
	t.Setenv("QD_DEBUG", "true")

	loaded, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "hx", loaded.Editor)
	assert.Equal(t, filepath.Join(tempDir, "envs"), loaded.EnvironmentsDir)
	assert.True(t, loaded.Debug)
}

func TestLoad_RejectsUnknownEngine(t *testing.T) {
	tempDir := t.TempDir()
	mockEmptyConfigPaths(t, tempDir)

	t.Setenv("QD_CONTAINER_ENGINE", "containerd")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported container engine")
}

func TestLoad_BadYAML(t *testing.T) {
	tempDir := t.TempDir()
	clearQDEnv(t)

	originalUser := getUserConfigPath
	originalProject := getProjectConfigPath
	t.Cleanup(func() {
		getUserConfigPath = originalUser
		getProjectConfigPath = originalProject
	})

	userDir := filepath.Join(tempDir, "user")
	require.NoError(t, os.MkdirAll(userDir, 0o755))
	badPath := filepath.Join(userDir, configFileName)
	require.NoError(t, os.WriteFile(badPath, []byte("editor: [unclosed"), 0o644))

	getUserConfigPath = func() (string, error) { return badPath, nil }
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(tempDir, "no-project-config.yaml"), nil
	}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading user config")
}

func TestMergeConfigs(t *testing.T) {
	base := DefaultConfig()
	overlay := Config{
		Editor:             "ed",
		ComposeProjectName: "dev",
	}

	merged := mergeConfigs(base, overlay)

	assert.Equal(t, "ed", merged.Editor)
	assert.Equal(t, "dev", merged.ComposeProjectName)
	assert.Equal(t, base.EnvironmentsDir, merged.EnvironmentsDir)
	assert.Equal(t, base.ContainerEngine, merged.ContainerEngine)
}

func TestExpandPath(t *testing.T) {
	originalHome := osUserHomeDir
	t.Cleanup(func() { osUserHomeDir = originalHome })
	osUserHomeDir = func() (string, error) { return "/home/tester", nil }

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "tilde only", in: "~", want: "/home/tester"},
		{name: "tilde slash", in: "~/envs", want: "/home/tester/envs"},
		{name: "absolute untouched", in: "/etc/qd", want: "/etc/qd"},
		{name: "relative untouched", in: "envs", want: "envs"},
		{name: "empty", in: "", want: ""},
		{name: "tilde user untouched", in: "~other/envs", want: "~other/envs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}
