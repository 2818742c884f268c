package compose

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/chassing/qontract-development-cli/internal/store"
)

func testProfile() store.ProfileSpec {
	return store.ProfileSpec{
		Image:        store.DefaultImage,
		ImageTag:     store.DefaultImageTag,
		Integration:  "sql-query",
		SleepSeconds: store.DefaultSleepSeconds,
	}
}

func TestRender_ServiceBasics(t *testing.T) {
	spec := Render(store.EnvironmentSpec{}, testProfile())

	require.Contains(t, spec.Services, ServiceName)
	svc := spec.Services[ServiceName]
	assert.Equal(t, store.DefaultImage+":"+store.DefaultImageTag, svc.Image)
	assert.Equal(t, "sql-query", svc.Environment["INTEGRATION_NAME"])
	assert.Equal(t, "true", svc.Environment["DRY_RUN"])
	assert.Equal(t, "10", svc.Environment["SLEEP_DURATION_SECS"])
	assert.NotContains(t, svc.Environment, "RUN_ONCE")
	assert.NotContains(t, svc.Environment, "INTEGRATION_EXTRA_ARGS")
	assert.Empty(t, svc.Volumes)
}

func TestRender_ProfileEnvOverridesEnvironmentEnv(t *testing.T) {
	env := store.EnvironmentSpec{
		Env: map[string]string{"LOG_LEVEL": "info", "AWS_REGION": "us-east-1"},
	}
	profile := testProfile()
	profile.Env = map[string]string{"LOG_LEVEL": "debug"}

	svc := Render(env, profile).Services[ServiceName]
	assert.Equal(t, "debug", svc.Environment["LOG_LEVEL"])
	assert.Equal(t, "us-east-1", svc.Environment["AWS_REGION"])
}

func TestRender_ControlVariablesAlwaysWin(t *testing.T) {
	profile := testProfile()
	profile.Env = map[string]string{"INTEGRATION_NAME": "spoofed", "DRY_RUN": "maybe"}

	svc := Render(store.EnvironmentSpec{}, profile).Services[ServiceName]
	assert.Equal(t, "sql-query", svc.Environment["INTEGRATION_NAME"])
	assert.Equal(t, "true", svc.Environment["DRY_RUN"])
}

func TestRender_RunOnceAndExtraArgs(t *testing.T) {
	noDry := false
	profile := testProfile()
	profile.RunOnce = true
	profile.DryRun = &noDry
	profile.ExtraArgs = []string{"--validate-schemas", "--gitlab-project-id=1"}

	svc := Render(store.EnvironmentSpec{}, profile).Services[ServiceName]
	assert.Equal(t, "true", svc.Environment["RUN_ONCE"])
	assert.Equal(t, "false", svc.Environment["DRY_RUN"])
	assert.Equal(t, "--validate-schemas --gitlab-project-id=1", svc.Environment["INTEGRATION_EXTRA_ARGS"])
}

func TestRender_MountsFromEnvironment(t *testing.T) {
	env := store.EnvironmentSpec{
		AppInterfacePath: "/home/dev/app-interface",
		ConfigPath:       "/home/dev/config.dev.toml",
	}

	svc := Render(env, testProfile()).Services[ServiceName]
	assert.Contains(t, svc.Volumes, "/home/dev/app-interface:/data/app-interface:ro")
	assert.Contains(t, svc.Volumes, "/home/dev/config.dev.toml:/config/config.toml:ro")
	assert.Equal(t, "/config/config.toml", svc.Environment["CONFIG"])
}

func TestWrite_RendersFileIntoStateDir(t *testing.T) {
	stateDir := t.TempDir()
	spec := Render(store.EnvironmentSpec{}, testProfile())

	path, err := Write(spec, stateDir, "prod", "sql-query")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(stateDir, "prod-sql-query", FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded Spec
	require.NoError(t, yaml.Unmarshal(data, &loaded))
	assert.Equal(t, spec.Services[ServiceName].Image, loaded.Services[ServiceName].Image)
	assert.Equal(t, "sql-query", loaded.Services[ServiceName].Environment["INTEGRATION_NAME"])
}
