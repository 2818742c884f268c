package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchTimeout = 5 * time.Second

func receiveName(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case name := <-ch:
		return name
	case <-time.After(watchTimeout):
		t.Fatal("timed out waiting for watcher event")
		return ""
	}
}

func TestWatch_DeliversNewEnvironmentNames(t *testing.T) {
	s := newTestStore(t)
	w, err := s.Watch()
	require.NoError(t, err)
	defer w.Close()

	writeYAML(t, s.EnvironmentsDir(), "staging", "description: staging\n")

	assert.Equal(t, "staging", receiveName(t, w.Environments()))
}

func TestWatch_DeliversNewProfileNames(t *testing.T) {
	s := newTestStore(t)
	w, err := s.Watch()
	require.NoError(t, err)
	defer w.Close()

	writeYAML(t, s.ProfilesDir(), "sql-query", "integration: sql-query\n")

	assert.Equal(t, "sql-query", receiveName(t, w.Profiles()))
}

func TestWatch_IgnoresNonYAMLFiles(t *testing.T) {
	s := newTestStore(t)
	w, err := s.Watch()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(s.EnvironmentsDir(), "notes.txt"), []byte("x"), 0o644))
	writeYAML(t, s.EnvironmentsDir(), "after", "description: after\n")

	// The txt file must not surface; the next name received is the yaml one.
	assert.Equal(t, "after", receiveName(t, w.Environments()))
}

func TestWatch_CreatesMissingDirectories(t *testing.T) {
	base := t.TempDir()
	s := New(filepath.Join(base, "environments"), filepath.Join(base, "profiles"))

	w, err := s.Watch()
	require.NoError(t, err)
	defer w.Close()

	assert.DirExists(t, s.EnvironmentsDir())
	assert.DirExists(t, s.ProfilesDir())
}
