package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/chassing/qontract-development-cli/pkg/logging"
)

const watchChannelBuffer = 16

// Watcher reports the names of YAML files newly created under the store's
// directories, so the TUI can append them to its lists while it is open.
// Only creations are reported; removals are picked up on the next start.
type Watcher struct {
	fsw          *fsnotify.Watcher
	environments chan string
	profiles     chan string
}

// Watch starts watching both store directories. The directories are created
// first so the watches can be established on an empty installation.
func (s *Store) Watch() (*Watcher, error) {
	for _, dir := range []string{s.environmentsDir, s.profilesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting watcher: %w", err)
	}
	for _, dir := range []string{s.environmentsDir, s.profilesDir} {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fsw:          fsw,
		environments: make(chan string, watchChannelBuffer),
		profiles:     make(chan string, watchChannelBuffer),
	}
	go w.loop(s.environmentsDir, s.profilesDir)
	return w, nil
}

func (w *Watcher) loop(environmentsDir, profilesDir string) {
	defer close(w.environments)
	defer close(w.profiles)
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == 0 || !strings.HasSuffix(event.Name, yamlExt) {
				continue
			}
			name := strings.TrimSuffix(filepath.Base(event.Name), yamlExt)
			if validateName(name) != nil {
				continue
			}
			switch filepath.Dir(event.Name) {
			case filepath.Clean(environmentsDir):
				deliver(w.environments, name)
			case filepath.Clean(profilesDir):
				deliver(w.profiles, name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn("store", "watcher error: %v", err)
		}
	}
}

// deliver drops the name when the receiver is not keeping up; the next
// restart re-lists the directory anyway.
func deliver(ch chan string, name string) {
	select {
	case ch <- name:
	default:
	}
}

// Environments returns the channel of newly created environment names.
func (w *Watcher) Environments() <-chan string { return w.environments }

// Profiles returns the channel of newly created profile names.
func (w *Watcher) Profiles() <-chan string { return w.profiles }

// Close stops the underlying filesystem watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
