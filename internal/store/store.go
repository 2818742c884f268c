package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const yamlExt = ".yaml"

// Entry is a named YAML file on disk, either an environment or a profile.
// The name is the file name without the .yaml extension.
type Entry struct {
	Name string
	Path string
}

// Store resolves environment and profile files below their configured
// directories. It performs no caching; every listing hits the filesystem.
type Store struct {
	environmentsDir string
	profilesDir     string
}

// New creates a Store rooted at the given directories. The directories do
// not need to exist yet; they are created lazily on the first write.
func New(environmentsDir, profilesDir string) *Store {
	return &Store{
		environmentsDir: environmentsDir,
		profilesDir:     profilesDir,
	}
}

// EnvironmentsDir returns the directory holding environment files.
func (s *Store) EnvironmentsDir() string { return s.environmentsDir }

// ProfilesDir returns the directory holding profile files.
func (s *Store) ProfilesDir() string { return s.profilesDir }

// ErrInvalidName is returned for names that cannot be used as file stems.
var ErrInvalidName = errors.New("invalid name")

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q must not contain path separators", ErrInvalidName, name)
	}
	if strings.HasPrefix(name, ".") {
		return fmt.Errorf("%w: %q must not start with a dot", ErrInvalidName, name)
	}
	return nil
}

// Environment resolves the entry for an environment name.
func (s *Store) Environment(name string) (Entry, error) {
	if err := validateName(name); err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Path: filepath.Join(s.environmentsDir, name+yamlExt)}, nil
}

// Profile resolves the entry for a profile name.
func (s *Store) Profile(name string) (Entry, error) {
	if err := validateName(name); err != nil {
		return Entry{}, err
	}
	return Entry{Name: name, Path: filepath.Join(s.profilesDir, name+yamlExt)}, nil
}

// ListEnvironments returns all environments sorted by name. A missing
// directory yields an empty list, not an error.
func (s *Store) ListEnvironments() ([]Entry, error) {
	return listDir(s.environmentsDir)
}

// ListProfiles returns all profiles sorted by name.
func (s *Store) ListProfiles() ([]Entry, error) {
	return listDir(s.profilesDir)
}

func listDir(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var entries []Entry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), yamlExt) {
			continue
		}
		name := strings.TrimSuffix(de.Name(), yamlExt)
		if validateName(name) != nil {
			continue
		}
		entries = append(entries, Entry{Name: name, Path: filepath.Join(dir, de.Name())})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Exists reports whether the entry's file is present.
func (s *Store) Exists(e Entry) bool {
	_, err := os.Stat(e.Path)
	return err == nil
}

// Read returns the raw file contents.
func (s *Store) Read(e Entry) ([]byte, error) {
	data, err := os.ReadFile(e.Path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", e.Path, err)
	}
	return data, nil
}

// Stat returns file metadata, used for modification times in listings.
func (s *Store) Stat(e Entry) (os.FileInfo, error) {
	info, err := os.Stat(e.Path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", e.Path, err)
	}
	return info, nil
}

// Scaffold writes the template to the entry's path unless the file already
// exists, creating parent directories as needed. It reports whether a new
// file was written.
func (s *Store) Scaffold(e Entry, template []byte) (bool, error) {
	if s.Exists(e) {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(e.Path), 0o755); err != nil {
		return false, fmt.Errorf("creating %s: %w", filepath.Dir(e.Path), err)
	}
	if err := os.WriteFile(e.Path, template, 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", e.Path, err)
	}
	return true, nil
}

// Remove deletes the entry's file.
func (s *Store) Remove(e Entry) error {
	if err := os.Remove(e.Path); err != nil {
		return fmt.Errorf("removing %s: %w", e.Path, err)
	}
	return nil
}

// EnvironmentSpec is the parsed form of an environment file. Environments
// describe where qontract-reconcile reads its data from.
type EnvironmentSpec struct {
	Description      string            `yaml:"description,omitempty"`
	AppInterfacePath string            `yaml:"app_interface_path,omitempty"`
	ConfigPath       string            `yaml:"config,omitempty"`
	Env              map[string]string `yaml:"env,omitempty"`
}

// ProfileSpec is the parsed form of a profile file. Profiles describe how
// the qontract-reconcile container is run.
type ProfileSpec struct {
	Description  string            `yaml:"description,omitempty"`
	Image        string            `yaml:"image,omitempty"`
	ImageTag     string            `yaml:"image_tag,omitempty"`
	Integration  string            `yaml:"integration,omitempty"`
	ExtraArgs    []string          `yaml:"extra_args,omitempty"`
	RunOnce      bool              `yaml:"run_once,omitempty"`
	DryRun       *bool             `yaml:"dry_run,omitempty"`
	SleepSeconds int               `yaml:"sleep_duration_secs,omitempty"`
	Env          map[string]string `yaml:"env,omitempty"`
}

// Profile defaults applied by LoadProfile.
const (
	DefaultImage        = "quay.io/app-sre/qontract-reconcile"
	DefaultImageTag     = "latest"
	DefaultSleepSeconds = 10
)

// IsDryRun reports the effective dry-run flag; unset means true so a fresh
// profile can never write to production systems by accident.
func (p ProfileSpec) IsDryRun() bool {
	if p.DryRun == nil {
		return true
	}
	return *p.DryRun
}

// LoadEnvironment reads and parses an environment file.
func (s *Store) LoadEnvironment(name string) (EnvironmentSpec, error) {
	entry, err := s.Environment(name)
	if err != nil {
		return EnvironmentSpec{}, err
	}
	data, err := s.Read(entry)
	if err != nil {
		return EnvironmentSpec{}, fmt.Errorf("environment %q: %w", name, err)
	}
	var spec EnvironmentSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return EnvironmentSpec{}, fmt.Errorf("parsing environment %q: %w", name, err)
	}
	spec.AppInterfacePath = expandHome(spec.AppInterfacePath)
	spec.ConfigPath = expandHome(spec.ConfigPath)
	return spec, nil
}

// LoadProfile reads and parses a profile file, applying defaults for the
// image coordinates and the sleep interval.
func (s *Store) LoadProfile(name string) (ProfileSpec, error) {
	entry, err := s.Profile(name)
	if err != nil {
		return ProfileSpec{}, err
	}
	data, err := s.Read(entry)
	if err != nil {
		return ProfileSpec{}, fmt.Errorf("profile %q: %w", name, err)
	}
	var spec ProfileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return ProfileSpec{}, fmt.Errorf("parsing profile %q: %w", name, err)
	}
	if spec.Image == "" {
		spec.Image = DefaultImage
	}
	if spec.ImageTag == "" {
		spec.ImageTag = DefaultImageTag
	}
	if spec.SleepSeconds <= 0 {
		spec.SleepSeconds = DefaultSleepSeconds
	}
	return spec, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			if p == "~" {
				return home
			}
			return filepath.Join(home, p[2:])
		}
	}
	return p
}
