// Package config provides configuration management for qd.
//
// Configuration is loaded and merged in the following order, with later
// sources overriding earlier ones:
//
//  1. Built-in defaults (everything under ~/.config/qd and ~/.cache/qd)
//  2. User configuration (~/.config/qd/config.yaml)
//  3. Project configuration (./.qd/config.yaml)
//  4. QD_* environment variables (QD_ENVIRONMENTS_DIR, QD_PROFILES_DIR,
//     QD_STATE_DIR, QD_EDITOR, QD_CONTAINER_ENGINE, QD_DEBUG)
//
// The configuration file uses YAML format:
//
//	environmentsDir: ~/.config/qd/environments
//	profilesDir: ~/.config/qd/profiles
//	stateDir: ~/.cache/qd
//	editor: vim
//	containerEngine: docker   # or podman
//	composeProjectName: qd
//	debug: false
//
// Paths may start with ~ which expands to the user's home directory.
package config
