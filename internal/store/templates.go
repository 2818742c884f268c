package store

// EnvironmentTemplate seeds a freshly created environment file so the
// editor opens on something self-explanatory instead of an empty buffer.
var EnvironmentTemplate = []byte(`---
# qd environment
#
# An environment points qontract-reconcile at a data source.

# description: my dev setup

# Local app-interface checkout, mounted read-only into the container.
app_interface_path: ~/workspace/app-interface

# qontract-reconcile config file.
# config: ~/workspace/qontract-reconcile/config.dev.toml

# Extra environment variables for the container.
# env:
#   APP_INTERFACE_STATE_BUCKET: ""
`)

// ProfileTemplate seeds a freshly created profile file.
var ProfileTemplate = []byte(`---
# qd profile
#
# A profile describes how the qontract-reconcile container is run.

# description: run a single integration once

# image: quay.io/app-sre/qontract-reconcile
# image_tag: latest

# Integration to run and its extra arguments.
integration: terraform-repo
# extra_args: []

run_once: true
dry_run: true
# sleep_duration_secs: 10

# Extra environment variables; these override the environment's env map.
# env: {}
`)
