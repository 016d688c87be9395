// SPDX-License-Identifier: EPL-2.0

// Package config loads the render configuration with viper: defaults,
// then an optional YAML file, then MODSTEMS_* environment variables, then
// command-line flags bound by the caller.
package config
