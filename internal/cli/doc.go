// Package cli defines the Cobra command tree for the project CLI. Each file
// registers one top-level command (init, list, config, version) with the root
// command. Commands resolve configuration and flags, then delegate to the
// scaffold package for the actual work.
package cli
