// Package config resolves the layered chasten configuration: a main config
// that references one or more checks documents.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Default names and locations.
const (
	ApplicationName   = "chasten"
	DefaultConfigFile = "config.yml"
	DefaultChecksFile = "checks.yml"

	// EnvConfig overrides discovery when no location is given on the command line.
	EnvConfig = "CHASTEN_CONFIG"

	namespaceKey  = "chasten"
	checksFileKey = "checks-file"
)

var (
	// ErrInvalidLocation reports a user location that is neither a URL, an
	// existing directory, nor an existing file.
	ErrInvalidLocation = errors.New("invalid configuration location")
	// ErrMixedOrigin reports a checks reference whose origin class differs
	// from the main config's (URL from local, or local from URL).
	ErrMixedOrigin = errors.New("checks file origin does not match configuration origin")
)

// DefaultDirectory returns the platform user config directory for chasten,
// e.g. ~/.config/chasten on Linux.
func DefaultDirectory() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate user config directory: %w", err)
	}
	// UserConfigDir can succeed with an unusable root on odd environments.
	if configHome == "" || configHome == "/" {
		return "", fmt.Errorf("locate user config directory: unusable path %q", configHome)
	}
	return filepath.Join(configHome, ApplicationName), nil
}

// Location picks the user-supplied config location.
//
// Priority order (highest to lowest):
//  1. --config flag
//  2. CHASTEN_CONFIG environment variable
//  3. "" (the resolver falls back to default discovery)
func Location(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvConfig)
}
