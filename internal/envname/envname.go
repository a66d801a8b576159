// SPDX-License-Identifier: GPL-2.0-only

// Package envname resolves the Robotmk environment name for commands that
// did not receive one explicitly.
package envname

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// EnvFileName is the Robotmk environment definition file consulted for a
// "name" field when no explicit name is given.
const EnvFileName = "robotmk-env.yaml"

// Resolve determines the environment name for the given working directory.
// Precedence: the explicit name if non-empty, then the "name" field of
// robotmk-env.yaml in dir, then the base name of dir itself as a last resort.
// A robotmk-env.yaml that exists but cannot be parsed is an error; a missing
// one is not.
func Resolve(explicit, dir string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	envFile := filepath.Join(dir, EnvFileName)
	if _, err := os.Stat(envFile); err == nil {
		name, err := nameFromEnvFile(envFile)
		if err != nil {
			return "", err
		}
		if name != "" {
			log.Debug("Using environment name from env file", "name", name, "file", envFile)
			return name, nil
		}
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory %s: %w", dir, err)
	}
	name := filepath.Base(abs)
	log.Debug("Using directory name as environment name", "name", name)
	return name, nil
}

// nameFromEnvFile reads the "name" field of a robotmk-env.yaml file.
// An absent field yields an empty string, not an error.
func nameFromEnvFile(path string) (string, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return v.GetString("name"), nil
}
