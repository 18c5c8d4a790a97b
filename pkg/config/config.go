// Package config resolves connection settings for the CLI.
//
// Precedence, highest first: command-line flags, DOJO_* environment
// variables, an optional YAML config file. The config file is read-only;
// dojoctl never writes local state.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dojoctl/dojoctl/pkg/defaults"
)

// Settings holds the resolved connection settings for one run.
type Settings struct {
	URL      string
	Token    string
	Username string
	Password string
	APISpec  string
}

// fileSettings is the YAML shape of the optional config file.
type fileSettings struct {
	URL      string `yaml:"url"`
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	APISpec  string `yaml:"api_spec"`
}

// Resolve merges flag values with environment fallbacks and, when a config
// file path is given (flag or DOJO_CONFIG), with file values. Flag values
// win over env values, which win over file values.
func Resolve(flags Settings, configPath string) (Settings, error) {
	s := flags
	s.URL = fallback(s.URL, os.Getenv(defaults.EnvURL))
	s.Token = fallback(s.Token, os.Getenv(defaults.EnvToken))
	s.Username = fallback(s.Username, os.Getenv(defaults.EnvUsername))
	s.Password = fallback(s.Password, os.Getenv(defaults.EnvPassword))
	s.APISpec = fallback(s.APISpec, os.Getenv(defaults.EnvAPISpec))

	if configPath == "" {
		configPath = os.Getenv(defaults.EnvConfig)
	}
	if configPath != "" {
		f, err := loadFile(configPath)
		if err != nil {
			return Settings{}, err
		}
		s.URL = fallback(s.URL, f.URL)
		s.Token = fallback(s.Token, f.Token)
		s.Username = fallback(s.Username, f.Username)
		s.Password = fallback(s.Password, f.Password)
		s.APISpec = fallback(s.APISpec, f.APISpec)
	}

	s.URL = strings.TrimRight(s.URL, "/")
	return s, nil
}

// Validate checks that the settings are sufficient to construct a client.
func (s Settings) Validate() error {
	if s.URL == "" {
		return fmt.Errorf("%w: base URL (flag -url or %s)", ErrMissingRequired, defaults.EnvURL)
	}
	return nil
}

func loadFile(path string) (fileSettings, error) {
	var f fileSettings
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("%w: parsing %s: %v", ErrInvalidConfig, path, err)
	}
	return f, nil
}

func fallback(value, alt string) string {
	if value != "" {
		return value
	}
	return alt
}
