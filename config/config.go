package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/CongL3/MobileDependecyManager/manifest"
)

// Config is the top-level configuration for the dependency checker.
type Config struct {
	Project      ProjectConfig             `yaml:"project"`
	Token        string                    `yaml:"token"`  // Inline, ${ENV_VAR}, or file path
	Output       string                    `yaml:"output"` // Report destination, default docs/data.json
	Dependencies []manifest.WatchlistEntry `yaml:"dependencies"`
}

// ProjectConfig points at the consuming project whose Package.resolved
// should be checked. Leave it empty to use the static dependency watchlist.
type ProjectConfig struct {
	URL          string `yaml:"url"`
	Ref          string `yaml:"ref"` // Branch or commit; empty means the default branch
	ManifestPath string `yaml:"manifest_path"`
}

const DefaultOutput = "docs/data.json"

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// Load reads and parses a configuration file, expanding environment variables
// and resolving token file paths.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	cfg.Token = resolveToken(cfg.Token)
	if cfg.Output == "" {
		cfg.Output = DefaultOutput
	}

	if validateErr := validate(&cfg); validateErr != nil {
		return nil, validateErr
	}

	return &cfg, nil
}

// UsesManifest reports whether dependencies come from a remote
// Package.resolved rather than the static watchlist.
func (c *Config) UsesManifest() bool {
	return c.Project.URL != "" && c.Project.ManifestPath != ""
}

// FindConfigFile searches for a configuration file in standard locations.
// Returns the path to the first file found or an error if none is found.
func FindConfigFile() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		".",
		".config",
		"configs",
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".depcheck.yaml",
		".depcheck.yml",
		"depcheck.yaml",
		"depcheck.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// resolveToken expands environment variable references (${VAR}) and, if the
// resulting string is a path to an existing file, reads the token from the file.
func resolveToken(raw string) string {
	if raw == "" {
		return raw
	}

	// Expand ${ENV_VAR} references
	resolved := envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})

	// If the resolved value is a path to an existing file, read the token from it
	if _, statErr := os.Stat(resolved); statErr == nil {
		data, readErr := os.ReadFile(resolved)
		if readErr != nil {
			logger.Warnf("Failed to read token file %q: %v", resolved, readErr)
			return resolved
		}
		logger.Infof("Read token from file %q", resolved)
		return strings.TrimSpace(string(data))
	}

	return resolved
}

// validate checks for required configuration values.
func validate(cfg *Config) error {
	if cfg.Project.URL == "" && len(cfg.Dependencies) == 0 {
		return errors.New("either project.url or a dependencies watchlist must be configured")
	}

	if cfg.Project.URL != "" && cfg.Project.ManifestPath == "" {
		return errors.New("project.manifest_path is required when project.url is set")
	}

	for i, dep := range cfg.Dependencies {
		if dep.Name == "" {
			return fmt.Errorf("dependencies[%d].name is required", i)
		}
		if dep.URL == "" {
			return fmt.Errorf("dependencies[%d].url is required", i)
		}
		if dep.Pinned == "" {
			return fmt.Errorf("dependencies[%d].pinned is required", i)
		}
	}

	return nil
}
