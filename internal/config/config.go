// SPDX-License-Identifier: MIT

// Package config handles loading, saving, and resolving the gitbuddy
// configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

const (
	// LocalConfigFilename is the per-directory gitbuddy config file.
	LocalConfigFilename = ".gitbuddy.yaml"
	// ConfigAPIVersion is the current config schema apiVersion.
	ConfigAPIVersion = "skaphos.io/gitbuddy/v1beta1"
	// ConfigKind is the current config schema kind.
	ConfigKind = "GitBuddyConfig"
	// EnvConfig overrides the config location.
	EnvConfig = "GITBUDDY_CONFIG"

	// DefaultCommitMessage is proposed when the user enters no message.
	DefaultCommitMessage = "Update files via Git Buddy"
)

// Defaults holds default values for operations.
type Defaults struct {
	RemoteName     string `yaml:"remote_name"`
	DefaultBranch  string `yaml:"default_branch"`
	Host           string `yaml:"host"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	CommitMessage  string `yaml:"commit_message"`
	StageUntracked *bool  `yaml:"stage_untracked,omitempty"`
}

// Config represents the gitbuddy configuration.
type Config struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Defaults   Defaults `yaml:"defaults"`
	Exclude    []string `yaml:"exclude"`
	LogFile    string   `yaml:"log_file,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults applied.
func DefaultConfig() Config {
	stage := true
	return Config{
		APIVersion: ConfigAPIVersion,
		Kind:       ConfigKind,
		Exclude:    []string{"**/__pycache__/**", "**/*.pyc", "**/.DS_Store", "**/node_modules/**"},
		Defaults: Defaults{
			RemoteName:     "origin",
			DefaultBranch:  "main",
			Host:           "github.com",
			TimeoutSeconds: 30,
			CommitMessage:  DefaultCommitMessage,
			StageUntracked: &stage,
		},
	}
}

// Timeout is the per-command git timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Defaults.TimeoutSeconds) * time.Second
}

// StageUntracked reports whether commits also stage untracked files.
func (c *Config) StageUntracked() bool {
	return c.Defaults.StageUntracked == nil || *c.Defaults.StageUntracked
}

// ConfigDir returns the platform-appropriate config directory path.
// It checks, in order: the override parameter, GITBUDDY_CONFIG env var,
// and finally os.UserConfigDir()/gitbuddy.
func ConfigDir(override string) (string, error) {
	if override != "" {
		if isConfigFilePath(override) {
			return filepath.Dir(override), nil
		}
		return override, nil
	}

	if env := os.Getenv(EnvConfig); env != "" {
		if isConfigFilePath(env) {
			return filepath.Dir(env), nil
		}
		return env, nil
	}

	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "gitbuddy"), nil
}

// ConfigPath resolves the config file path from override/env/defaults.
func ConfigPath(override string) (string, error) {
	if override != "" {
		if isConfigFilePath(override) {
			return override, nil
		}
		return filepath.Join(override, "config.yaml"), nil
	}

	if env := os.Getenv(EnvConfig); env != "" {
		if isConfigFilePath(env) {
			return env, nil
		}
		return filepath.Join(env, "config.yaml"), nil
	}

	dir, err := ConfigDir("")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// InitConfigPath resolves where "gitbuddy init" should write config.
// Order: explicit override, GITBUDDY_CONFIG, then local dotfile in cwd.
func InitConfigPath(override, cwd string) (string, error) {
	if override != "" || os.Getenv(EnvConfig) != "" {
		return ConfigPath(override)
	}

	if strings.TrimSpace(cwd) == "" {
		var err error
		cwd, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(cwd, LocalConfigFilename), nil
}

// ResolveConfigPath resolves config for runtime commands.
// Order: explicit override, GITBUDDY_CONFIG, nearest local dotfile in cwd/parents,
// then global platform config path.
func ResolveConfigPath(override, cwd string) (string, error) {
	if override != "" || os.Getenv(EnvConfig) != "" {
		return ConfigPath(override)
	}

	if strings.TrimSpace(cwd) == "" {
		var err error
		cwd, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	localPath, err := FindNearestConfigPath(cwd)
	if err != nil {
		return "", err
	}
	if localPath != "" {
		return localPath, nil
	}

	return ConfigPath("")
}

// FindNearestConfigPath searches cwd and each parent directory for .gitbuddy.yaml.
// It returns an empty string when no local config file is found.
func FindNearestConfigPath(cwd string) (string, error) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, LocalConfigFilename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !os.IsNotExist(err) {
			return "", err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Load reads the config file from the given path. Zero values in the file
// fall back to the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigGVK(&cfg)
	if err := validateConfigGVK(&cfg); err != nil {
		return nil, err
	}

	defaults := DefaultConfig().Defaults
	if cfg.Defaults.RemoteName == "" {
		cfg.Defaults.RemoteName = defaults.RemoteName
	}
	if cfg.Defaults.DefaultBranch == "" {
		cfg.Defaults.DefaultBranch = defaults.DefaultBranch
	}
	if cfg.Defaults.Host == "" {
		cfg.Defaults.Host = defaults.Host
	}
	if cfg.Defaults.TimeoutSeconds <= 0 {
		cfg.Defaults.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if strings.TrimSpace(cfg.Defaults.CommitMessage) == "" {
		cfg.Defaults.CommitMessage = defaults.CommitMessage
	}
	cfg.LogFile = ResolveRelativePath(path, cfg.LogFile)

	return &cfg, nil
}

// LoadOrDefault loads path, or returns the defaults when the file does not
// exist. found reports whether a file was read.
func LoadOrDefault(path string) (cfg *Config, found bool, err error) {
	cfg, err = Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		def := DefaultConfig()
		return &def, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// ResolveRelativePath resolves p against the directory containing
// configPath. Absolute paths are returned cleaned; empty stays empty.
func ResolveRelativePath(configPath, p string) string {
	if strings.TrimSpace(p) == "" {
		return ""
	}
	if filepath.IsAbs(p) || strings.TrimSpace(configPath) == "" {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(filepath.Dir(configPath), p))
}

// Save writes the config to the given path.
func Save(cfg *Config, path string) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	applyConfigGVK(cfg)
	if err := validateConfigGVK(cfg); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func isConfigFilePath(path string) bool {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, "config.yaml") || strings.HasSuffix(lower, "config.yml") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func applyConfigGVK(cfg *Config) {
	if cfg == nil {
		return
	}
	if strings.TrimSpace(cfg.APIVersion) == "" {
		cfg.APIVersion = ConfigAPIVersion
	}
	if strings.TrimSpace(cfg.Kind) == "" {
		cfg.Kind = ConfigKind
	}
}

func validateConfigGVK(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.APIVersion != ConfigAPIVersion {
		return fmt.Errorf("unsupported config apiVersion %q (expected %q)", cfg.APIVersion, ConfigAPIVersion)
	}
	if cfg.Kind != ConfigKind {
		return fmt.Errorf("unsupported config kind %q (expected %q)", cfg.Kind, ConfigKind)
	}
	return nil
}
