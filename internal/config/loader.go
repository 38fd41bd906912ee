package config

import (
	"time"

	"github.com/joho/godotenv"

	"daily-log/internal/logging"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config  *Config
	envFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: ".env",
	}
}

// NewLoaderWithEnvFile creates a loader that reads a specific env file
func NewLoaderWithEnvFile(path string) *Loader {
	return &Loader{
		config:  NewConfig(),
		envFile: path,
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Merge a .env file into the process environment if one exists
// 3. Override with environment variables
// 4. Validate
func (l *Loader) Load() (*Config, error) {
	// A missing .env file is normal; secrets usually arrive via the
	// hosting environment directly.
	if err := godotenv.Load(l.envFile); err != nil {
		logging.Debugf("config: no env file loaded from %s: %v\n", l.envFile, err)
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadForCLI loads defaults, the .env file and environment variables
// without validating. The CLI validates after flag overrides are applied,
// so help output works without a configured store.
func (l *Loader) LoadForCLI() (*Config, error) {
	if err := godotenv.Load(l.envFile); err != nil {
		logging.Debugf("config: no env file loaded from %s: %v\n", l.envFile, err)
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(config, overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Store overrides
	Owner         *string
	Repo          *string
	FilePath      *string
	Branch        *string
	CommitMessage *string

	// Server overrides
	Port *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.Owner != nil {
		config.GitHub.Owner = *overrides.Owner
	}
	if overrides.Repo != nil {
		config.GitHub.Repo = *overrides.Repo
	}
	if overrides.FilePath != nil {
		config.GitHub.FilePath = *overrides.FilePath
	}
	if overrides.Branch != nil {
		config.GitHub.Branch = *overrides.Branch
	}
	if overrides.CommitMessage != nil {
		config.GitHub.CommitMessage = *overrides.CommitMessage
	}
	if overrides.Port != nil {
		config.Server.Port = *overrides.Port
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
