package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration options for the daily log application
type Config struct {
	GitHub      GitHubConfig
	Server      ServerConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
}

// GitHubConfig holds the remote store settings. Owner, Repo, FilePath,
// Branch and Token have no defaults and must be supplied by the environment;
// starting without any of them is a fatal condition.
type GitHubConfig struct {
	Owner    string `env:"DLOG_GITHUB_OWNER"`
	Repo     string `env:"DLOG_GITHUB_REPO"`
	FilePath string `env:"DLOG_GITHUB_FILE_PATH"`
	Branch   string `env:"DLOG_GITHUB_BRANCH"`
	Token    string `env:"DLOG_GITHUB_TOKEN"`

	APIBaseURL     string        `env:"DLOG_GITHUB_API_URL"`
	RawBaseURL     string        `env:"DLOG_GITHUB_RAW_URL"`
	RequestTimeout time.Duration `env:"DLOG_GITHUB_TIMEOUT"`
	CommitMessage  string        `env:"DLOG_COMMIT_MESSAGE"`
}

// ServerConfig holds web server configuration
type ServerConfig struct {
	Port         string `env:"DLOG_PORT"`
	CSRFKey      string `env:"DLOG_CSRF_KEY"`
	SecureCookie bool   `env:"DLOG_SECURE_COOKIE"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	QualityMin     int `env:"DLOG_VALIDATION_QUALITY_MIN"`
	QualityMax     int `env:"DLOG_VALIDATION_QUALITY_MAX"`
	NotesMaxLength int `env:"DLOG_VALIDATION_NOTES_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	RecentRows int    `env:"DLOG_DISPLAY_RECENT_ROWS"`
	DateFormat string `env:"DLOG_DISPLAY_DATE_FORMAT"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"DLOG_APP_TIMEOUT"`
	Verbose bool          `env:"DLOG_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults.
// The five GitHub store settings deliberately have none.
func NewConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIBaseURL:     "https://api.github.com",
			RawBaseURL:     "https://raw.githubusercontent.com",
			RequestTimeout: 15 * time.Second,
			CommitMessage:  "Update daily log",
		},
		Server: ServerConfig{
			Port: "8000",
		},
		Validation: ValidationConfig{
			QualityMin:     1,
			QualityMax:     10,
			NotesMaxLength: 2000,
		},
		Display: DisplayConfig{
			RecentRows: 3,
			DateFormat: "2006-01-02",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// GitHub store configuration
	if owner := os.Getenv("DLOG_GITHUB_OWNER"); owner != "" {
		c.GitHub.Owner = owner
	}
	if repo := os.Getenv("DLOG_GITHUB_REPO"); repo != "" {
		c.GitHub.Repo = repo
	}
	if path := os.Getenv("DLOG_GITHUB_FILE_PATH"); path != "" {
		c.GitHub.FilePath = path
	}
	if branch := os.Getenv("DLOG_GITHUB_BRANCH"); branch != "" {
		c.GitHub.Branch = branch
	}
	if token := os.Getenv("DLOG_GITHUB_TOKEN"); token != "" {
		c.GitHub.Token = token
	}
	if url := os.Getenv("DLOG_GITHUB_API_URL"); url != "" {
		c.GitHub.APIBaseURL = url
	}
	if url := os.Getenv("DLOG_GITHUB_RAW_URL"); url != "" {
		c.GitHub.RawBaseURL = url
	}
	if timeout := os.Getenv("DLOG_GITHUB_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.GitHub.RequestTimeout = d
		}
	}
	if msg := os.Getenv("DLOG_COMMIT_MESSAGE"); msg != "" {
		c.GitHub.CommitMessage = msg
	}

	// Server configuration
	if port := os.Getenv("DLOG_PORT"); port != "" {
		c.Server.Port = port
	}
	if key := os.Getenv("DLOG_CSRF_KEY"); key != "" {
		c.Server.CSRFKey = key
	}
	if secure := os.Getenv("DLOG_SECURE_COOKIE"); secure != "" {
		if b, err := strconv.ParseBool(secure); err == nil {
			c.Server.SecureCookie = b
		}
	}

	// Validation configuration
	if min := os.Getenv("DLOG_VALIDATION_QUALITY_MIN"); min != "" {
		if n, err := strconv.Atoi(min); err == nil {
			c.Validation.QualityMin = n
		}
	}
	if max := os.Getenv("DLOG_VALIDATION_QUALITY_MAX"); max != "" {
		if n, err := strconv.Atoi(max); err == nil {
			c.Validation.QualityMax = n
		}
	}
	if max := os.Getenv("DLOG_VALIDATION_NOTES_MAX"); max != "" {
		if n, err := strconv.Atoi(max); err == nil {
			c.Validation.NotesMaxLength = n
		}
	}

	// Display configuration
	if rows := os.Getenv("DLOG_DISPLAY_RECENT_ROWS"); rows != "" {
		if n, err := strconv.Atoi(rows); err == nil {
			c.Display.RecentRows = n
		}
	}
	if format := os.Getenv("DLOG_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}

	// Application configuration
	if timeout := os.Getenv("DLOG_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("DLOG_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Remote store configuration: all five settings are required
	if c.GitHub.Owner == "" {
		return &ConfigError{Field: "github.owner", Message: "store owner is required (DLOG_GITHUB_OWNER)"}
	}
	if c.GitHub.Repo == "" {
		return &ConfigError{Field: "github.repo", Message: "repository name is required (DLOG_GITHUB_REPO)"}
	}
	if c.GitHub.FilePath == "" {
		return &ConfigError{Field: "github.file_path", Message: "file path is required (DLOG_GITHUB_FILE_PATH)"}
	}
	if c.GitHub.Branch == "" {
		return &ConfigError{Field: "github.branch", Message: "branch name is required (DLOG_GITHUB_BRANCH)"}
	}
	if c.GitHub.Token == "" {
		return &ConfigError{Field: "github.token", Message: "bearer token is required (DLOG_GITHUB_TOKEN)"}
	}
	if c.GitHub.APIBaseURL == "" {
		return &ConfigError{Field: "github.api_url", Message: "API base URL cannot be empty"}
	}
	if c.GitHub.RawBaseURL == "" {
		return &ConfigError{Field: "github.raw_url", Message: "raw content base URL cannot be empty"}
	}
	if c.GitHub.RequestTimeout <= 0 {
		return &ConfigError{Field: "github.timeout", Message: "request timeout must be positive"}
	}

	// Server configuration
	if c.Server.Port == "" {
		return &ConfigError{Field: "server.port", Message: "port cannot be empty"}
	}

	// Validation configuration
	if c.Validation.QualityMin < 1 {
		return &ConfigError{Field: "validation.quality_min", Message: "quality minimum must be at least 1"}
	}
	if c.Validation.QualityMax < c.Validation.QualityMin {
		return &ConfigError{Field: "validation.quality_max", Message: "quality maximum must be greater than minimum"}
	}
	if c.Validation.NotesMaxLength < 1 {
		return &ConfigError{Field: "validation.notes_max_length", Message: "notes length cap must be positive"}
	}

	// Display configuration
	if c.Display.RecentRows < 1 {
		return &ConfigError{Field: "display.recent_rows", Message: "recent rows must be at least 1"}
	}
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}

	// Application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
