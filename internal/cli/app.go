package cli

import (
	"io"
	"os"
	"time"

	"daily-log/internal/api"
	"daily-log/internal/config"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// App bundles the dependencies the command handlers share.
type App struct {
	api    api.API
	config *config.Config
	out    io.Writer
}

// NewAppWithConfig creates a CLI application around an API instance.
func NewAppWithConfig(apiInstance api.API, cfg *config.Config) *App {
	return &App{
		api:    apiInstance,
		config: cfg,
		out:    os.Stdout,
	}
}

// SetOutput redirects command output, used by tests.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}
