package cli

import (
	"context"
	"fmt"
	"os"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app      *App
	errorHdl *ErrorHandler
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app, errorHdl: NewErrorHandler()}
}

// Execute writes the stored table as CSV, to stdout or to the given file.
func (c *ExportCommand) Execute(ctx context.Context, outputPath string) error {
	if notice := c.app.api.Reload(ctx); notice != nil {
		fmt.Fprintf(os.Stderr, "warning: stored log could not be read: %v\n", notice)
	}

	payload, err := c.app.api.ExportCSV()
	if err != nil {
		return c.errorHdl.Handle("export log", err)
	}

	if outputPath == "" {
		_, err = c.app.out.Write(payload)
		return err
	}

	if err := os.WriteFile(outputPath, payload, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outputPath, err)
	}
	fmt.Fprintf(c.app.out, "Wrote %d bytes to %s\n", len(payload), outputPath)
	return nil
}
