package cli

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"daily-log/internal/api"
	"daily-log/internal/config"
	"daily-log/internal/repository/github"
	"daily-log/internal/web"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config

	// built lazily so flag overrides take effect first
	repo github.Repository
	api  api.API

	addOpts    AddOptions
	exportPath string
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{config: cfg}

	root.cmd = &cobra.Command{
		Use:   "dlog",
		Short: "A personal daily habit log backed by a GitHub-hosted CSV file",
		Long: `Daily Log (dlog) keeps one CSV row per day of habit data in a file
inside a GitHub repository, committed through the contents API.

EXAMPLES:
  dlog serve                                # Start the web form on the configured port
  dlog add --screen 3:30 --study 2:00 --wake 7:15 --quality 7
  dlog list                                 # Show the most recent entries
  dlog list 2025-01-01 2025-01-31          # Show one month of entries
  dlog summary 2025-01-01                   # Averages and correlations since a date
  dlog export > daily_log.csv               # Dump the stored CSV

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > defaults

  Store configuration (all five are required):
    DLOG_GITHUB_OWNER                      Repository owner
    DLOG_GITHUB_REPO                       Repository name
    DLOG_GITHUB_FILE_PATH                  Path of the CSV file inside the repository
    DLOG_GITHUB_BRANCH                     Branch to read and commit to
    DLOG_GITHUB_TOKEN                      Token with contents write access

  Optional:
    DLOG_COMMIT_MESSAGE                    Commit message for pushes (default: Update daily log)
    DLOG_GITHUB_TIMEOUT                    HTTP timeout (default: 15s)
    DLOG_PORT                              Web server port (default: 8000)
    DLOG_CSRF_KEY                          32-byte CSRF signing key (default: random per process)
    DLOG_DISPLAY_RECENT_ROWS               Rows shown by list and the web page (default: 3)
    DLOG_APP_TIMEOUT                       Command timeout (default: 60s)
    DLOG_APP_VERBOSE                       Enable verbose output (default: false)

  A .env file in the working directory is merged into the environment at startup.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// deps builds the store client and the API on first use, after the flag
// overrides have been applied to the configuration.
func (r *RootCommand) deps() (api.API, github.Repository) {
	if r.api == nil {
		r.repo = github.New(r.config.GitHub)
		r.api = api.New(r.repo, r.config)
	}
	return r.api, r.repo
}

// SetAPI injects prebuilt dependencies, used by tests.
func (r *RootCommand) SetAPI(apiInstance api.API, repo github.Repository) {
	r.api = apiInstance
	r.repo = repo
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Store configuration
	flags.String("owner", "", "Repository owner (overrides DLOG_GITHUB_OWNER)")
	flags.String("repo", "", "Repository name (overrides DLOG_GITHUB_REPO)")
	flags.String("file-path", "", "CSV file path in the repository (overrides DLOG_GITHUB_FILE_PATH)")
	flags.String("branch", "", "Branch to commit to (overrides DLOG_GITHUB_BRANCH)")
	flags.String("commit-message", "", "Commit message for pushes (overrides DLOG_COMMIT_MESSAGE)")

	// Server configuration
	flags.String("port", "", "Web server port (overrides DLOG_PORT)")

	// Application configuration
	flags.Duration("app-timeout", 0, "Command timeout (overrides DLOG_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides DLOG_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web form",
		Long:  "Serve the entry form, the recent rows and the trends page over HTTP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, repo := r.deps()
			server := web.NewServer(repo, r.config, r.newLogger())
			return server.ListenAndServe()
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Append one day's entry",
		Long: `Append one entry to the log and push the whole table to the store.

Clock values use the H:MM form:

  dlog add --screen 3:30 --study 2:00 --wake 7:15 --quality 7 --meditation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			apiInstance, _ := r.deps()
			addHandler := NewAddCommand(NewAppWithConfig(apiInstance, r.config))
			return addHandler.Execute(ctx, r.addOpts)
		},
	}
	r.addEntryFlags(addCmd)

	listCmd := &cobra.Command{
		Use:   "list [from] [to]",
		Short: "List log entries",
		Long: `List log entries.

Without arguments the most recent rows are shown. With one or two dates
the rows inside that inclusive window are shown.

Examples:
  dlog list                           # Most recent entries
  dlog list 2025-01-01                # Entries since January 1st
  dlog list 2025-01-01 2025-01-31    # Entries in January`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			apiInstance, _ := r.deps()
			listHandler := NewListCommand(NewAppWithConfig(apiInstance, r.config))
			return listHandler.Execute(ctx, args)
		},
	}

	summaryCmd := &cobra.Command{
		Use:   "summary [from] [to]",
		Short: "Show averages and correlations",
		Long: `Show per-column averages and the pairwise correlations for the
selected date window. Without arguments the window spans the whole table.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			apiInstance, _ := r.deps()
			summaryHandler := NewSummaryCommand(NewAppWithConfig(apiInstance, r.config))
			return summaryHandler.Execute(ctx, args)
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the stored table as CSV",
		Long:  "Write the stored table as CSV to stdout, or to a file with --output.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), r.getAppTimeout())
			defer cancel()

			apiInstance, _ := r.deps()
			exportHandler := NewExportCommand(NewAppWithConfig(apiInstance, r.config))
			return exportHandler.Execute(ctx, r.exportPath)
		},
	}
	exportCmd.Flags().StringVarP(&r.exportPath, "output", "o", "", "Write the CSV to this file instead of stdout")

	r.cmd.AddCommand(
		serveCmd,
		addCmd,
		listCmd,
		summaryCmd,
		exportCmd,
	)
}

// addEntryFlags registers the per-column flags of the add command.
func (r *RootCommand) addEntryFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&r.addOpts.Date, "date", "", "Entry date, defaults to today (2006-01-02)")
	flags.StringVar(&r.addOpts.Screen, "screen", "", "Screen time as H:MM")
	flags.StringVar(&r.addOpts.Study, "study", "", "Study time as H:MM")
	flags.StringVar(&r.addOpts.Wake, "wake", "", "Wake-up time as H:MM")
	flags.IntVar(&r.addOpts.Quality, "quality", 5, "Study quality rating")
	flags.BoolVar(&r.addOpts.Ordinary, "ordinary", false, "Mark the day as ordinary")
	flags.BoolVar(&r.addOpts.Meditation, "meditation", false, "Meditated today")
	flags.BoolVar(&r.addOpts.MorningStudy, "morning-study", false, "Studied in the morning")
	flags.BoolVar(&r.addOpts.MorningPhone, "morning-phone", false, "Used the phone in the morning")
	flags.BoolVar(&r.addOpts.LunchPhone, "lunch-phone", false, "Used the phone at lunch")
	flags.BoolVar(&r.addOpts.DinnerPhone, "dinner-phone", false, "Used the phone at dinner")
	flags.BoolVar(&r.addOpts.Running, "running", false, "Went running")
	flags.BoolVar(&r.addOpts.P, "p", false, "P")
	flags.StringVar(&r.addOpts.Notes, "notes", "", "Free-form notes")
	flags.StringVar(&r.addOpts.Plan, "plan", "", "Plan and strategies for tomorrow")
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 60 * time.Second
}

// newLogger builds the server logger, honoring the verbose setting.
func (r *RootCommand) newLogger() *slog.Logger {
	level := slog.LevelInfo
	if r.config.Application.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	flags := r.cmd.PersistentFlags()

	// Store configuration
	if owner, _ := flags.GetString("owner"); owner != "" {
		r.config.GitHub.Owner = owner
	}
	if repo, _ := flags.GetString("repo"); repo != "" {
		r.config.GitHub.Repo = repo
	}
	if filePath, _ := flags.GetString("file-path"); filePath != "" {
		r.config.GitHub.FilePath = filePath
	}
	if branch, _ := flags.GetString("branch"); branch != "" {
		r.config.GitHub.Branch = branch
	}
	if msg, _ := flags.GetString("commit-message"); msg != "" {
		r.config.GitHub.CommitMessage = msg
	}

	// Server configuration
	if port, _ := flags.GetString("port"); port != "" {
		r.config.Server.Port = port
	}

	// Application configuration
	if appTimeout, _ := flags.GetDuration("app-timeout"); appTimeout > 0 {
		r.config.Application.Timeout = appTimeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return r.config.Validate()
}
