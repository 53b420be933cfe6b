package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/henrytill/notes-go/internal/app"
	"github.com/henrytill/notes-go/internal/config"
	"github.com/henrytill/notes-go/internal/formatter"
)

type cli struct {
	stdin io.Reader

	verbose    bool
	configPath string
	apiURL     string
	stateDir   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd(stdin io.Reader) *cobra.Command {
	c := &cli{stdin: stdin}

	rootCmd := &cobra.Command{
		Use:   "notes",
		Short: "Command-line client for the notes service",
		Long: `notes keeps a local session for the notes service and lets you list,
add, import and flag notes from the terminal.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if c.verbose {
				level = slog.LevelDebug
			}

			opts := &slog.HandlerOptions{
				Level: level,
			}
			c.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
			slog.SetDefault(c.logger)

			return c.loadConfig(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&c.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/notes/config.yaml)")
	flags.StringVar(&c.apiURL, "api-url", "", "Base URL of the notes service")
	flags.StringVar(&c.stateDir, "state-dir", "", "Directory holding the stored session")

	rootCmd.AddCommand(
		c.newLoginCmd(),
		c.newLogoutCmd(),
		c.newWhoamiCmd(),
		c.newListCmd(),
		c.newAddCmd(),
		c.newToggleCmd(),
		c.newImportCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func (c *cli) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("api-url") {
		cfg.APIURL = c.apiURL
	}
	if cmd.Flags().Changed("state-dir") {
		cfg.StateDir = c.stateDir
	}

	c.cfg = cfg
	c.logger.Debug("config loaded", "api_url", cfg.APIURL, "state_dir", cfg.StateDir)
	return nil
}

// newApp builds the client and routes notifications to stderr. The caller
// closes it.
func (c *cli) newApp(cmd *cobra.Command) *app.App {
	a := app.New(c.cfg, app.WithLogger(c.logger))
	stderr := cmd.ErrOrStderr()
	a.OnNotification(func(msg string) {
		if msg != "" {
			fmt.Fprintln(stderr, formatter.Notice(msg))
		}
	})
	return a
}
