package main

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/n0ko/wix-tui/internal/client"
	"github.com/n0ko/wix-tui/internal/config"
	"github.com/n0ko/wix-tui/internal/logger"
	"github.com/n0ko/wix-tui/internal/store"
	"github.com/n0ko/wix-tui/internal/ui"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "wix",
	Short: "Terminal mock-up of the wix messenger",
	Long: `wix is a terminal messenger mock-up. The first launch walks through
phone registration; afterwards the chats, contacts, Got assistant, profile,
settings and premium sections are available.

Key bindings:
  ctrl+space then g/c/o/p/s/m   Jump to Got, Chats, Contacts, Profile, Settings, Premium
  tab / shift+tab               Next / previous section
  /                             Search chats or contacts
  ctrl+e                        Compose in external editor (chat window)
  q or ctrl+c                   Quit

Files:
  Config:  ~/.config/wix/config.yaml (wix config init writes the defaults)
  Data:    ~/.config/wix/data
  Logs:    ~/.config/wix/wix.log`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), versionTemplate())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("wix %s\n  commit: %s\n", version, commit)
	}
	return fmt.Sprintf("wix %s\n", version)
}

// setup loads the configuration and starts file logging
func setup() (*config.Config, io.Closer, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("error loading config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	dir, err := config.ConfigDir()
	if err != nil {
		return nil, nil, err
	}
	closer, err := logger.Setup(dir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("error setting up logging: %w", err)
	}
	return cfg, closer, nil
}

// openStore opens the configured data directory
func openStore(cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("error opening store: %w", err)
	}
	return st, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, closer, err := setup()
	if err != nil {
		return err
	}
	defer closer.Close()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	log.Info().Str("version", version).Msg("starting wix")

	app := ui.NewApp(cfg, st, client.New(cfg.Endpoints))
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
