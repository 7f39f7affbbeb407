package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ebb/internal/config"
	"ebb/internal/debuglog"
	"ebb/internal/tui"
)

// Version is set at build time.
var Version = "dev"

var (
	flagConfig   string
	flagFeeds    string
	flagLogLevel string
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "ebb",
		Short:   "Aggregate syndication feeds into one reverse-chronological list",
		Version: Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to configuration file")
	root.PersistentFlags().StringVar(&flagFeeds, "feeds", "", "path to feeds file (overrides config)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error, off")

	root.AddCommand(newFetchCmd())
	root.AddCommand(newStatusCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// loadConfig resolves the configuration once; everything downstream gets it
// passed explicitly.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagFeeds != "" {
		cfg.Paths.FeedsFile = flagFeeds
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Paths.EnsureDirs(); err != nil {
		return nil, err
	}
	if err := debuglog.Setup(cfg.Log.Level, cfg.Paths.LogFile); err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	return cfg, nil
}

func runTUI() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer debuglog.Close()

	env, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer env.Close()

	app := tui.NewApp(cfg, env.sources, env.orchestrator, env.tracker)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			path := flagConfig
			if path == "" {
				path = cfg.Paths.ConfigDir + "/config.toml"
			}
			if err := config.GenerateDefaultConfig(path); err != nil {
				return fmt.Errorf("generating config: %w", err)
			}
			fmt.Printf("Generated default configuration at: %s\n", path)
			return nil
		},
	})
	return configCmd
}
