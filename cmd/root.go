package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rsehgal/adaptest/internal/config"
	"github.com/rsehgal/adaptest/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "adaptest",
	Short: "Adaptive assessment client for the terminal",
	Long: "Adaptest — terminal client for server-driven adaptive assessments.\n" +
		"Take a session, watch the ability estimate converge, and compare\n" +
		"your result against the peer population.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default: XDG config dir)")
	rootCmd.PersistentFlags().String("server", "", "Assessment server URL (overrides ADAPTEST_SERVER env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite history database (overrides ADAPTEST_DB env var)")
	rootCmd.Flags().Bool("demo", false, "Run against the built-in mock server")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves the config file path and applies flag overrides on
// top of the file and environment: flags beat env beats file.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.ServerURL = server
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	if demo, _ := cmd.Flags().GetBool("demo"); demo {
		cfg.Demo = true
	}
	return cfg, nil
}

// resolveDBPath returns the history database path from the resolved
// config, falling back to the default XDG data path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
