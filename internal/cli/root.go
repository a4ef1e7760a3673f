// Package cli defines the cobra command tree for loudly.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/loudly/loudly/internal/client"
	"github.com/loudly/loudly/internal/config"
	"github.com/loudly/loudly/internal/db"
)

var (
	flagConfig string
	flagEnv    string
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "loudly",
		Short:         "A minimal hosted commenting service",
		Long:          "Serve comments for any page identified by a unique id, moderate entities, and manage comments from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "loudly.yaml", "server config file (optional)")
	root.PersistentFlags().StringVar(&flagEnv, "env", "", "environment: development, production or test (default: $LOUDLY_ENV or development)")
	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (default: from config)")

	root.AddCommand(
		newServeCmd(),
		newDigestCmd(),
		newCommentsCmd(),
		newCommentCmd(),
		newDeleteCmd(),
		newBanCmd(),
		newUnbanCmd(),
		newBannedCmd(),
		newLoginCmd(),
		newLogoutCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	return root
}

// loadServerConfig loads the server configuration using the --config,
// --env and --db flags.
func loadServerConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig, flagEnv)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	if flagDB != "" {
		cfg.Database = flagDB
	}
	return cfg, nil
}

// openDB opens the SQLite database named by the server config or --db.
func openDB() (*sql.DB, error) {
	cfg, err := loadServerConfig()
	if err != nil {
		return nil, err
	}
	return db.Open(cfg.Database)
}

// newAPIClient creates an HTTP client for the loudly API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// newAdminClient creates an API client and logs in with the stored admin
// credentials.
func newAdminClient() (*client.Client, error) {
	user, password := getCredentials()
	if user == "" {
		return nil, fmt.Errorf("no admin credentials configured (run 'loudly login')")
	}
	c := newAPIClient()
	if err := c.Login(user, password); err != nil {
		return nil, fmt.Errorf("logging in: %w", err)
	}
	return c, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeDB closes the database, logging any error to stderr.
func closeDB(database *sql.DB) {
	if err := database.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing database: %v\n", err)
	}
}
