package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/loudly/loudly/internal/config"
	"github.com/loudly/loudly/internal/db"
	"github.com/loudly/loudly/internal/logging"
	"github.com/loudly/loudly/internal/session"
	"github.com/loudly/loudly/internal/web"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the comment server",
		Long:  "Start the HTTP server for the comment API.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "address to listen on (default: from config, :3000)")

	return cmd
}

func runServe(ctx context.Context, addr string) error {
	cfg, err := loadServerConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	logging.Setup(cfg.DevMode())

	database, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer closeDB(database)

	store, closeStore, err := newSessionStore(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer closeStore()

	srv, err := web.NewServer(database, cfg, store)
	if err != nil {
		return err
	}

	return srv.ListenAndServe(cfg.Addr)
}

// newSessionStore builds the session store selected by cfg. The returned
// func releases whatever the store holds beyond the database. The SQLite
// store drops expired sessions before the server starts.
func newSessionStore(ctx context.Context, cfg config.Config, database *sql.DB) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case config.SessionRedis:
		rc := session.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		closeRedis := func() {
			if err := rc.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "warning: closing redis client: %v\n", err)
			}
		}
		rs := session.NewRedisStore(rc)
		if err := rs.Ping(ctx); err != nil {
			closeRedis()
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		slog.Info("using redis sessions", "addr", cfg.RedisAddr)
		return rs, closeRedis, nil
	default:
		ss := session.NewSQLiteStore(database)
		n, err := ss.Cleanup(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("cleaning sessions: %w", err)
		}
		if n > 0 {
			slog.Info("removed expired sessions", "count", n)
		}
		return ss, func() {}, nil
	}
}
