package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loudly/loudly/internal/entity"
)

func newBanCmd() *cobra.Command {
	return newModerationCmd("ban", "Stop an entity from receiving comments", true)
}

func newUnbanCmd() *cobra.Command {
	return newModerationCmd("unban", "Allow an entity to receive comments again", false)
}

func newModerationCmd(name, short string, banned bool) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   name + " <uniqueId>",
		Short: short,
		Long: short + ". Writes to the local database by default; with --remote " +
			"it goes through the API using the stored admin credentials.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetBanned(cmd.Context(), args[0], banned, remote)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "moderate through the API server")

	return cmd
}

func runSetBanned(ctx context.Context, uniqueID string, banned, remote bool) error {
	if remote {
		c, err := newAdminClient()
		if err != nil {
			return err
		}
		if err := c.SetBanned(uniqueID, banned); err != nil {
			return err
		}
	} else {
		database, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(database)

		if err := entity.NewRepository(database).SetBanned(ctx, uniqueID, banned); err != nil {
			return err
		}
	}

	e := entity.Entity{ID: uniqueID, Banned: banned}
	if isJSON() {
		return printJSON(e)
	}

	printEntity(&e)
	return nil
}

func newBannedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banned",
		Short: "List banned entities",
		Long:  "List every entity in the local database that cannot receive comments.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBanned(cmd.Context())
		},
	}
}

func runBanned(ctx context.Context) error {
	database, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(database)

	entities, err := entity.NewRepository(database).ListBanned(ctx)
	if err != nil {
		return fmt.Errorf("listing banned entities: %w", err)
	}

	if isJSON() {
		return printJSON(entities)
	}

	return printEntityTable(entities)
}
