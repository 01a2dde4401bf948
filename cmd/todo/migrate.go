package main

import (
	"context"

	"github.com/eduroese/To-Do-App/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the tables or indexes the store needs, then exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		dial, err := db.NewDialer(cfg.Store)
		if err != nil {
			logger.Error("failed to configure store", "err", err)
			return err
		}

		// The dialer migrates every connection it opens.
		s, err := dial(cmd.Context())
		if err != nil {
			logger.Error("migration failed", "driver", cfg.Store.Driver, "err", err)
			return err
		}
		defer s.Close(context.Background())

		logger.Info("store migrated", "driver", cfg.Store.Driver)
		return nil
	},
}
