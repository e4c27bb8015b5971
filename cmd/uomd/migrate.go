package main

import (
	"context"

	"github.com/deppfellow/uom-service/internal/config"
	"github.com/deppfellow/uom-service/internal/database"
	loggerPkg "github.com/deppfellow/uom-service/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		logger := loggerPkg.New(cfg)

		return database.Migrate(context.Background(), logger, cfg)
	},
}
