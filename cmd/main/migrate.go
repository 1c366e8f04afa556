package main

import (
	"github.com/spf13/cobra"

	"bookCatalog/internal/storage"
	"bookCatalog/package/logger"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the storage files or tables if they are missing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := storage.Open(cmd.Context(), cfg.Storage)
			if err != nil {
				return err
			}
			logger.Log.Infof("Storage %s is ready", cfg.Storage.Driver)
			return st.Close()
		},
	}
}
