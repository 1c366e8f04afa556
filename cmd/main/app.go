package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"bookCatalog/internal/config"
	"bookCatalog/internal/server"
	"bookCatalog/internal/storage"
	"bookCatalog/package/logger"
)

var configPath string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "bookcatalog",
		Short:         "Authenticated book catalog REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yml", "path to the YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE:  runServe,
		},
		newMigrateCmd(),
		newUserAddCmd(),
	)
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Configure(cfg.Log.Level, cfg.IsDebug)
	logger.Log.Info(cfg.String())
	return cfg, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Log.Info("Opening storage")
	st, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Log.Error("Can not close storage: " + err.Error())
		}
	}()

	logger.Log.Info("Starting app")
	return server.Run(ctx, cfg, server.NewHandler(cfg, st))
}
