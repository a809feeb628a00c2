package main

import (
	"fmt"
	"os"

	"axelmotors/config"
	"axelmotors/database"
	"axelmotors/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var configPath string

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "axelmotors",
		Short:         "Axel Motors tools marketplace API",
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Migrate, seed and start the HTTP server",
		RunE:  runServe,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Migrate the schema and seed tools, then exit",
		RunE:  runMigrate,
	})
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runMigrate(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.NewLogger(cfg.Log.Service, cfg.Log.Env)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	return prepareDatabase(db, cfg.Database.SeedFile, logger)
}

func prepareDatabase(db *gorm.DB, seedFile string, logger *zap.Logger) error {
	if err := database.Migrate(db); err != nil {
		return err
	}
	seeded, err := database.SeedTools(db, seedFile)
	if err != nil {
		return err
	}
	logger.Info("database_ready", zap.String("seed_file", seedFile), zap.Int("tools_seeded", seeded))
	return nil
}
