package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Invoker2025/lotofacil-api/internal/archive"
	"github.com/Invoker2025/lotofacil-api/internal/database"
)

func newArchiveCommand() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "archive",
		Short: "Archive commands",
	}
	rootCommand.AddCommand(newArchiveMigrateCommand(), newArchiveSyncCommand())
	return rootCommand
}

func newArchiveMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the archive schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig > %w", err)
			}
			if !cfg.Database.Enabled() {
				return fmt.Errorf("no archive database configured")
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			if err := archive.Migrate(cmd.Context(), db); err != nil {
				return fmt.Errorf("archive.Migrate > %w", err)
			}
			fmt.Println("archive schema is up to date")
			return nil
		},
	}
}

func newArchiveSyncCommand() *cobra.Command {
	var limit int

	command := &cobra.Command{
		Use:   "sync",
		Short: "Collect recent draws and store them in the archive",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig > %w", err)
			}
			if !cfg.Database.Enabled() {
				return fmt.Errorf("no archive database configured")
			}

			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open > %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			c := buildCore(cfg)
			syncer := archive.NewSyncer(c.collector, archive.NewDBRepository(db), nil)
			result, err := syncer.Sync(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("syncer.Sync > %w", err)
			}
			fmt.Printf("collected %d draws, archived %d, skipped %d\n",
				result.Collected, result.Archived, result.Skipped)
			return nil
		},
	}
	command.Flags().IntVar(&limit, "limit", 100, "how many recent draws to archive")
	return command
}
