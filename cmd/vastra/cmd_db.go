package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/database/seeders"
	"github.com/shashiranjanraj/vastra/pkg/database"
	"github.com/shashiranjanraj/vastra/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// vastra db:indexes
var dbIndexesCmd = &cobra.Command{
	Use:   "db:indexes",
	Short: "Apply all pending index migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running index migrations…")
		return migration.New(database.DB).Run(cmd.Context())
	},
}

// vastra db:indexes:rollback
var dbIndexesRollbackCmd = &cobra.Command{
	Use:   "db:indexes:rollback",
	Short: "Rollback the last batch of index migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Rolling back last batch…")
		return migration.New(database.DB).Rollback(cmd.Context())
	},
}

// vastra db:indexes:status
var dbIndexesStatusCmd = &cobra.Command{
	Use:   "db:indexes:status",
	Short: "Show the status of each index migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		return migration.New(database.DB).Status(cmd.Context())
	},
}

// vastra db:seed
var dbSeedCmd = &cobra.Command{
	Use:   "db:seed",
	Short: "Run all database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		fmt.Println("Running seeders…")
		return seeders.RunAll(cmd.Context(), database.DB)
	},
}
