// Package main provides the vastra catalog CLI.
//
//	vastra serve                # start the HTTP server
//	vastra route:list           # list API routes
//	vastra db:indexes           # apply pending index migrations
//	vastra db:indexes:rollback  # rollback the last batch
//	vastra db:indexes:status    # show migration status
//	vastra db:seed              # seed starter categories and brands
//	vastra assets:sweep         # report asset files no product references
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import migrations so their init() funcs run and register themselves.
	_ "github.com/shashiranjanraj/vastra/database/migrations"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "vastra",
	Short: "Vastra — catalog service CLI",
	Long:  "Vastra is a product catalog service. Use this CLI to run the server and manage its data.",
}

func init() {
	// Server
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)

	// Database
	rootCmd.AddCommand(dbIndexesCmd)
	rootCmd.AddCommand(dbIndexesRollbackCmd)
	rootCmd.AddCommand(dbIndexesStatusCmd)
	rootCmd.AddCommand(dbSeedCmd)

	// Assets
	rootCmd.AddCommand(assetsSweepCmd)
}
