package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

// vastra assets:sweep — report-only orphan scan.
var assetsSweepCmd = &cobra.Command{
	Use:   "assets:sweep",
	Short: "Report asset files no product references (deletes nothing)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		storage.Connect()

		sweeper := services.NewSweepService(repositories.NewProductRepository())
		report, err := sweeper.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Scanned %d files, %d referenced, %d orphaned.\n",
			report.Scanned, report.Referenced, len(report.Orphans))
		for _, name := range report.Orphans {
			fmt.Println("  •", config.AssetNamespace()+"/"+name)
		}
		return nil
	},
}
