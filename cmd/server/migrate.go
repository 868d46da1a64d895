package main

import (
	"github.com/fatih/color"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the SQLite schema and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := database.Open(dbPath)
			if err != nil {
				return err
			}
			database.Close(db)

			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "schema of %s is up to date\n", dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "./data/monitor.db", "path to the SQLite database")
	return cmd
}
