// Package main implements the manage CLI for PickTask maintenance tasks.
package main

import (
	"os"

	"picktask-backend/internal/features/audit_logs"
	workspaces_services "picktask-backend/internal/features/workspaces/services"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "manage",
	Short:        "PickTask maintenance commands",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		audit_logs.SetupDependencies()
		workspaces_services.SetupDependencies()
	},
}

func init() {
	rootCmd.AddCommand(seedDemoCmd)
	rootCmd.AddCommand(resetPasswordCmd)
}
