package main

import (
	"fmt"

	"picktask-backend/internal/features/demo"

	"github.com/spf13/cobra"
)

var seedDemoCmd = &cobra.Command{
	Use:   "seed-demo",
	Short: "Create a demo team with a workspace, projects and tasks",
	Args:  cobra.NoArgs,
	RunE:  runSeedDemo,
}

func runSeedDemo(cmd *cobra.Command, args []string) error {
	result, err := demo.GetDemoSeeder().Seed()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !result.Created {
		fmt.Fprintln(out, "Demo data already exists, nothing to do")
		return nil
	}

	fmt.Fprintf(
		out,
		"Created workspace %q with %d users, %d projects and %d tasks\n",
		result.Workspace,
		result.Users,
		result.Projects,
		result.Tasks,
	)
	fmt.Fprintf(out, "Sign in as admin with password %s\n", demo.DemoPassword)

	return nil
}
