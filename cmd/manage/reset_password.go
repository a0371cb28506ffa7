package main

import (
	"errors"
	"fmt"

	users_services "picktask-backend/internal/features/users/services"

	"github.com/spf13/cobra"
)

var resetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Set a new password for a user",
	Args:  cobra.NoArgs,
	RunE:  runResetPassword,
}

func init() {
	resetPasswordCmd.Flags().String("username", "", "Username of the user")
	resetPasswordCmd.Flags().String("new-password", "", "New password, at least 8 characters")
}

func runResetPassword(cmd *cobra.Command, args []string) error {
	username, err := cmd.Flags().GetString("username")
	if err != nil {
		return err
	}

	newPassword, err := cmd.Flags().GetString("new-password")
	if err != nil {
		return err
	}

	if username == "" || newPassword == "" {
		return errors.New("both --username and --new-password are required")
	}

	err = users_services.GetUserService().ChangeUserPasswordByUsername(username, newPassword)
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Password for %s was reset\n", username)
	return nil
}
