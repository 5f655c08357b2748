package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/EgehanKilicarslan/notekeeper/internal/database/service"
)

var (
	userEmail string
	userName  string
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Long:  `Create an account with the same checks as the signup form. The password is read twice from the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password1, err := promptPassword(cmd.OutOrStdout(), "Password: ")
		if err != nil {
			return err
		}
		password2, err := promptPassword(cmd.OutOrStdout(), "Password (Confirm): ")
		if err != nil {
			return err
		}

		svc, err := openServices()
		if err != nil {
			return err
		}
		defer svc.Close()

		user, err := svc.auth.CreateAccount(context.Background(), service.SignUpInput{
			Email:     userEmail,
			FirstName: userName,
			Password1: password1,
			Password2: password2,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created user %d <%s>\n", user.ID, user.Email)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Email address (login identifier)")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "First name")
	userCreateCmd.MarkFlagRequired("email")
	userCreateCmd.MarkFlagRequired("name")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)
}
