package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func loginCmd(ctx context.Context) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			defer a.cleanup()

			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				var err error
				if email, err = promptField(reader, "Email: "); err != nil {
					return err
				}
			}
			password, err := promptField(reader, "Password: ")
			if err != nil {
				return err
			}

			if err := a.session.Login(ctx, email, password); err != nil {
				return err
			}
			if user, ok := a.session.User(); ok {
				fmt.Printf("Logged in as %s.\n", user.Email)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func signupCmd(ctx context.Context) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account (then login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			defer a.cleanup()

			reader := bufio.NewReader(os.Stdin)
			if email == "" {
				var err error
				if email, err = promptField(reader, "Email: "); err != nil {
					return err
				}
			}
			password, err := promptField(reader, "Password: ")
			if err != nil {
				return err
			}

			if err := a.session.Signup(ctx, email, password); err != nil {
				return err
			}
			fmt.Println("Account created! Please login.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func logoutCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			defer a.cleanup()

			a.session.Clear(ctx)
			fmt.Println("Logged out.")
			return nil
		},
	}
}
