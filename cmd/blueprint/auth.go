package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/blueprint-fantasy/internal/app"
	"github.com/riskibarqy/blueprint-fantasy/internal/usecase"
)

func newAuthCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{Use: "auth", Short: "Sign up, log in and manage the local session"}

	var signup usecase.SignupInput
	signupCmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			u, err := a.Auth.Signup(ctx, signup)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "signed up as %s (%s)\n", u.Username, u.Email)
			return err
		}),
	}
	signupCmd.Flags().StringVar(&signup.Name, "name", "", "display name")
	signupCmd.Flags().StringVar(&signup.Email, "email", "", "email address")
	signupCmd.Flags().StringVar(&signup.Password, "password", "", "password (6-72 characters)")

	var login usecase.LoginInput
	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			u, err := a.Auth.Login(ctx, login)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "logged in as %s\n", u.Username)
			return err
		}),
	}
	loginCmd.Flags().StringVar(&login.Email, "email", "", "email address")
	loginCmd.Flags().StringVar(&login.Password, "password", "", "password")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the local session",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			if err := a.Auth.Logout(ctx); err != nil {
				return err
			}
			_, err := fmt.Fprintln(out, "logged out")
			return err
		}),
	}

	whoamiCmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: c.run(func(ctx context.Context, a *app.App, out io.Writer, _ []string) error {
			p, err := a.Auth.CurrentPrincipal(ctx)
			if err != nil {
				return err
			}
			if p.Anonymous() {
				_, err = fmt.Fprintln(out, "not logged in")
				return err
			}
			_, err = fmt.Fprintf(out, "%s (%s) id=%s\n", p.Name, p.Username, p.UserID)
			return err
		}),
	}

	cmd.AddCommand(signupCmd, loginCmd, logoutCmd, whoamiCmd)
	return cmd
}
