package root

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"arcane/internal/engine"
	"arcane/internal/ui"
)

func newRegisterCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "register <username>",
		Short: "Create a user and log in",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("username is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := svc.Register(ctx, args[0], email)
			if err != nil {
				return err
			}
			if _, _, err := svc.Login(ctx, u.Username); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Good.Render(ui.IconSparkle+" Awakened"), u.Username, ui.Muted.Render("(rank "+engine.RankOf(u.XP).Name+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Email address (optional, unique)")
	return cmd
}

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <username|email>",
		Short: "Switch the active user and run the daily check",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("username or email is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sess, u, err := svc.Login(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.Good.Render("Logged in as"), u.Username)
			rep, err := svc.StartSession(ctx, sess)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), rep)
			return nil
		},
	}
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the active user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Logged out."))
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			sess, err := svc.CurrentSession(ctx)
			if err != nil {
				return err
			}
			u, err := svc.User(ctx, sess)
			if err != nil {
				return err
			}
			line := u.Username
			if u.Email != "" {
				line += " " + ui.Muted.Render("<"+u.Email+">")
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			return nil
		},
	}
}
