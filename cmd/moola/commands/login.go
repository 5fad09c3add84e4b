package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"moola/internal/domain"
	"moola/internal/gateway"
	"moola/internal/services/auth"
)

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Sign in with username (or e-mail) and password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var creds domain.Credentials
			var err error
			if len(args) == 1 {
				creds.Username = args[0]
			} else if creds.Username, err = ask.line("Username or e-mail"); err != nil {
				return err
			}
			if creds.Password, err = ask.secret("Password"); err != nil {
				return err
			}

			err = appCtx.Auth.SignIn(cmd.Context(), creds)
			var fe auth.FieldErrors
			switch {
			case errors.As(err, &fe):
				printFieldErrors(cmd, fe)
				return errors.New("sign-in form invalid")
			case gateway.IsUnauthorized(err):
				return errors.New(gateway.MessageOf(err, "invalid credentials"))
			case err != nil:
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed in.")
			return nil
		},
	}
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return appCtx.Auth.SignOut(cmd.Context())
		},
	}
}

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session is active",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "session: %s (root: %s)\n",
				appCtx.Session.State(), appCtx.Session.Root())
			return nil
		},
	}
}

func printFieldErrors(cmd *cobra.Command, fe auth.FieldErrors) {
	for field, msg := range fe {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", field, msg)
	}
}
