package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"moola/internal/domain"
	"moola/internal/services/auth"
)

// register walks the three sign-up steps, re-asking a step until it validates.
func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var reg domain.Registration

			steps := []struct {
				step   int
				fields []field
			}{
				{auth.StepAccount, []field{
					{"E-mail", &reg.Email, false},
					{"Username", &reg.Username, false},
					{"Password", &reg.Password, true},
				}},
				{auth.StepName, []field{
					{"First name", &reg.FirstName, false},
					{"Last name", &reg.LastName, false},
				}},
				{auth.StepIdentity, []field{
					{"National ID", &reg.Identity, false},
					{"Phone number", &reg.PhoneNumber, false},
				}},
			}

			for _, s := range steps {
				for {
					fmt.Fprintf(cmd.OutOrStdout(), "Step %d of %d\n", s.step, len(steps))
					if err := askFields(s.fields); err != nil {
						return err
					}
					err := auth.ValidateStep(s.step, reg)
					var fe auth.FieldErrors
					if errors.As(err, &fe) {
						printFieldErrors(cmd, fe)
						continue
					}
					if s.step == auth.StepAccount {
						free, err := appCtx.Auth.UsernameAvailable(ctx, domain.Username(reg.Username))
						if err != nil {
							return err
						}
						if !free {
							fmt.Fprintln(cmd.ErrOrStderr(), "  username: already taken")
							continue
						}
					}
					break
				}
			}

			if err := appCtx.Auth.SignUp(ctx, reg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Account created. Run `moola login` to sign in.")
			return nil
		},
	}
	return cmd
}

type field struct {
	label  string
	dst    *string
	secret bool
}

func askFields(fields []field) error {
	for _, f := range fields {
		var (
			v   string
			err error
		)
		if f.secret {
			v, err = ask.secret(f.label)
		} else {
			v, err = ask.line(f.label)
		}
		if err != nil {
			return err
		}
		*f.dst = v
	}
	return nil
}
