package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"moola/internal/domain"
	"moola/internal/gateway"
	"moola/internal/wizard"
)

var errCancelled = errors.New("payment cancelled")

// payFlags prefill wizard input. A value that fails validation is asked for
// again interactively.
type payFlags struct {
	to        string
	amount    string
	reference string
	yes       bool
}

func (f *payFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.to, "to", "", "recipient phone number")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount to pay")
	cmd.Flags().StringVar(&f.reference, "reference", "", "meter number, tax id or other account reference")
	cmd.Flags().BoolVarP(&f.yes, "yes", "y", false, "submit without asking for confirmation")
}

func payCmd() *cobra.Command {
	var flags payFlags
	cmd := &cobra.Command{
		Use:   "pay <service>",
		Short: "Pay a service (see `moola services`)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayment(cmd, domain.ServiceType(args[0]), flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func airtimeCmd() *cobra.Command {
	var flags payFlags
	cmd := &cobra.Command{
		Use:   "airtime",
		Short: "Buy airtime for a phone number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPayment(cmd, domain.ServiceAirtime, flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func runPayment(cmd *cobra.Command, service domain.ServiceType, flags payFlags) error {
	if err := requireSession(); err != nil {
		return err
	}
	w, err := appCtx.Payments.Start(service)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	for {
		switch s := w.Step().(type) {
		case wizard.RecipientStep:
			if flags.to != "" {
				w.SetRecipient(flags.to)
				flags.to = ""
			} else if err := chooseRecipient(ctx, out, w); err != nil {
				return err
			}
			if _, still := w.Step().(wizard.RecipientStep); !still {
				continue
			}
			if err := step(cmd, w.Next(ctx)); err != nil {
				return err
			}

		case wizard.AmountStep:
			fmt.Fprintf(out, "Recipient: %s\n", s.Recipient)
			if flags.amount != "" {
				w.SetAmount(flags.amount)
				flags.amount = ""
			} else {
				a, err := ask.line(fmt.Sprintf("Amount (%s, 'b' to go back)", w.Config().Currency))
				if err != nil {
					return err
				}
				if a == "b" {
					_ = w.Back()
					continue
				}
				w.SetAmount(a)
			}
			if w.Config().Verify == wizard.VerifyAccount {
				if flags.reference != "" {
					w.SetReference(flags.reference)
					flags.reference = ""
				} else {
					r, err := ask.line("Reference (optional)")
					if err != nil {
						return err
					}
					w.SetReference(r)
				}
			}
			if err := step(cmd, w.Next(ctx)); err != nil {
				return err
			}

		case wizard.ConfirmStep:
			fmt.Fprintf(out, "Pay %d %s to %s", s.Amount, w.Config().Currency, s.Recipient)
			if s.Reference != "" {
				fmt.Fprintf(out, " (ref %s)", s.Reference)
			}
			fmt.Fprintln(out)
			if !flags.yes {
				a, err := ask.line("Confirm? [y = pay, b = back, n = cancel]")
				if err != nil {
					return err
				}
				switch strings.ToLower(a) {
				case "b":
					_ = w.Back()
					continue
				case "y", "yes":
				default:
					return errCancelled
				}
			}
			flags.yes = false

			err := w.Submit(ctx)
			if gateway.IsUnauthorized(err) {
				return errSignedOut
			}
			if w.Status() == wizard.StatusSuccess {
				fmt.Fprintln(out, "Payment successful.")
				return nil
			}
			fmt.Fprintf(out, "Payment failed: %s\n", w.Message())
			retry, err := ask.confirm("Try again?")
			if err != nil || !retry {
				return errCancelled
			}
		}
	}
}

// chooseRecipient resolves a typed number or a contact pick into the wizard.
func chooseRecipient(ctx context.Context, out io.Writer, w *wizard.Wizard) error {
	for {
		q, err := ask.line("Recipient (number or contact name, empty to cancel)")
		if err != nil {
			return err
		}
		if q == "" {
			return errCancelled
		}
		res, err := w.Search(ctx, q)
		if err != nil {
			return err
		}
		switch {
		case res.Direct != "":
			return nil
		case res.Unavailable:
			// Contacts are off; treat the query as the number and let Next judge it.
			w.SetRecipient(q)
			return nil
		case len(res.Matches) == 0:
			fmt.Fprintln(out, "No matching contacts. Type the number instead.")
			continue
		}

		for i, c := range res.Matches {
			fmt.Fprintf(out, "  %d) %s  %s\n", i+1, c.Name, c.PhoneNumbers[0])
		}
		pick, err := ask.line("Pick a contact (number from the list)")
		if err != nil {
			return err
		}
		n, err := strconv.Atoi(pick)
		if err != nil || n < 1 || n > len(res.Matches) {
			fmt.Fprintln(out, "Invalid choice.")
			continue
		}
		if err := w.SelectContact(ctx, res.Matches[n-1]); err != nil {
			var verr *wizard.ValidationError
			if errors.As(err, &verr) && !gateway.IsUnauthorized(err) {
				fmt.Fprintf(out, "  %s\n", verr.Message(wizard.FieldRecipient))
				continue
			}
			return err
		}
		return nil
	}
}

// step reports a failed transition. Field errors are printed and swallowed so
// the loop asks again; anything else ends the command.
func step(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	if gateway.IsUnauthorized(err) {
		return errSignedOut
	}
	var verr *wizard.ValidationError
	if errors.As(err, &verr) {
		for f, msg := range verr.Fields {
			fmt.Fprintf(cmd.ErrOrStderr(), "  %s: %s\n", f, msg)
		}
		return nil
	}
	return err
}
