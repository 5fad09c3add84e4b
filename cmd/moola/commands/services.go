package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func servicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "services",
		Short: "List payable services",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range appCtx.Payments.Services() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Type, s.Label, s.ReferenceHint)
			}
			return tw.Flush()
		},
	}
}

func historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent payment attempts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			txs, err := appCtx.Payments.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(txs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No transactions yet.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tSERVICE\tRECIPIENT\tAMOUNT\tSTATUS")
			for _, tx := range txs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%d %s\t%s\n",
					tx.CreatedAt.Local().Format("2006-01-02 15:04"),
					tx.Service, tx.Recipient, tx.Amount, tx.Currency, tx.Status)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	return cmd
}
