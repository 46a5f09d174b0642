package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print the account balance.",
	RunE:  balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var bals balances
	if err := newClient(nodeURL).get(ctx, "/v1/balances/list/"+accountName, &bals); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "For Account:", accountName)
	if len(bals.Balances) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), bals.Balances[0].Balance)
	}

	return nil
}
