package cmd

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var fundAmount string

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Deposit an amount into the account.",
	RunE:  fundRun,
}

func init() {
	rootCmd.AddCommand(fundCmd)
	fundCmd.Flags().StringVarP(&fundAmount, "amount", "v", "", "Amount to deposit.")
	fundCmd.MarkFlagRequired("amount")
}

func fundRun(cmd *cobra.Command, args []string) error {
	value, err := decimal.NewFromString(fundAmount)
	if err != nil {
		return fmt.Errorf("parsing amount: %w", err)
	}

	payload := struct {
		Account string          `json:"account"`
		Amount  decimal.Decimal `json:"amount"`
	}{
		Account: accountName,
		Amount:  value,
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var bal balance
	if err := newClient(nodeURL).post(ctx, "/v1/accounts/fund", payload, &bal); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", bal.Account, bal.Balance)

	return nil
}
