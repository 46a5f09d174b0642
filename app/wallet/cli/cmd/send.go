package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ardanlabs/crosspay/foundation/blockchain/database"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	to          string
	amount      string
	currency    string
	fromCountry string
	toCountry   string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send a payment from the account.",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Address of the receiving account.")
	sendCmd.Flags().StringVarP(&amount, "amount", "v", "", "Amount to send.")
	sendCmd.Flags().StringVarP(&currency, "currency", "c", "USD", "Currency of the amount.")
	sendCmd.Flags().StringVar(&fromCountry, "from-country", "", "Country code of the sender.")
	sendCmd.Flags().StringVar(&toCountry, "to-country", "", "Country code of the receiver.")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
}

func sendRun(cmd *cobra.Command, args []string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("parsing amount: %w", err)
	}

	payload := struct {
		From        string          `json:"from"`
		To          string          `json:"to"`
		Amount      decimal.Decimal `json:"amount"`
		Currency    string          `json:"currency"`
		FromCountry string          `json:"from_country"`
		ToCountry   string          `json:"to_country"`
	}{
		From:        accountName,
		To:          to,
		Amount:      value,
		Currency:    currency,
		FromCountry: fromCountry,
		ToCountry:   toCountry,
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var resp struct {
		Success  bool   `json:"success"`
		RecordID string `json:"record_id"`
		Message  string `json:"message"`
	}
	if err := newClient(nodeURL).post(ctx, "/v1/tx/submit", payload, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return errors.New(resp.Message)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Record:", resp.RecordID)
	fmt.Fprintln(cmd.OutOrStdout(), "Fee:   ", database.Fee(value))

	return nil
}
