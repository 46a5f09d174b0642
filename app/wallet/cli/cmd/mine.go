package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Ask the node to mine its pending records.",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
}

func mineRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var resp struct {
		Message string `json:"message"`
		Block   block  `json:"block"`
	}
	if err := newClient(nodeURL).post(ctx, "/v1/mining/mine", nil, &resp); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	fmt.Fprintln(cmd.OutOrStdout(), "Block:", resp.Block.Hash, "Nonce:", resp.Block.Nonce)

	return nil
}
