package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the blocks of the chain.",
	RunE:  chainRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
}

func chainRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var blocks []block
	if err := newClient(nodeURL).get(ctx, "/v1/blocks/list", &blocks); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, blk := range blocks {
		ts := time.UnixMilli(int64(blk.TimeStamp)).UTC().Format(time.RFC3339)
		fmt.Fprintf(out, "#%d %s parent[%s] nonce[%d] %s\n", i, blk.Hash, blk.PrevBlockHash, blk.Nonce, ts)
		for _, rec := range blk.Records {
			fmt.Fprintf(out, "    %s hash[%s] %s -> %s %s %s fee[%s] %s\n", rec.ID, rec.Hash, rec.From, rec.To, rec.Amount, rec.Currency, rec.Fee, rec.Status)
		}
	}

	return nil
}
