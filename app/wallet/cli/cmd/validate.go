package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Ask the node to validate its chain.",
	RunE:  validateRun,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	var resp struct {
		IsValid bool   `json:"isValid"`
		Error   string `json:"error"`
	}
	if err := newClient(nodeURL).get(ctx, "/v1/chain/validate", &resp); err != nil {
		return err
	}

	if !resp.IsValid {
		return fmt.Errorf("chain is not valid: %s", resp.Error)
	}

	fmt.Fprintln(cmd.OutOrStdout(), "chain is valid")

	return nil
}
