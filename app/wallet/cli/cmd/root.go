// Package cmd contains the wallet commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	nodeURL     string
	accountName string
	timeout     time.Duration
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&nodeURL, "url", "u", "http://localhost:8080", "Url of the node.")
	rootCmd.PersistentFlags().StringVarP(&accountName, "account", "a", "alice@email.com", "Address of the account to act for.")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Time allowed for a request, retries included.")
}

var rootCmd = &cobra.Command{
	Use:          "wallet",
	Short:        "Simple wallet for a crosspay node",
	SilenceUsage: true,
}

// Execute runs the wallet command requested on the command line.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
