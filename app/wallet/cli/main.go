// This program sends requests to a crosspay node.
package main

import "github.com/ardanlabs/crosspay/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
