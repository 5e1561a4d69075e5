// This program provides a wallet to sign and submit progress updates to
// the relay.
package main

import "github.com/ardanlabs/learnchain/app/wallet/cli/cmd"

func main() {
	cmd.Execute()
}
