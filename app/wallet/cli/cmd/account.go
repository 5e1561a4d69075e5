package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Print the address the relay credits for the wallet key",
	Run:   accountRun,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func accountRun(cmd *cobra.Command, args []string) {
	addr, err := selfOr("")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("%s: %s\n", strings.TrimSuffix(accountName, keyExtension), addr)
	fmt.Printf("key: %s\n", getPrivateKeyPath())
}
