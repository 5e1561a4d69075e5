package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var username string

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the wallet with the ledger",
	Run:   registerRun,
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&username, "username", "n", "", "Display name for the account.")
}

func registerRun(cmd *cobra.Command, args []string) {
	if err := submit("register", map[string]any{"username": username}); err != nil {
		log.Fatal(err)
	}
}
