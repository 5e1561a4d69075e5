package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var address string

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Print the progress record of an address",
	Run:   progressRun,
}

func init() {
	rootCmd.AddCommand(progressCmd)
	progressCmd.Flags().StringVarP(&address, "address", "d", "", "Address to look up, defaults to the wallet.")
}

func progressRun(cmd *cobra.Command, args []string) {
	addr, err := selfOr(address)
	if err != nil {
		log.Fatal(err)
	}

	if err := query(escapeRoute("progress", addr)); err != nil {
		log.Fatal(err)
	}
}
