package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var courseCmd = &cobra.Command{
	Use:   "course",
	Short: "Print the progress an address made on a course",
	Run:   courseRun,
}

func init() {
	rootCmd.AddCommand(courseCmd)
	courseCmd.Flags().StringVarP(&courseID, "course", "c", "", "Id of the course.")
	courseCmd.Flags().StringVarP(&address, "address", "d", "", "Address to look up, defaults to the wallet.")
}

func courseRun(cmd *cobra.Command, args []string) {
	addr, err := selfOr(address)
	if err != nil {
		log.Fatal(err)
	}

	if err := query(escapeRoute("courses", addr, courseID)); err != nil {
		log.Fatal(err)
	}
}
