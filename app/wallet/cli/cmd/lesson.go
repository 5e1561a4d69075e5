package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var lessonID string

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Mark a lesson complete",
	Run:   lessonRun,
}

func init() {
	rootCmd.AddCommand(lessonCmd)
	lessonCmd.Flags().StringVarP(&lessonID, "id", "i", "", "Id of the lesson.")
}

func lessonRun(cmd *cobra.Command, args []string) {
	if err := submit("lessons/complete", map[string]any{"lessonId": lessonID}); err != nil {
		log.Fatal(err)
	}
}
