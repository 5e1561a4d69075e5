package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var (
	stepID   string
	courseID string
)

var stepCmd = &cobra.Command{
	Use:   "step",
	Short: "Mark a step of a course complete",
	Run:   stepRun,
}

func init() {
	rootCmd.AddCommand(stepCmd)
	stepCmd.Flags().StringVarP(&stepID, "id", "i", "", "Id of the step.")
	stepCmd.Flags().StringVarP(&courseID, "course", "c", "", "Id of the course the step belongs to.")
}

func stepRun(cmd *cobra.Command, args []string) {
	if err := submit("steps/complete", map[string]any{"stepId": stepID, "courseId": courseID}); err != nil {
		log.Fatal(err)
	}
}
