package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

var total uint64

var totalStepsCmd = &cobra.Command{
	Use:   "totalsteps",
	Short: "Set the number of steps in a course (owner only)",
	Run:   totalStepsRun,
}

func init() {
	rootCmd.AddCommand(totalStepsCmd)
	totalStepsCmd.Flags().StringVarP(&courseID, "course", "c", "", "Id of the course.")
	totalStepsCmd.Flags().Uint64VarP(&total, "total", "t", 0, "Number of steps in the course.")
}

func totalStepsRun(cmd *cobra.Command, args []string) {
	if err := submit("courses/totalsteps", map[string]any{"courseId": courseID, "totalSteps": total}); err != nil {
		log.Fatal(err)
	}
}
