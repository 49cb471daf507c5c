package plan

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fitlog/cmd/client/cmd/types"
	"fitlog/internal/app/client"
	"fitlog/internal/domain/aiplan"
)

var (
	goal     string
	level    string
	age      int
	duration int
	notes    string
)

// PlanCmd asks the server to generate a workout plan. This is the one command
// that requires a connection: plan generation runs on the server side.
var PlanCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a workout plan",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
		if !ok || app == nil {
			return fmt.Errorf("application not initialized")
		}

		generated, err := app.GeneratePlan(cmd.Context(), aiplan.Request{
			Goal:            goal,
			ExperienceLevel: level,
			Age:             age,
			Duration:        duration,
			Notes:           notes,
		})
		if err != nil {
			return fmt.Errorf("generate plan: %w", err)
		}

		color.Green(generated.Name)
		if generated.Description != "" {
			fmt.Println(generated.Description)
		}
		fmt.Println()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Exercise\tSets\tReps\tWeight\tRest\tMuscle\t\n")
		for _, e := range generated.Exercises {
			fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%ds\t%s\t\n",
				e.Name, e.Sets, e.Reps, e.Weight, e.RestSeconds, e.MuscleGroup)
		}
		w.Flush()
		return nil
	},
}

func init() {
	PlanCmd.Flags().StringVarP(&goal, "goal", "g", "", "training goal, e.g. strength or weight loss")
	PlanCmd.Flags().StringVarP(&level, "level", "l", "", "experience level (beginner, intermediate, advanced)")
	PlanCmd.Flags().IntVar(&age, "age", 0, "age in years")
	PlanCmd.Flags().IntVar(&duration, "duration", 0, "session length, minutes")
	PlanCmd.Flags().StringVar(&notes, "notes", "", "free-form notes for the plan")
	_ = PlanCmd.MarkFlagRequired("goal")
}
