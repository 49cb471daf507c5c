package exercise

import (
	"fmt"

	"github.com/spf13/cobra"

	"fitlog/internal/app/client"
)

var (
	createWorkoutID   string
	createName        string
	createSets        int
	createReps        int
	createWeight      float64
	createRestSeconds int
	createMuscleGroup string
	createMediaURL    string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add an exercise to a workout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		created, err := app.Exercises.Create(cmd.Context(), client.Exercise{
			WorkoutID:   createWorkoutID,
			Name:        createName,
			Sets:        createSets,
			Reps:        createReps,
			Weight:      createWeight,
			RestSeconds: createRestSeconds,
			MuscleGroup: createMuscleGroup,
			MediaURL:    createMediaURL,
		})
		if err != nil {
			return fmt.Errorf("create exercise: %w", err)
		}

		fmt.Printf("Created exercise %s%s\n", created.ID, pendingMark(created.Pending))
		return nil
	},
}

func init() {
	CreateCmd.Flags().StringVarP(&createWorkoutID, "workout", "w", "", "workout id")
	CreateCmd.Flags().StringVarP(&createName, "name", "n", "", "exercise name")
	CreateCmd.Flags().IntVar(&createSets, "sets", 3, "number of sets")
	CreateCmd.Flags().IntVar(&createReps, "reps", 10, "repetitions per set")
	CreateCmd.Flags().Float64Var(&createWeight, "weight", 0, "working weight, kg")
	CreateCmd.Flags().IntVar(&createRestSeconds, "rest", 60, "rest between sets, seconds")
	CreateCmd.Flags().StringVar(&createMuscleGroup, "muscle", "", "primary muscle group")
	CreateCmd.Flags().StringVar(&createMediaURL, "media", "", "demo video or image URL")
	_ = CreateCmd.MarkFlagRequired("workout")
	_ = CreateCmd.MarkFlagRequired("name")
}
