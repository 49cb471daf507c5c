// cmd/client/cmd/init.go
package cmd

import (
	"fitlog/cmd/client/cmd/auth"
	"fitlog/cmd/client/cmd/exercise"
	"fitlog/cmd/client/cmd/measure"
	"fitlog/cmd/client/cmd/plan"
	"fitlog/cmd/client/cmd/sync"
	"fitlog/cmd/client/cmd/workout"
)

func init() {
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)

	rootCmd.AddCommand(workout.WorkoutCmd)
	workout.WorkoutCmd.AddCommand(workout.ListCmd)
	workout.WorkoutCmd.AddCommand(workout.CreateCmd)
	workout.WorkoutCmd.AddCommand(workout.UpdateCmd)
	workout.WorkoutCmd.AddCommand(workout.DeleteCmd)

	rootCmd.AddCommand(exercise.ExerciseCmd)
	exercise.ExerciseCmd.AddCommand(exercise.ListCmd)
	exercise.ExerciseCmd.AddCommand(exercise.CreateCmd)
	exercise.ExerciseCmd.AddCommand(exercise.DeleteCmd)

	rootCmd.AddCommand(measure.WeightCmd)
	rootCmd.AddCommand(measure.BodyFatCmd)

	rootCmd.AddCommand(sync.SyncCmd)
	rootCmd.AddCommand(plan.PlanCmd)
}
