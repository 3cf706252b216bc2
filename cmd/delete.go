package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var assumeYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete [workout-id]",
	Short: "Delete a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, assumeYes)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.startup(ctx, false); err != nil {
			return fmt.Errorf("Failed to load workouts: %w", err)
		}

		deleted, err := a.ctl.OnDeleteRequested(ctx, args[0])
		if err != nil {
			return fmt.Errorf("Failed to delete workout: %w", err)
		}
		if !deleted {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Workout %s deleted\n", args[0])
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete every workout",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, assumeYes)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.startup(ctx, false); err != nil {
			return fmt.Errorf("Failed to load workouts: %w", err)
		}

		deleted, err := a.ctl.OnDeleteAllRequested(ctx)
		if err != nil {
			return fmt.Errorf("Failed to delete workouts: %w", err)
		}
		if !deleted {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ All workouts deleted")
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	resetCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(resetCmd)
}
