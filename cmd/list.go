package cmd

import (
	"fmt"

	"github.com/misterclayt0n/mapty/internal/terminal"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every recorded workout and its map marker",
	RunE: func(cmd *cobra.Command, args []string) error {
		terminal.PrintBoxedHeader(cmd.OutOrStdout(), "WORKOUTS")

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.startup(cmd.Context(), false); err != nil {
			return fmt.Errorf("Failed to load workouts: %w", err)
		}

		if len(a.ctl.Workouts()) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No workouts recorded yet. Add one with `mapty add`.")
		}
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show [workout-id]",
	Short: "Center the map on a workout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.startup(cmd.Context(), true); err != nil {
			return fmt.Errorf("Failed to load map: %w", err)
		}
		return a.ctl.OnWorkoutSelected(args[0])
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}
