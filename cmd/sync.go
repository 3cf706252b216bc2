package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all saved workouts to a TOML file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile := "workouts.toml" // Default filename.
		if len(args) == 1 {
			outputFile = args[0]
		}

		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		n, err := a.adapter.Export(cmd.Context(), outputFile)
		if err != nil {
			return fmt.Errorf("error exporting workouts: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Exported %d workouts to %s\n", n, outputFile)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [dump-file]",
	Short: "Replace the saved workouts with the ones in a TOML dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		workouts, err := a.adapter.Import(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("Failed to import workouts: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported %d workouts from %s\n", len(workouts), args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
