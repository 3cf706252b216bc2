package cmd

import (
	"fmt"

	"github.com/misterclayt0n/mapty/internal/controller"
	"github.com/misterclayt0n/mapty/internal/models"
	"github.com/spf13/cobra"
)

var (
	addLat       float64
	addLng       float64
	addDistance  string
	addDuration  string
	addCadence   string
	addElevation string
)

var addCmd = &cobra.Command{
	Use:   "add [running|cycling]",
	Short: "Record a workout at a map position (defaults to your current position)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd, false)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		if err := a.startup(ctx, true); err != nil {
			return fmt.Errorf("Failed to load map: %w", err)
		}

		coords := a.mapView.Center()
		if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lng") {
			coords = models.Coordinates{addLat, addLng}
		}

		// Pick the extra field matching the type, like the form does.
		extra := addCadence
		if kind, err := models.ParseKind(args[0]); err == nil {
			a.ctl.OnTypeChanged(kind)
			if kind == models.KindCycling {
				extra = addElevation
			}
		}

		if err := a.mapView.Click(coords); err != nil {
			return err
		}
		a.form.Fill(controller.Submission{
			Type:               args[0],
			Distance:           addDistance,
			Duration:           addDuration,
			CadenceOrElevation: extra,
		})

		w, err := a.ctl.OnFormSubmitted(ctx, a.form.Values())
		if err != nil {
			return fmt.Errorf("Failed to record workout: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Recorded %s (id %s)\n", w.Description, w.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().Float64Var(&addLat, "lat", 0, "Latitude of the workout")
	addCmd.Flags().Float64Var(&addLng, "lng", 0, "Longitude of the workout")
	addCmd.Flags().StringVarP(&addDistance, "distance", "d", "", "Distance in km")
	addCmd.Flags().StringVarP(&addDuration, "duration", "t", "", "Duration in minutes")
	addCmd.Flags().StringVar(&addCadence, "cadence", "", "Cadence in steps/min (running)")
	addCmd.Flags().StringVar(&addElevation, "elevation", "", "Elevation gain in meters (cycling)")
	addCmd.MarkFlagRequired("distance")
	addCmd.MarkFlagRequired("duration")
	rootCmd.AddCommand(addCmd)
}
