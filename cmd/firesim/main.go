package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/urbanfire/backend/internal/domain"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "firesim",
		Short:        "Urban fire spread simulator",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	var (
		opts     runOptions
		scenario string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a spread simulation from flags or a scenario file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if scenario != "" {
				return runScenario(cmd.OutOrStdout(), scenario, opts.format)
			}
			if !cmd.Flags().Changed("lat") || !cmd.Flags().Changed("lon") {
				return errMissingOrigin
			}
			return runSimulate(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&scenario, "scenario", "s", "", "YAML scenario file (overrides the parameter flags)")
	f.Float64Var(&opts.params.OriginLat, "lat", 0, "origin latitude in degrees")
	f.Float64Var(&opts.params.OriginLon, "lon", 0, "origin longitude in degrees")
	f.Float64VarP(&opts.params.WindSpeed, "wind", "w", domain.DefaultWindSpeed, "base wind speed in km/h")
	f.Float64VarP(&opts.params.BuildingDensity, "density", "d", domain.DefaultBuildingDensity, "building density in percent")
	f.IntVarP(&opts.params.TimeSteps, "steps", "n", domain.DefaultTimeSteps, "number of time steps")
	f.Float64VarP(&opts.params.TimeInterval, "interval", "i", domain.DefaultTimeInterval, "minutes per time step")
	f.StringVarP(&opts.format, "format", "f", "table", "output format: table or json")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [scenario.yaml]",
		Short: "Check a scenario file without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0])
		},
	}
}
