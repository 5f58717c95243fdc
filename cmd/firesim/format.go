package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urbanfire/backend/internal/domain"
)

func printResult(w io.Writer, r domain.SimulationResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "table", "":
		printTable(w, r)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want table or json)", format)
	}
}

func printTable(w io.Writer, r domain.SimulationResult) {
	p := r.Parameters
	fmt.Fprintf(w, "Origin:       %.4f, %.4f\n", r.Origin.Lat, r.Origin.Lon)
	fmt.Fprintf(w, "Wind:         %.2f km/h base, %.2f km/h urban\n", p.BaseWind, p.UrbanWind)
	fmt.Fprintf(w, "Density:      %.0f%%\n", p.BuildingDensity)
	fmt.Fprintf(w, "Spread rate:  %.3f m/min\n\n", p.SpreadRate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "STEP\tTIME (min)\tDISTANCE (m)\tINTENSITY\t")
	for _, z := range r.Zones {
		fmt.Fprintf(tw, "%d\t%g\t%.2f\t%.3f\t\n", z.Step, z.Time, z.Distance, z.Intensity)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nTotal time:    %g min\n", r.Summary.TotalTime)
	fmt.Fprintf(w, "Max distance:  %.2f m\n", r.Summary.MaxDistance)
	fmt.Fprintf(w, "Affected area: %.2f m²\n", r.Summary.AffectedArea)
}
