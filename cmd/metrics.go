package cmd

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/scenario-sim/scenario-sim/sim"
	"github.com/scenario-sim/scenario-sim/sim/metrics"
	"github.com/scenario-sim/scenario-sim/sim/record"
)

var (
	metricsRecording string // recording to analyze
	metricsOut       string // report output path
	metricsActor     string // actor to project, the hero by default
	metricsPlot      bool   // render the series as a terminal chart
)

// metricsCmd re-projects a recorded run onto the lane map and writes the
// lateral-deviation report.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Extract the lateral-deviation series from a recorded run",
	Run: func(cmd *cobra.Command, args []string) {
		rec, err := record.Load(metricsRecording)
		if err != nil {
			logrus.Fatalf("Load recording: %v", err)
		}
		// The recording header carries the map the run used, so the offline
		// projection matches the online one.
		laneMap, err := sim.BuildMap(rec.Map)
		if err != nil {
			logrus.Fatalf("Rebuild map from recording header: %v", err)
		}

		samples, err := metrics.LateralDeviation(rec, laneMap, record.ActorID(metricsActor))
		if err != nil {
			logrus.Fatalf("Extract lateral deviation: %v", err)
		}
		if err := metrics.NewReport(samples).Write(metricsOut); err != nil {
			logrus.Fatalf("Write report: %v", err)
		}

		fmt.Printf("Run %s, actor %q: %s\n", rec.RunID, metricsActor, metrics.Summarize(samples))
		fmt.Printf("Report -> %s\n", metricsOut)
		if metricsPlot {
			series := make([]float64, len(samples))
			for i, s := range samples {
				series[i] = s.Distance
			}
			fmt.Println(asciigraph.Plot(series,
				asciigraph.Height(12),
				asciigraph.Caption(fmt.Sprintf("lateral deviation of %q, m per frame", metricsActor))))
		}
	},
}

func init() {
	metricsCmd.Flags().StringVar(&metricsRecording, "recording", "recording.json", "Recording file to analyze")
	metricsCmd.Flags().StringVar(&metricsOut, "output", "lateral_deviation.json", "Report output path")
	metricsCmd.Flags().StringVar(&metricsActor, "actor", "hero", "Actor ID to project")
	metricsCmd.Flags().BoolVar(&metricsPlot, "plot", false, "Plot the deviation series in the terminal")

	rootCmd.AddCommand(metricsCmd)
}
