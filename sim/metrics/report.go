package metrics

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// Report is the persisted form of a lateral-deviation series. The key names
// are the external contract consumed by downstream tooling.
type Report struct {
	Frames   []int64   `json:"frames"`
	Distance []float64 `json:"distance"`
}

// NewReport splits the sample series into the report's parallel arrays.
func NewReport(samples []Sample) Report {
	r := Report{
		Frames:   make([]int64, len(samples)),
		Distance: make([]float64, len(samples)),
	}
	for i, s := range samples {
		r.Frames[i] = s.Frame
		r.Distance[i] = s.Distance
	}
	return r
}

// Write persists the report as indented JSON, overwriting any prior file at
// path.
func (r Report) Write(path string) error {
	data, err := json.MarshalIndent(r, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal metric report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write metric report to %s: %w", path, err)
	}
	return nil
}

// Summary aggregates a deviation series for the CLI's closing print.
type Summary struct {
	Samples int
	MeanAbs float64
	MaxAbs  float64
	P95Abs  float64
}

// Summarize computes aggregate statistics over the absolute deviations.
// Safe on an empty series (all zeros).
func Summarize(samples []Sample) Summary {
	s := Summary{Samples: len(samples)}
	if len(samples) == 0 {
		return s
	}

	abs := make([]float64, len(samples))
	sum := 0.0
	for i, sample := range samples {
		abs[i] = math.Abs(sample.Distance)
		sum += abs[i]
		if abs[i] > s.MaxAbs {
			s.MaxAbs = abs[i]
		}
	}
	s.MeanAbs = sum / float64(len(abs))
	s.P95Abs = percentile(abs, 95)
	return s
}

// percentile interpolates the p-th percentile of data; data is not assumed
// sorted.
func percentile(data []float64, p float64) float64 {
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	return sorted[lower] + (sorted[upper]-sorted[lower])*(rank-float64(lower))
}

func (s Summary) String() string {
	return fmt.Sprintf("%d samples, |deviation| mean %.3f m, p95 %.3f m, max %.3f m",
		s.Samples, s.MeanAbs, s.P95Abs, s.MaxAbs)
}
