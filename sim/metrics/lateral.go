// Package metrics extracts quantitative measurements from a finished run's
// recording. It runs strictly offline: the input is an immutable recording,
// the lane projection is reapplied per frame with the same geometry the run
// used, and the output is written once.
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/scenario-sim/scenario-sim/sim/geom"
	"github.com/scenario-sim/scenario-sim/sim/record"
)

// Sample is one frame's lane-relative measurement of the analyzed actor.
type Sample struct {
	Frame         int64
	Distance      float64 // signed lateral offset from lane center, meters
	LaneHalfWidth float64
}

// LaneProjector is the slice of the map service the extractor consumes.
type LaneProjector interface {
	NearestWaypoint(loc r3.Vec) (geom.Waypoint, error)
}

// LateralDeviation re-projects the actor's recorded poses onto the lane and
// returns one sample per alive frame, ordered by frame number. An actor the
// recording never saw yields record.ErrActorNotFound, never a silent empty
// series.
func LateralDeviation(rec *record.Recording, m LaneProjector, id record.ActorID) ([]Sample, error) {
	start, end, err := rec.AliveFrameRange(id)
	if err != nil {
		return nil, fmt.Errorf("lateral deviation of %q: %w", id, err)
	}
	states, err := rec.ActorStates(id, start, end)
	if err != nil {
		return nil, fmt.Errorf("lateral deviation of %q: %w", id, err)
	}

	samples := make([]Sample, 0, end-start)
	for f := start; f < end; f++ {
		// Frame f lives at index f-1; the recording's numbering is 1-based.
		st := states[f-1]
		wp, err := m.NearestWaypoint(st.Pose.Location)
		if err != nil {
			return nil, fmt.Errorf("project frame %d of %q: %w", f, id, err)
		}
		off, err := geom.SignedLateralOffset(wp, st.Pose.Location)
		if err != nil {
			return nil, fmt.Errorf("project frame %d of %q: %w", f, id, err)
		}
		samples = append(samples, Sample{Frame: f, Distance: off, LaneHalfWidth: wp.LaneWidth / 2})
	}
	return samples, nil
}
