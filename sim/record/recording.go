// Package record captures per-frame actor states during a scenario run and
// answers the frame-range queries offline metric extraction needs. This
// package has no dependencies on sim/ — it stores pure data types plus JSON
// persistence.
//
// Frames are numbered from 1, matching the external recorder convention:
// frame f of an actor's track lives at slice index f-1.
package record

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/scenario-sim/scenario-sim/sim/geom"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrActorNotFound reports a query for an actor the recording never saw.
var ErrActorNotFound = errors.New("actor not found in recording")

// ActorID identifies a spawned actor within one recording.
type ActorID string

// ActorState is one actor's pose and velocity at one frame. A zero Frame
// marks a gap: the actor was not alive at that point of the track.
type ActorState struct {
	Frame    int64     `json:"frame"`
	Pose     geom.Pose `json:"pose"`
	Velocity r3.Vec    `json:"velocity"`
}

// ActorInfo describes a recorded actor.
type ActorInfo struct {
	ID        ActorID `json:"id"`
	Blueprint string  `json:"blueprint"`
	Role      string  `json:"role"` // "hero" for the ego, "scenario" for owned actors
}

// MapSpec names the map a run used, with enough geometry for offline
// analysis to rebuild the same lane projection. It doubles as the map section
// of the run configuration, hence the YAML tags.
type MapSpec struct {
	Kind      string  `json:"kind" yaml:"kind"` // "straight" or "ring"
	Lanes     int     `json:"lanes,omitempty" yaml:"lanes,omitempty"`
	LaneWidth float64 `json:"lane_width" yaml:"lane_width"`
	Radius    float64 `json:"radius,omitempty" yaml:"radius,omitempty"`
}

// Frame is a snapshot of every live actor at one simulation step.
type Frame struct {
	Frame  int64                  `json:"frame"`
	Time   float64                `json:"time"` // simulation seconds at the end of the step
	States map[ActorID]ActorState `json:"states"`
}

// Recording accumulates frames during a run. It is append-only while the run
// is live and immutable once the run ends; the metric extractor only ever
// sees the finished form.
type Recording struct {
	RunID    string      `json:"run_id"`
	Scenario string      `json:"scenario"`
	Map      MapSpec     `json:"map"`
	DT       float64     `json:"dt"`
	Actors   []ActorInfo `json:"actors"`
	Frames   []Frame     `json:"frames"`
}

// NewRecording starts an empty recording for one scenario run.
func NewRecording(scenario string, m MapSpec, dt float64) *Recording {
	return &Recording{
		RunID:    uuid.NewString(),
		Scenario: scenario,
		Map:      m,
		DT:       dt,
	}
}

// RegisterActor adds an actor to the recording's cast list. Registering the
// same ID twice keeps the first entry.
func (r *Recording) RegisterActor(info ActorInfo) {
	for _, a := range r.Actors {
		if a.ID == info.ID {
			return
		}
	}
	r.Actors = append(r.Actors, info)
}

// Append records one frame and returns its number. Frame numbers are
// assigned by the recording: the first appended frame is frame 1.
func (r *Recording) Append(simTime float64, states map[ActorID]ActorState) int64 {
	frame := int64(len(r.Frames)) + 1
	copied := make(map[ActorID]ActorState, len(states))
	for id, st := range states {
		st.Frame = frame
		copied[id] = st
	}
	r.Frames = append(r.Frames, Frame{Frame: frame, Time: simTime, States: copied})
	return frame
}

// LastFrame returns the highest recorded frame number, 0 when empty.
func (r *Recording) LastFrame() int64 {
	return int64(len(r.Frames))
}

// AliveFrameRange returns the half-open frame range [start, end) over which
// the actor appears in the recording. ErrActorNotFound when it never does.
func (r *Recording) AliveFrameRange(id ActorID) (start, end int64, err error) {
	for _, f := range r.Frames {
		if _, ok := f.States[id]; !ok {
			continue
		}
		if start == 0 {
			start = f.Frame
		}
		end = f.Frame + 1
	}
	if start == 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrActorNotFound, id)
	}
	return start, end, nil
}

// ActorStates returns the actor's track aligned to the recording's 1-based
// frame numbering: index f-1 holds the state at frame f, for f in [1, end).
// Frames outside the actor's alive range hold zero-valued states (Frame 0).
// The [start, end) arguments are validated against the recording but the
// returned slice always starts at frame 1, so callers index by frame number,
// never by range-relative position.
func (r *Recording) ActorStates(id ActorID, start, end int64) ([]ActorState, error) {
	if _, _, err := r.AliveFrameRange(id); err != nil {
		return nil, err
	}
	if start < 1 || end < start || end > r.LastFrame()+1 {
		return nil, fmt.Errorf("frame range [%d, %d) outside recording of %d frames", start, end, r.LastFrame())
	}
	states := make([]ActorState, end-1)
	for _, f := range r.Frames {
		if f.Frame >= end {
			break
		}
		if st, ok := f.States[id]; ok {
			states[f.Frame-1] = st
		}
	}
	return states, nil
}
