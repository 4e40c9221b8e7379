package metrics

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/scenario-sim/scenario-sim/sim"
	"github.com/scenario-sim/scenario-sim/sim/geom"
	"github.com/scenario-sim/scenario-sim/sim/record"
)

// recordedStraightRun builds a recording of a hero driving along lane 0 of a
// straight road at a constant lateral offset, frames 1..n.
func recordedStraightRun(n int, lateral float64) *record.Recording {
	rec := record.NewRecording("unit", record.MapSpec{Kind: "straight", Lanes: 1, LaneWidth: 3.5}, 0.1)
	for i := 0; i < n; i++ {
		pose := geom.Pose{Location: r3.Vec{X: float64(i), Y: lateral}}
		rec.Append(float64(i+1)*0.1, map[record.ActorID]record.ActorState{
			"hero": {Pose: pose, Velocity: r3.Vec{X: 10}},
		})
	}
	return rec
}

func TestLateralDeviation_ConstantOffsetRun(t *testing.T) {
	// GIVEN a 10-frame straight-line run offset 0.5 m to the right of lane
	// center
	rec := recordedStraightRun(10, 0.5)
	laneMap, err := sim.BuildMap(rec.Map)
	require.NoError(t, err)

	samples, err := LateralDeviation(rec, laneMap, "hero")

	// THEN every frame measures +0.5 m and frames run 1..10
	require.NoError(t, err)
	require.Len(t, samples, 10)
	for i, s := range samples {
		assert.Equal(t, int64(i+1), s.Frame)
		assert.InDelta(t, 0.5, s.Distance, 1e-9)
		assert.InDelta(t, 1.75, s.LaneHalfWidth, 1e-9)
	}
}

func TestLateralDeviation_SignFollowsSide(t *testing.T) {
	// An offset toward the left of travel measures negative.
	rec := recordedStraightRun(3, -0.8)
	laneMap, err := sim.BuildMap(rec.Map)
	require.NoError(t, err)

	samples, err := LateralDeviation(rec, laneMap, "hero")

	require.NoError(t, err)
	for _, s := range samples {
		assert.InDelta(t, -0.8, s.Distance, 1e-9)
	}
}

func TestLateralDeviation_UnknownActor(t *testing.T) {
	rec := recordedStraightRun(5, 0)
	laneMap, err := sim.BuildMap(rec.Map)
	require.NoError(t, err)

	_, err = LateralDeviation(rec, laneMap, "ghost")

	assert.ErrorIs(t, err, record.ErrActorNotFound)
}

func TestLateralDeviation_RingMapKeepsConvention(t *testing.T) {
	// GIVEN a run on a ring road, driving counterclockwise 1 m inside the
	// lane centerline — the right-hand side of travel on this map
	spec := record.MapSpec{Kind: "ring", LaneWidth: 4, Radius: 50}
	rec := record.NewRecording("unit", spec, 0.1)
	for i := 0; i < 8; i++ {
		theta := float64(i) * 0.1
		pose := geom.Pose{Location: r3.Vec{X: 49 * math.Cos(theta), Y: 49 * math.Sin(theta)}}
		rec.Append(float64(i+1)*0.1, map[record.ActorID]record.ActorState{"hero": {Pose: pose}})
	}
	laneMap, err := sim.BuildMap(spec)
	require.NoError(t, err)

	samples, err := LateralDeviation(rec, laneMap, "hero")

	require.NoError(t, err)
	require.Len(t, samples, 8)
	for _, s := range samples {
		assert.InDelta(t, 1.0, s.Distance, 1e-9, "inside the ring is the right of ccw travel")
	}
}

func TestReport_WriteUsesContractKeys(t *testing.T) {
	samples := []Sample{{Frame: 1, Distance: 0.5}, {Frame: 2, Distance: -0.25}}
	path := filepath.Join(t.TempDir(), "deviation.json")

	require.NoError(t, NewReport(samples).Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "frames")
	assert.Contains(t, decoded, "distance")

	var loaded Report
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, []int64{1, 2}, loaded.Frames)
	assert.Equal(t, []float64{0.5, -0.25}, loaded.Distance)
}

func TestReport_WriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deviation.json")
	require.NoError(t, NewReport([]Sample{{Frame: 1, Distance: 9}}).Write(path))
	require.NoError(t, NewReport([]Sample{{Frame: 1, Distance: 0.1}}).Write(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var loaded Report
	require.NoError(t, json.Unmarshal(data, &loaded))
	assert.Equal(t, []float64{0.1}, loaded.Distance)
}

func TestSummarize(t *testing.T) {
	samples := []Sample{
		{Frame: 1, Distance: 0.5},
		{Frame: 2, Distance: -1.0},
		{Frame: 3, Distance: 0.25},
		{Frame: 4, Distance: -0.25},
	}

	s := Summarize(samples)

	assert.Equal(t, 4, s.Samples)
	assert.InDelta(t, 0.5, s.MeanAbs, 1e-9)
	assert.InDelta(t, 1.0, s.MaxAbs, 1e-9)
	assert.InDelta(t, 0.925, s.P95Abs, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.MeanAbs)
	assert.Zero(t, s.MaxAbs)
	assert.Zero(t, s.Samples)
}
