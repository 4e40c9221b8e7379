package scenario

import (
	"fmt"

	"github.com/scenario-sim/scenario-sim/sim/behaviors"
	"github.com/scenario-sim/scenario-sim/sim/btree"
	"github.com/scenario-sim/scenario-sim/sim/geom"
)

// Object-crossing scenarios: a cyclist staged relative to the ego's lane,
// either parked in the driving corridor or darting across it once the ego
// gets close. The ego is expected to avoid the contact; a naive cruise
// driver will fail the collision criterion.

const (
	cyclistBlueprint = "vehicle.diamondback.century"
	// How far ahead of the ego the cyclist is staged.
	crossingTriggerDistance = 40.0
	// Target speed of the crossing cyclist.
	crossingSpeed = 10.0
)

func init() {
	Register("stationary_object_crossing", buildStationaryObjectCrossing)
	Register("dynamic_object_crossing", buildDynamicObjectCrossing)
}

// buildStationaryObjectCrossing parks a cyclist just inside the ego's lane,
// slightly off center, and simply waits: the scenario is over when the
// timeout's grace window elapses, and the judgment lives entirely in the
// criteria (no collision, ego under 20 m/s).
func buildStationaryObjectCrossing(s *Scenario) error {
	s.timeout = 60

	wp, err := s.egoWaypoint()
	if err != nil {
		return err
	}
	pose, err := geom.LaneOffsetPose(s.world.Map(), wp, crossingTriggerDistance, geom.LaneOffset{
		OrientationDeg: 270,
		PositionDeg:    90,
		K:              0.2,
		Z:              0.2,
	})
	if err != nil {
		return fmt.Errorf("scenario %q: stage cyclist: %w", s.name, err)
	}
	cyclist, err := s.spawnOwned(cyclistBlueprint, pose)
	if err != nil {
		return err
	}
	cyclist.SetHandBrake(true)

	s.root = btree.NewParallel("stationary crossing", btree.SuccessOnOne,
		behaviors.TimeOut(s.world, s.timeout-5),
	)
	s.criteria = []behaviors.Criterion{
		behaviors.CollisionFree(s.world, s.ego.ID()),
		behaviors.MaxVelocity(s.ego, 20),
	}
	return nil
}

// buildDynamicObjectCrossing stages the cyclist off the lane, past the curb,
// and scripts the dart: wait with the hand brake on until the ego is twelve
// seconds out, release, sprint into the driving corridor, then a final burst
// across the rest of the road, brake to a stop, and hold for five seconds so
// the ego's reaction lands in the recording.
func buildDynamicObjectCrossing(s *Scenario) error {
	s.timeout = 60

	wp, err := s.egoWaypoint()
	if err != nil {
		return err
	}
	pose, err := geom.LaneOffsetPose(s.world.Map(), wp, crossingTriggerDistance, geom.LaneOffset{
		OrientationDeg: 270,
		PositionDeg:    90,
		K:              1.1,
		Z:              0.2,
	})
	if err != nil {
		return fmt.Errorf("scenario %q: stage cyclist: %w", s.name, err)
	}
	cyclist, err := s.spawnOwned(cyclistBlueprint, pose)
	if err != nil {
		return err
	}

	// Crossing distance covers the staging offset plus the full lane.
	crossing := wp.LaneWidth + 1.25*wp.LaneWidth

	dart := btree.NewSequence("cyclist dart",
		behaviors.HandBrakeVehicle(cyclist, true),
		behaviors.InTimeToArrivalToVehicle(cyclist, s.ego, 12),
		behaviors.HandBrakeVehicle(cyclist, false),
		btree.NewParallel("enter corridor", btree.SuccessOnOne,
			behaviors.KeepVelocity(cyclist, crossingSpeed),
			behaviors.DriveDistance(cyclist, 0.3*crossing),
		),
		btree.NewParallel("clear lane", btree.SuccessOnOne,
			behaviors.AccelerateToVelocity(cyclist, 1.0, crossingSpeed),
			behaviors.DriveDistance(cyclist, crossing),
		),
		behaviors.StopVehicle(cyclist, 1.0),
		behaviors.TimeOut(s.world, 5),
	)
	s.root = btree.NewParallel("dynamic crossing", btree.SuccessOnOne, dart)

	s.criteria = []behaviors.Criterion{
		behaviors.CollisionFree(s.world, s.ego.ID()),
		behaviors.MaxVelocity(s.ego, 10),
	}
	return nil
}
