package scenario

import (
	"fmt"

	"github.com/scenario-sim/scenario-sim/sim/behaviors"
	"github.com/scenario-sim/scenario-sim/sim/btree"
	"github.com/scenario-sim/scenario-sim/sim/geom"
)

// Overtake scenario on a two-way road: a slow leader ahead of the ego in its
// own lane and an oncoming vehicle approaching on the left lane, forcing the
// ego to time its pass. The run ends once the ego has covered its driving
// distance; the only judgment is staying collision-free.

const (
	leaderBlueprint   = "vehicle.tesla.model3"
	oncomingBlueprint = "vehicle.audi.tt"

	leaderAheadDistance   = 50.0
	oncomingAheadDistance = 90.0
	egoDrivenDistance     = 140.0
)

func init() {
	Register("maneuver_opposite_direction", buildManeuverOppositeDirection)
}

func buildManeuverOppositeDirection(s *Scenario) error {
	s.timeout = 120

	wp, err := s.egoWaypoint()
	if err != nil {
		return err
	}

	leaderPose, err := geom.LaneOffsetPose(s.world.Map(), wp, leaderAheadDistance, geom.LaneOffset{})
	if err != nil {
		return fmt.Errorf("scenario %q: stage leader: %w", s.name, err)
	}
	leader, err := s.spawnOwned(leaderBlueprint, leaderPose)
	if err != nil {
		return err
	}

	farAhead, _, err := s.world.Map().WaypointAtDistanceAhead(wp, oncomingAheadDistance)
	if err != nil {
		return fmt.Errorf("scenario %q: walk to oncoming slot: %w", s.name, err)
	}
	oncomingWP, ok := s.world.Map().LeftLane(farAhead)
	if !ok {
		return fmt.Errorf("scenario %q: map has no oncoming lane at %.0f m ahead", s.name, oncomingAheadDistance)
	}
	oncoming, err := s.spawnOwned(oncomingBlueprint, oncomingWP.Pose)
	if err != nil {
		return err
	}

	// Both traffic vehicles start moving only once the ego has closed in on
	// the leader; until then the road ahead looks parked.
	traffic := btree.NewSequence("traffic release",
		behaviors.InTriggerDistanceToVehicle(s.ego, leader, 40),
		btree.NewParallel("both lanes flowing", btree.SuccessOnAll,
			behaviors.WaypointFollower(leader, 15, s.world.Map()),
			behaviors.WaypointFollower(oncoming, 17, s.world.Map()),
		),
	)
	s.root = btree.NewParallel("maneuver opposite direction", btree.SuccessOnOne,
		behaviors.DriveDistance(s.ego, egoDrivenDistance),
		traffic,
	)

	s.criteria = []behaviors.Criterion{
		behaviors.CollisionFree(s.world, s.ego.ID()),
	}
	return nil
}
