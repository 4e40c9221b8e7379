// Package scenario assembles scripted traffic scenarios against a world and
// drives them tick by tick. A scenario computes spawn poses through the
// geometry engine, spawns the secondary actors it needs, builds a behavior
// tree over them, and declares the pass/fail criteria tracked beside the
// tree. The runner alternates world ticks with tree ticks until the root
// goes terminal, a criterion fails, or the timeout fires.
package scenario

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/scenario-sim/scenario-sim/sim"
	"github.com/scenario-sim/scenario-sim/sim/behaviors"
	"github.com/scenario-sim/scenario-sim/sim/btree"
	"github.com/scenario-sim/scenario-sim/sim/geom"
)

// Scenario is one assembled run: a behavior tree, the criteria tracked
// beside it, and exclusive ownership of the secondary actors it spawned.
// The ego belongs to the caller and is never destroyed here.
type Scenario struct {
	name    string
	timeout float64 // simulation seconds, always positive after assembly

	world    *sim.World
	ego      *sim.Vehicle
	root     btree.Node
	criteria []behaviors.Criterion
	owned    []*sim.Vehicle

	torndown bool
}

// Name returns the registered scenario name.
func (s *Scenario) Name() string { return s.name }

// Timeout returns the scenario's termination deadline in simulation seconds.
func (s *Scenario) Timeout() float64 { return s.timeout }

// OwnedActors returns the secondary actors the scenario spawned, in spawn
// order.
func (s *Scenario) OwnedActors() []*sim.Vehicle {
	out := make([]*sim.Vehicle, len(s.owned))
	copy(out, s.owned)
	return out
}

// spawnOwned spawns a secondary actor and takes ownership of it, so teardown
// will destroy it on every exit path.
func (s *Scenario) spawnOwned(blueprint string, pose geom.Pose) (*sim.Vehicle, error) {
	v, err := s.world.SpawnActor(blueprint, pose, sim.RoleScenario)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: spawn %s: %w", s.name, blueprint, err)
	}
	s.owned = append(s.owned, v)
	return v, nil
}

// Teardown destroys every actor the scenario owns, newest first. It runs on
// every exit path, including assembly failures, and is safe to call twice.
func (s *Scenario) Teardown() {
	if s.torndown {
		return
	}
	s.torndown = true
	for i := len(s.owned) - 1; i >= 0; i-- {
		s.world.DestroyActor(s.owned[i].ID())
	}
}

// Params carries per-run overrides applied on top of a scenario's defaults.
type Params struct {
	// Timeout replaces the scenario's default timeout when positive.
	Timeout float64
}

// Builder assembles a named scenario against a world and an ego actor. A
// builder that fails part-way must not leak actors; Build guarantees that by
// tearing the partial scenario down.
type Builder func(s *Scenario) error

var builders = map[string]Builder{}

// Register adds a scenario builder under a unique name. Called from init
// functions of the definition files.
func Register(name string, b Builder) {
	if _, dup := builders[name]; dup {
		panic(fmt.Sprintf("scenario %q registered twice", name))
	}
	builders[name] = b
}

// Names lists the registered scenarios in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build assembles the named scenario. On any assembly error the partial
// scenario is torn down before the error is returned, so no actor leaks.
func Build(name string, w *sim.World, ego *sim.Vehicle, p Params) (*Scenario, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario %q (have %v)", name, Names())
	}
	s := &Scenario{name: name, world: w, ego: ego}
	if err := b(s); err != nil {
		s.Teardown()
		return nil, err
	}
	if s.root == nil {
		s.Teardown()
		return nil, fmt.Errorf("scenario %q built no behavior tree", name)
	}
	if p.Timeout > 0 {
		s.timeout = p.Timeout
	}
	if s.timeout <= 0 {
		s.Teardown()
		return nil, fmt.Errorf("scenario %q has no timeout", name)
	}
	logrus.Infof("assembled scenario %q: %d owned actors, %d criteria, timeout %.0fs",
		name, len(s.owned), len(s.criteria), s.timeout)
	return s, nil
}

// egoWaypoint projects the ego onto its lane; every definition starts from
// this reference.
func (s *Scenario) egoWaypoint() (geom.Waypoint, error) {
	wp, err := s.world.Map().NearestWaypoint(s.ego.Pose().Location)
	if err != nil {
		return geom.Waypoint{}, fmt.Errorf("scenario %q: project ego onto lane: %w", s.name, err)
	}
	return wp, nil
}
